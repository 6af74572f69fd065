package waitlist

import (
	"errors"
	"fmt"
	"time"

	"squeedr/internal/domain/accesscontrol"
)

var (
	ErrNotFound = errors.New("waitlist request not found")

	// ErrSlotAlreadyOffered guards the at-most-one-outstanding-offer rule:
	// a freed slot is never offered to two requesters at once.
	ErrSlotAlreadyOffered = errors.New("slot already has an outstanding offer")

	// ErrStaleOffer marks a claim or decline that arrived after the offer
	// deadline. Staleness is decided by the wall clock, not by whether the
	// background sweep has already flipped the status.
	ErrStaleOffer = errors.New("offer has expired")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusNotified  Status = "notified"
	StatusFulfilled Status = "fulfilled"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Event is a lifecycle action attempted against a request.
type Event string

const (
	EventOffer   Event = "offer"
	EventClaim   Event = "claim"
	EventDecline Event = "decline"
	EventCancel  Event = "cancel"
	EventExpire  Event = "expire"
)

// transitions is the only source of truth for legal status changes.
// pending->expired covers requests whose own slot passed without ever
// being offered; they lapse during the sweep.
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventOffer:  StatusNotified,
		EventCancel: StatusCancelled,
		EventExpire: StatusExpired,
	},
	StatusNotified: {
		EventClaim:   StatusFulfilled,
		EventDecline: StatusCancelled,
		EventCancel:  StatusCancelled,
		EventExpire:  StatusExpired,
	},
}

// InvalidTransitionError reports an event that is not legal for the
// request's current status. It is never swallowed; callers surface it.
type InvalidTransitionError struct {
	Status Status
	Event  Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a waitlist request in status %q", e.Event, e.Status)
}

func nextStatus(cur Status, ev Event) (Status, error) {
	if next, ok := transitions[cur][ev]; ok {
		return next, nil
	}
	return "", &InvalidTransitionError{Status: cur, Event: ev}
}

// Slot identifies the bookable window a request is waiting for. Requests
// with equal slots compete for the same capacity.
type Slot struct {
	WorkspaceID int64     `json:"workspace_id"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
}

// Request is a user's standing desire to book an unavailable slot. Its
// status field is owned by the Manager; nothing else transitions it.
type Request struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`

	// Requester snapshot, captured at request time.
	UserID    int64              `json:"user_id"`
	UserName  string             `json:"user_name"`
	UserEmail string             `json:"user_email"`
	UserRole  accesscontrol.Role `json:"user_role"`

	WorkspaceID   int64     `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	Start         time.Time `json:"start_time"`
	End           time.Time `json:"end_time"`

	Purpose   string  `json:"purpose"`
	Attendees int     `json:"attendees"`
	Notes     *string `json:"notes,omitempty"`
	// Lower number wins promotion; nil sorts after every set priority.
	Priority *int `json:"priority,omitempty"`

	Status      Status     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	NotifiedAt  *time.Time `json:"notified_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (r *Request) Slot() Slot {
	return Slot{WorkspaceID: r.WorkspaceID, Start: r.Start, End: r.End}
}

// OfferLapsed reports whether the request holds an offer whose deadline has
// passed at the supplied instant, regardless of stored status.
func (r *Request) OfferLapsed(now time.Time) bool {
	return r.Status == StatusNotified && r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
