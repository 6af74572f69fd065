package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"squeedr/internal/domain/accesscontrol"
)

// DefaultOfferWindow is how long a notified requester has to claim a freed
// slot before the offer lapses.
const DefaultOfferWindow = 2 * time.Hour

// Booker converts a claimed request into a confirmed booking. It is the
// only external write the manager performs.
type Booker interface {
	CreateFromWaitlist(ctx context.Context, req *Request) (int64, error)
}

// Notifier delivers offer/expiry messages to the requester. Delivery is
// best effort: a failure is logged and never blocks a transition.
type Notifier interface {
	OfferCreated(ctx context.Context, req *Request) error
	OfferExpired(ctx context.Context, req *Request) error
}

// Manager owns every status transition of a Request. All writes go through
// the store's compare-and-set, so concurrent actors (a claim racing the
// expiry sweep, two owners offering the same slot) serialize on status.
type Manager struct {
	store       Store
	booker      Booker
	notifier    Notifier
	logger      *zap.SugaredLogger
	offerWindow time.Duration
	now         func() time.Time
	newID       func() string
}

func NewManager(store Store, booker Booker, notifier Notifier, logger *zap.SugaredLogger, offerWindow time.Duration, now func() time.Time) *Manager {
	if offerWindow <= 0 {
		offerWindow = DefaultOfferWindow
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		store:       store,
		booker:      booker,
		notifier:    notifier,
		logger:      logger,
		offerWindow: offerWindow,
		now:         now,
		newID:       uuid.NewString,
	}
}

type CreateInput struct {
	Reference     string
	UserID        int64
	UserName      string
	UserEmail     string
	UserRole      accesscontrol.Role
	WorkspaceID   int64
	WorkspaceName string
	Start         time.Time
	End           time.Time
	Purpose       string
	Attendees     int
	Notes         *string
	Priority      *int
}

// Create registers a new pending request for an unavailable slot.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*Request, error) {
	if !in.End.After(in.Start) {
		return nil, fmt.Errorf("slot end %s is not after start %s", in.End, in.Start)
	}

	req := &Request{
		ID:            m.newID(),
		Reference:     in.Reference,
		UserID:        in.UserID,
		UserName:      in.UserName,
		UserEmail:     in.UserEmail,
		UserRole:      in.UserRole,
		WorkspaceID:   in.WorkspaceID,
		WorkspaceName: in.WorkspaceName,
		Start:         in.Start,
		End:           in.End,
		Purpose:       in.Purpose,
		Attendees:     in.Attendees,
		Notes:         in.Notes,
		Priority:      in.Priority,
		Status:        StatusPending,
		RequestedAt:   m.now(),
	}
	if err := m.store.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Offer moves a pending request to notified and starts its claim window.
// The slot must not already carry an unexpired offer.
func (m *Manager) Offer(ctx context.Context, id string) (*Request, error) {
	req, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(req.Status, EventOffer); err != nil {
		return nil, err
	}

	now := m.now()
	notifiedAt := now
	expiresAt := now.Add(m.offerWindow)
	ok, err := m.store.OfferIfSlotFree(ctx, req.ID, req.Slot(), notifiedAt, expiresAt, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, m.raceError(ctx, req.ID, EventOffer)
	}

	req.Status = StatusNotified
	req.NotifiedAt = &notifiedAt
	req.ExpiresAt = &expiresAt

	if m.notifier != nil {
		if err := m.notifier.OfferCreated(ctx, req); err != nil {
			m.logger.Warnw("waitlist offer notification failed", "request_id", req.ID, "user_id", req.UserID, "error", err)
		}
	}
	return req, nil
}

// Claim converts an outstanding offer into a confirmed booking. Expiry wins
// every race: if the deadline has passed the claim is rejected even when the
// sweep has not marked the request expired yet.
func (m *Manager) Claim(ctx context.Context, id string) (*Request, int64, error) {
	req, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	now := m.now()
	if req.Status == StatusExpired {
		return nil, 0, staleOfferError(req)
	}
	if req.OfferLapsed(now) {
		m.expire(ctx, req)
		return nil, 0, staleOfferError(req)
	}
	if _, err := nextStatus(req.Status, EventClaim); err != nil {
		return nil, 0, err
	}

	ok, err := m.store.TransitionStatus(ctx, req.ID, StatusNotified, StatusFulfilled, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, m.raceError(ctx, req.ID, EventClaim)
	}
	req.Status = StatusFulfilled

	bookingID, err := m.booker.CreateFromWaitlist(ctx, req)
	if err != nil {
		// Hand the offer back so the requester can retry while the window
		// is still open.
		if restored, rbErr := m.store.TransitionStatus(ctx, req.ID, StatusFulfilled, StatusNotified, nil, nil); rbErr != nil || !restored {
			m.logger.Errorw("failed to restore offer after booking error", "request_id", req.ID, "error", rbErr)
		}
		req.Status = StatusNotified
		return nil, 0, fmt.Errorf("create booking for waitlist claim: %w", err)
	}
	return req, bookingID, nil
}

// Decline releases an outstanding offer and promotes the next candidate.
// A decline past the deadline is treated as already expired.
func (m *Manager) Decline(ctx context.Context, id string) (*Request, error) {
	req, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if req.Status == StatusExpired {
		return nil, staleOfferError(req)
	}
	if req.OfferLapsed(now) {
		m.expire(ctx, req)
		return nil, staleOfferError(req)
	}
	if _, err := nextStatus(req.Status, EventDecline); err != nil {
		return nil, err
	}

	ok, err := m.store.TransitionStatus(ctx, req.ID, StatusNotified, StatusCancelled, nil, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, m.raceError(ctx, req.ID, EventDecline)
	}
	req.Status = StatusCancelled

	m.promote(ctx, req.Slot())
	return req, nil
}

// Cancel withdraws a request. Cancelling a held offer frees the slot, so
// the next candidate is promoted; cancelling a pending request holds
// nothing and promotes nobody.
func (m *Manager) Cancel(ctx context.Context, id string) (*Request, error) {
	req, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(req.Status, EventCancel); err != nil {
		return nil, err
	}

	from := req.Status
	ok, err := m.store.TransitionStatus(ctx, req.ID, from, StatusCancelled, nil, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, m.raceError(ctx, req.ID, EventCancel)
	}
	req.Status = StatusCancelled

	if from == StatusNotified {
		m.promote(ctx, req.Slot())
	}
	return req, nil
}

// ExpireDue is the background sweep. It lapses overdue offers (promoting
// the next candidate per slot) and expires pending requests whose own slot
// has already ended. It returns how many requests changed status.
func (m *Manager) ExpireDue(ctx context.Context) (int, error) {
	var expired int

	due, err := m.store.DueOffers(ctx, m.now())
	if err != nil {
		return 0, err
	}
	for i := range due {
		if m.expire(ctx, &due[i]) {
			expired++
		}
	}

	lapsed, err := m.store.LapsedPending(ctx, m.now())
	if err != nil {
		return expired, err
	}
	for i := range lapsed {
		ok, err := m.store.TransitionStatus(ctx, lapsed[i].ID, StatusPending, StatusExpired, nil, nil)
		if err != nil {
			return expired, err
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}

// expire moves a notified request to expired and promotes the next
// candidate. Returns false when another actor settled the request first.
func (m *Manager) expire(ctx context.Context, req *Request) bool {
	ok, err := m.store.TransitionStatus(ctx, req.ID, StatusNotified, StatusExpired, nil, nil)
	if err != nil {
		m.logger.Errorw("failed to expire waitlist offer", "request_id", req.ID, "error", err)
		return false
	}
	if !ok {
		return false
	}
	req.Status = StatusExpired

	if m.notifier != nil {
		if err := m.notifier.OfferExpired(ctx, req); err != nil {
			m.logger.Warnw("waitlist expiry notification failed", "request_id", req.ID, "user_id", req.UserID, "error", err)
		}
	}

	m.promote(ctx, req.Slot())
	return true
}

// promote offers the freed slot to the best pending candidate. Promotion
// runs synchronously inside the releasing transition so the slot is never
// left unheld-and-unoffered longer than necessary. Losing the offer race
// means someone else already promoted; that is not an error.
func (m *Manager) promote(ctx context.Context, slot Slot) {
	next, err := m.store.NextPending(ctx, slot)
	if err != nil {
		m.logger.Errorw("failed to look up waitlist promotion candidate", "workspace_id", slot.WorkspaceID, "error", err)
		return
	}
	if next == nil {
		return
	}

	if _, err := m.Offer(ctx, next.ID); err != nil {
		var ite *InvalidTransitionError
		if errors.As(err, &ite) || errors.Is(err, ErrSlotAlreadyOffered) {
			return
		}
		m.logger.Errorw("failed to promote waitlist request", "request_id", next.ID, "error", err)
	}
}

// raceError reloads the request after a lost compare-and-set and reports
// the transition as invalid for whatever the status is now. A lapsed or
// already-expired offer surfaces as stale rather than invalid.
func (m *Manager) raceError(ctx context.Context, id string, ev Event) error {
	cur, err := m.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if (ev == EventClaim || ev == EventDecline) && (cur.Status == StatusExpired || cur.OfferLapsed(m.now())) {
		return staleOfferError(cur)
	}
	return &InvalidTransitionError{Status: cur.Status, Event: ev}
}

// staleOfferError wraps ErrStaleOffer with the deadline when one is known.
func staleOfferError(req *Request) error {
	if req.ExpiresAt == nil {
		return ErrStaleOffer
	}
	return fmt.Errorf("%w: claim deadline was %s", ErrStaleOffer, req.ExpiresAt.Format(time.RFC3339))
}
