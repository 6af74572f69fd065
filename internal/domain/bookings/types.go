package bookings

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned when the requested window overlaps a
	// confirmed booking; the HTTP layer answers with the waitlist option.
	ErrSlotTaken = errors.New("time slot is already booked")
)

type Source string

const (
	SourceDirect   Source = "direct"
	SourceWaitlist Source = "waitlist"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	WorkspaceID int64     `json:"workspace_id"`
	UserID      int64     `json:"user_id"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Attendees   int       `json:"attendees"`
	Status      Status    `json:"status"`
	Source      Source    `json:"source"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Filter struct {
	Status *Status
	Page   int // 1-based
	Limit  int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
