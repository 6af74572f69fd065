package workspaces

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("workspace not found")

type Workspace struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Capacity    int       `json:"capacity"`
	// Open hours as whole hours of the day, [OpenHour, CloseHour).
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Interval is a half-open booked window used for availability arithmetic.
type Interval struct {
	Start time.Time
	End   time.Time
}

type Filter struct {
	OwnerID *int64
	Page    int // 1-based
	Limit   int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
