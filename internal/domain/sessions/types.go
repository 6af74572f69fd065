package sessions

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Session is a scheduled meeting between an expert and a client, optionally
// held in a workspace.
type Session struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ExpertID    int64     `json:"expert_id"`
	ClientID    int64     `json:"client_id"`
	WorkspaceID *int64    `json:"workspace_id,omitempty"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Status      Status    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Filter struct {
	ExpertID *int64
	ClientID *int64
	Status   *Status
	From     *time.Time
	Page     int // 1-based
	Limit    int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
