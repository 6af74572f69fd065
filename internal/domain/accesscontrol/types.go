package accesscontrol

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the actor classification a user operates under. A user holds
// exactly one active role at a time; switching roles is an explicit action
// recorded by the Store.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleExpert Role = "expert"
	RoleClient Role = "client"
)

// ParseRole validates a raw role value coming from a token claim or payload.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleExpert, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Capability names one allowed action, e.g. "sessions:create".
type Capability string

const (
	SessionsCreate Capability = "sessions:create"
	SessionsView   Capability = "sessions:view"
	SessionsEdit   Capability = "sessions:edit"
	SessionsDelete Capability = "sessions:delete"

	WorkspacesCreate Capability = "workspaces:create"
	WorkspacesView   Capability = "workspaces:view"
	WorkspacesEdit   Capability = "workspaces:edit"
	WorkspacesDelete Capability = "workspaces:delete"

	BookingsCreate Capability = "bookings:create"
	BookingsManage Capability = "bookings:manage"

	WaitlistJoin   Capability = "waitlist:join"
	WaitlistManage Capability = "waitlist:manage"

	UsersManage Capability = "users:manage"
	ReportsView Capability = "reports:view"
)

// RoleChange is one entry in a user's role-switch audit trail.
type RoleChange struct {
	UserID     int64     `json:"user_id"`
	FromRole   Role      `json:"from_role"`
	ToRole     Role      `json:"to_role"`
	SwitchedAt time.Time `json:"switched_at"`
}
