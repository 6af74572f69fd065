package storage

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"squeedr/internal/domain/accesscontrol"
	"squeedr/internal/domain/bookings"
	"squeedr/internal/domain/calendartokens"
	"squeedr/internal/domain/pushtokens"
	"squeedr/internal/domain/sessions"
	"squeedr/internal/domain/users"
	"squeedr/internal/domain/waitlist"
	"squeedr/internal/domain/workspaces"
)

// Container wires every repository over one shared pool.
type Container struct {
	Users          users.Store
	Workspaces     workspaces.Store
	Sessions       sessions.Store
	Bookings       bookings.Store
	Waitlist       waitlist.Store
	PushTokens     pushtokens.Store
	CalendarTokens calendartokens.Store
	AccessControl  accesscontrol.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Users:          users.NewRepository(db),
		Workspaces:     workspaces.NewRepository(db),
		Sessions:       sessions.NewRepository(db),
		Bookings:       bookings.NewRepository(db),
		Waitlist:       waitlist.NewRepository(db),
		PushTokens:     pushtokens.NewRepository(db),
		CalendarTokens: calendartokens.NewRepository(db),
		AccessControl:  accesscontrol.NewRepository(db),
	}
}
