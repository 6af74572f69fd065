package bookings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	// Create inserts a confirmed booking, failing with ErrSlotTaken when the
	// window overlaps an existing confirmed booking for the workspace.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	ListByUser(ctx context.Context, userID int64, filter Filter) ([]Booking, error)
	ListByWorkspace(ctx context.Context, workspaceID int64, filter Filter) ([]Booking, error)
	Cancel(ctx context.Context, id, userID int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const bookingColumns = `id, reference, workspace_id, user_id, start_time, end_time, attendees, status, source, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.Reference, &b.WorkspaceID, &b.UserID, &b.Start, &b.End, &b.Attendees, &b.Status, &b.Source, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create takes the overlap check and the insert inside one transaction so
// two racing bookings for the same window cannot both land.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var blocking int64
	err = tx.QueryRow(ctx, `
        SELECT id FROM bookings
        WHERE workspace_id = $1 AND status = 'confirmed'
          AND start_time < $3 AND end_time > $2
        LIMIT 1
        FOR UPDATE
    `, b.WorkspaceID, b.Start, b.End).Scan(&blocking)
	if err == nil {
		return ErrSlotTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO bookings (reference, workspace_id, user_id, start_time, end_time, attendees, status, source, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at
    `, b.Reference, b.WorkspaceID, b.UserID, b.Start, b.End, b.Attendees, b.Status, b.Source, b.Notes).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, filter Filter) ([]Booking, error) {
	return r.list(ctx, `user_id`, userID, filter)
}

func (r *Repository) ListByWorkspace(ctx context.Context, workspaceID int64, filter Filter) ([]Booking, error) {
	return r.list(ctx, `workspace_id`, workspaceID, filter)
}

func (r *Repository) list(ctx context.Context, column string, id int64, filter Filter) ([]Booking, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+bookingColumns+`
        FROM bookings
        WHERE `+column+` = $1
          AND ($2::text IS NULL OR status = $2)
        ORDER BY start_time DESC
        LIMIT $3 OFFSET $4
    `, id, filter.Status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) Cancel(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE bookings
        SET status = 'cancelled', updated_at = now()
        WHERE id = $1 AND user_id = $2 AND status = 'confirmed'
    `, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
