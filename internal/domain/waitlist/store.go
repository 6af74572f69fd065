package waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByUser(ctx context.Context, userID int64) ([]Request, error)
	ListByWorkspace(ctx context.Context, workspaceID int64, status *Status) ([]Request, error)

	// TransitionStatus applies a compare-and-set: the row is updated only if
	// it is still in `from`. Returns false when another actor won the race.
	TransitionStatus(ctx context.Context, id string, from, to Status, notifiedAt, expiresAt *time.Time) (bool, error)

	// OfferIfSlotFree moves the request from pending to notified, but only
	// when the slot has no outstanding unexpired offer. The free check and
	// the transition happen under one slot-level lock so two racing offers
	// for the same slot cannot both land. Returns ErrSlotAlreadyOffered when
	// another request holds the slot, and false when the request itself is
	// no longer pending.
	OfferIfSlotFree(ctx context.Context, id string, slot Slot, notifiedAt, expiresAt, now time.Time) (bool, error)

	// NextPending returns the promotion candidate for the slot: lowest
	// priority number first (nil priority last), FIFO on requested_at.
	NextPending(ctx context.Context, slot Slot) (*Request, error)

	// DueOffers lists notified requests whose deadline has passed.
	DueOffers(ctx context.Context, now time.Time) ([]Request, error)

	// LapsedPending lists pending requests whose own slot already ended.
	LapsedPending(ctx context.Context, now time.Time) ([]Request, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const requestColumns = `
    id, reference, user_id, user_name, user_email, user_role,
    workspace_id, workspace_name, start_time, end_time,
    purpose, attendees, notes, priority,
    status, requested_at, notified_at, expires_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	err := row.Scan(
		&req.ID, &req.Reference, &req.UserID, &req.UserName, &req.UserEmail, &req.UserRole,
		&req.WorkspaceID, &req.WorkspaceName, &req.Start, &req.End,
		&req.Purpose, &req.Attendees, &req.Notes, &req.Priority,
		&req.Status, &req.RequestedAt, &req.NotifiedAt, &req.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *Repository) Create(ctx context.Context, req *Request) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO waitlist_requests (
            id, reference, user_id, user_name, user_email, user_role,
            workspace_id, workspace_name, start_time, end_time,
            purpose, attendees, notes, priority, status, requested_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `,
		req.ID, req.Reference, req.UserID, req.UserName, req.UserEmail, req.UserRole,
		req.WorkspaceID, req.WorkspaceName, req.Start, req.End,
		req.Purpose, req.Attendees, req.Notes, req.Priority, req.Status, req.RequestedAt,
	)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM waitlist_requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Request, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+requestColumns+`
        FROM waitlist_requests
        WHERE user_id = $1
        ORDER BY requested_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *Repository) ListByWorkspace(ctx context.Context, workspaceID int64, status *Status) ([]Request, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM waitlist_requests
        WHERE workspace_id = $1
          AND ($2::text IS NULL OR status = $2)
        ORDER BY start_time ASC, priority ASC NULLS LAST, requested_at ASC
    `
	rows, err := r.db.Query(ctx, query, workspaceID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *Repository) TransitionStatus(ctx context.Context, id string, from, to Status, notifiedAt, expiresAt *time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE waitlist_requests
        SET status = $3,
            notified_at = COALESCE($4, notified_at),
            expires_at = COALESCE($5, expires_at),
            updated_at = now()
        WHERE id = $1 AND status = $2
    `, id, from, to, notifiedAt, expiresAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// OfferIfSlotFree locks every request row for the slot before checking for
// an outstanding offer, so racing offers serialize on the lock: the candidate
// rows of both racers are in the locked set, and the loser sees the winner's
// notified row when its turn comes.
func (r *Repository) OfferIfSlotFree(ctx context.Context, id string, slot Slot, notifiedAt, expiresAt, now time.Time) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
        SELECT id FROM waitlist_requests
        WHERE workspace_id = $1 AND start_time = $2 AND end_time = $3
        FOR UPDATE
    `, slot.WorkspaceID, slot.Start, slot.End)
	if err != nil {
		return false, err
	}

	var taken bool
	err = tx.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM waitlist_requests
            WHERE workspace_id = $1 AND start_time = $2 AND end_time = $3
              AND status = 'notified' AND expires_at > $4
              AND id <> $5
        )
    `, slot.WorkspaceID, slot.Start, slot.End, now, id).Scan(&taken)
	if err != nil {
		return false, err
	}
	if taken {
		return false, ErrSlotAlreadyOffered
	}

	tag, err := tx.Exec(ctx, `
        UPDATE waitlist_requests
        SET status = $2, notified_at = $3, expires_at = $4, updated_at = now()
        WHERE id = $1 AND status = $5
    `, id, StatusNotified, notifiedAt, expiresAt, StatusPending)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}

	return true, tx.Commit(ctx)
}

func (r *Repository) NextPending(ctx context.Context, slot Slot) (*Request, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+requestColumns+`
        FROM waitlist_requests
        WHERE workspace_id = $1 AND start_time = $2 AND end_time = $3
          AND status = 'pending'
        ORDER BY priority ASC NULLS LAST, requested_at ASC
        LIMIT 1
    `, slot.WorkspaceID, slot.Start, slot.End)

	req, err := scanRequest(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return req, err
}

func (r *Repository) DueOffers(ctx context.Context, now time.Time) ([]Request, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+requestColumns+`
        FROM waitlist_requests
        WHERE status = 'notified' AND expires_at <= $1
        ORDER BY expires_at ASC
    `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *Repository) LapsedPending(ctx context.Context, now time.Time) ([]Request, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+requestColumns+`
        FROM waitlist_requests
        WHERE status = 'pending' AND end_time < $1
        ORDER BY end_time ASC
    `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}
