package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id int64) (*Session, error)
	List(ctx context.Context, filter Filter) ([]Session, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	MarkCompletedSessions(ctx context.Context) (int64, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const sessionColumns = `id, title, expert_id, client_id, workspace_id, start_time, end_time, status, notes, created_at, updated_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.Title, &s.ExpertID, &s.ClientID, &s.WorkspaceID, &s.Start, &s.End, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, s *Session) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO sessions (title, expert_id, client_id, workspace_id, start_time, end_time, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `, s.Title, s.ExpertID, s.ClientID, s.WorkspaceID, s.Start, s.End, s.Status, s.Notes).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Session, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Session, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+sessionColumns+`
        FROM sessions
        WHERE ($1::bigint IS NULL OR expert_id = $1)
          AND ($2::bigint IS NULL OR client_id = $2)
          AND ($3::text IS NULL OR status = $3)
          AND ($4::timestamptz IS NULL OR start_time >= $4)
        ORDER BY start_time ASC
        LIMIT $5 OFFSET $6
    `, filter.ExpertID, filter.ClientID, filter.Status, filter.From, filter.Limit, filter.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"title": true, "workspace_id": true, "start_time": true,
		"end_time": true, "status": true, "notes": true,
	}

	setClause := ""
	args := []interface{}{id}
	i := 2
	for col, val := range updates {
		if !allowed[col] {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", col, i)
		args = append(args, val)
		i++
	}
	if setClause == "" {
		return nil
	}

	tag, err := r.db.Exec(ctx, `UPDATE sessions SET `+setClause+`, updated_at = now() WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkCompletedSessions flips upcoming sessions whose end time has passed.
// Called from the background loop.
func (r *Repository) MarkCompletedSessions(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE sessions
        SET status = 'completed', updated_at = now()
        WHERE status = 'upcoming' AND end_time < now()
    `)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
