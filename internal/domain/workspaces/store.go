package workspaces

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, ws *Workspace) error
	GetByID(ctx context.Context, id int64) (*Workspace, error)
	List(ctx context.Context, filter Filter) ([]Workspace, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// BookedIntervals returns confirmed booking windows overlapping the
	// given day, for availability rendering.
	BookedIntervals(ctx context.Context, workspaceID int64, dayStart, dayEnd time.Time) ([]Interval, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, ws *Workspace) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO workspaces (owner_id, name, description, location, capacity, open_hour, close_hour)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `, ws.OwnerID, ws.Name, ws.Description, ws.Location, ws.Capacity, ws.OpenHour, ws.CloseHour).
		Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Workspace, error) {
	var ws Workspace
	err := r.db.QueryRow(ctx, `
        SELECT id, owner_id, name, description, location, capacity, open_hour, close_hour, created_at, updated_at
        FROM workspaces
        WHERE id = $1
    `, id).Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.Description, &ws.Location, &ws.Capacity, &ws.OpenHour, &ws.CloseHour, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Workspace, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, owner_id, name, description, location, capacity, open_hour, close_hour, created_at, updated_at
        FROM workspaces
        WHERE ($1::bigint IS NULL OR owner_id = $1)
        ORDER BY name ASC
        LIMIT $2 OFFSET $3
    `, filter.OwnerID, filter.Limit, filter.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Workspace
	for rows.Next() {
		var ws Workspace
		if err := rows.Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.Description, &ws.Location, &ws.Capacity, &ws.OpenHour, &ws.CloseHour, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"name": true, "description": true, "location": true,
		"capacity": true, "open_hour": true, "close_hour": true,
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

	tag, err := r.db.Exec(ctx, `UPDATE workspaces SET `+setClause+`, updated_at = now() WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) BookedIntervals(ctx context.Context, workspaceID int64, dayStart, dayEnd time.Time) ([]Interval, error) {
	rows, err := r.db.Query(ctx, `
        SELECT start_time, end_time
        FROM bookings
        WHERE workspace_id = $1 AND status = 'confirmed'
          AND start_time < $2 AND end_time > $3
        ORDER BY start_time
    `, workspaceID, dayEnd, dayStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}
