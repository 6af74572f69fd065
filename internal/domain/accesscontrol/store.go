package accesscontrol

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type Store interface {
	CurrentRole(ctx context.Context, userID int64) (Role, error)
	SwitchRole(ctx context.Context, userID int64, to Role) error
	RoleHistory(ctx context.Context, userID int64) ([]RoleChange, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) CurrentRole(ctx context.Context, userID int64) (Role, error) {
	var raw string
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return ParseRole(raw)
}

// SwitchRole updates the user's active role and appends the change to the
// audit trail in a single transaction.
func (r *Repository) SwitchRole(ctx context.Context, userID int64, to Role) error {
	if _, err := ParseRole(string(to)); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var from string
	err = tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&from)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if Role(from) == to {
		return tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, to, userID); err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO role_changes (user_id, from_role, to_role)
        VALUES ($1, $2, $3)
    `, userID, from, to)
	if err != nil {
		return fmt.Errorf("record role change: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) RoleHistory(ctx context.Context, userID int64) ([]RoleChange, error) {
	rows, err := r.db.Query(ctx, `
        SELECT user_id, from_role, to_role, switched_at
        FROM role_changes
        WHERE user_id = $1
        ORDER BY switched_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []RoleChange
	for rows.Next() {
		var c RoleChange
		if err := rows.Scan(&c.UserID, &c.FromRole, &c.ToRole, &c.SwitchedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
