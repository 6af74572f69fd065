package pushtokens

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Save(ctx context.Context, userID int64, token string) error
	GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
	Delete(ctx context.Context, userID int64, token string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, userID int64, token string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO push_tokens (user_id, token)
        VALUES ($1, $2)
        ON CONFLICT (user_id, token) DO UPDATE SET updated_at = now()
    `, userID, token)
	return err
}

func (r *Repository) GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	rows, err := r.db.Query(ctx, `
        SELECT user_id, token
        FROM push_tokens
        WHERE user_id = ANY($1)
    `, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var userID int64
		var token string
		if err := rows.Scan(&userID, &token); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], token)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, userID int64, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	return err
}
