// Package calendartokens persists third-party calendar OAuth tokens
// server-side. Tokens never travel to the browser.
package calendartokens

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"
)

var ErrNotConnected = errors.New("no calendar connection for user")

const ProviderGoogle = "google"

type Store interface {
	Upsert(ctx context.Context, userID int64, provider string, token *oauth2.Token) error
	Get(ctx context.Context, userID int64, provider string) (*oauth2.Token, error)
	Delete(ctx context.Context, userID int64, provider string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, userID int64, provider string, token *oauth2.Token) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO calendar_tokens (user_id, provider, access_token, refresh_token, token_type, expiry)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, provider) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), calendar_tokens.refresh_token),
            token_type = EXCLUDED.token_type,
            expiry = EXCLUDED.expiry,
            updated_at = now()
    `, userID, provider, token.AccessToken, token.RefreshToken, token.TokenType, token.Expiry)
	return err
}

func (r *Repository) Get(ctx context.Context, userID int64, provider string) (*oauth2.Token, error) {
	var token oauth2.Token
	err := r.db.QueryRow(ctx, `
        SELECT access_token, refresh_token, token_type, expiry
        FROM calendar_tokens
        WHERE user_id = $1 AND provider = $2
    `, userID, provider).Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &token.Expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotConnected
		}
		return nil, err
	}
	return &token, nil
}

func (r *Repository) Delete(ctx context.Context, userID int64, provider string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_tokens WHERE user_id = $1 AND provider = $2`, userID, provider)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotConnected
	}
	return nil
}
