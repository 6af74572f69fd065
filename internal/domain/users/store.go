package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CreateAndInvite(ctx context.Context, user *User, hashedToken string, exp time.Duration) error
	Activate(ctx context.Context, hashedToken string) error
	Update(ctx context.Context, userID int64, updates map[string]interface{}) error
	SetProfilePicture(ctx context.Context, userID int64, url string) error
	SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	DeleteRefreshToken(ctx context.Context, userID int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const userColumns = `id, first_name, last_name, email, password, role, profile_picture_url, refresh_token, is_active, created_at, updated_at`

func (r *Repository) scanUser(row pgx.Row) (*User, error) {
	var u User
	var refreshToken *string
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password.hash, &u.Role,
		&u.ProfilePictureURL, &refreshToken, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if refreshToken != nil {
		u.RefreshToken = *refreshToken
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(row)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = true`, email)
	return r.scanUser(row)
}

// CreateAndInvite stores the user and their activation invitation in one
// transaction so a failed invite never leaves an orphaned account.
func (r *Repository) CreateAndInvite(ctx context.Context, user *User, hashedToken string, exp time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
        INSERT INTO users (first_name, last_name, email, password, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, user.FirstName, user.LastName, user.Email, user.Password.hash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO user_invitations (token, user_id, expiry)
        VALUES ($1, $2, $3)
    `, hashedToken, user.ID, time.Now().Add(exp))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Activate flips the invited account to active and burns the invitation.
func (r *Repository) Activate(ctx context.Context, hashedToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var userID int64
	err = tx.QueryRow(ctx, `
        SELECT user_id FROM user_invitations
        WHERE token = $1 AND expiry > now()
    `, hashedToken).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET is_active = true, updated_at = now() WHERE id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_invitations WHERE user_id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update applies a partial update; allowed keys are whitelisted here so the
// handler can pass its payload map straight through.
func (r *Repository) Update(ctx context.Context, userID int64, updates map[string]interface{}) error {
	allowed := map[string]bool{"first_name": true, "last_name": true, "profile_picture_url": true}

	setClause := ""
	args := []interface{}{userID}
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

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET `+setClause+`, updated_at = now() WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetProfilePicture(ctx context.Context, userID int64, url string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET profile_picture_url = $1, updated_at = now() WHERE id = $2`, url, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2`, refreshToken, userID)
	return err
}

func (r *Repository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token *string
	err := r.db.QueryRow(ctx, `SELECT refresh_token FROM users WHERE id = $1`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return *token, nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = NULL, updated_at = now() WHERE id = $1`, userID)
	return err
}
