package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"squeedr/internal/domain/accesscontrol"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID                int64              `json:"id"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Email             string             `json:"email"`
	Password          password           `json:"-"`
	Role              accesscontrol.Role `json:"role"`
	ProfilePictureURL *string            `json:"profile_picture_url,omitempty" swaggertype:"string"`
	RefreshToken      string             `json:"-"` // Sensitive data
	IsActive          bool               `json:"is_active"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// password keeps the plaintext out of reach and the hash out of JSON.
type password struct {
	text *string `json:"-"`
	hash []byte  `json:"-"`
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}
