package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"squeedr/internal/domain/accesscontrol"
)

type Authenticator interface {
	GenerateTokens(userID int64, role accesscontrol.Role) (string, string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
	ValidateRefreshToken(token string) (*jwt.Token, error)
}
