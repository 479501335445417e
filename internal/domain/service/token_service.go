package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the profile claims this service consumes from the
// session provider's access token.
type SessionClaims struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// TokenService validates session tokens issued by the external login
// provider and, for development routes, can mint compatible tokens.
type TokenService interface {
	// ValidateToken parses and verifies a session token, returning its
	// profile claims.
	ValidateToken(tokenString string) (*SessionClaims, error)

	// GenerateToken mints a session token for the given claims with the
	// given lifetime. Only used by the optional test routes.
	GenerateToken(claims SessionClaims, ttl time.Duration) (string, error)

	// Parse exposes the underlying JWT for callers that need raw claims.
	Parse(tokenString string) (*jwt.Token, error)
}
