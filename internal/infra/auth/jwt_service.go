// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"seopulse/config"
	"seopulse/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// It validates session tokens minted by the external login provider; this
// service never issues production tokens itself.
type jwtService struct {
	accessSecret string // Secret key shared with the session provider.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &jwtService{
		accessSecret: cfg.SecretKey.Access,
	}, nil
}

// ValidateToken checks a session token and extracts its profile claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.SessionClaims, error) {
	token, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return &service.SessionClaims{
		UserID:    userID,
		Email:     stringClaim(mapClaims, "email"),
		FirstName: stringClaim(mapClaims, "first_name"),
		LastName:  stringClaim(mapClaims, "last_name"),
		AvatarURL: stringClaim(mapClaims, "picture"),
	}, nil
}

// GenerateToken mints a session-compatible token. Only the development test
// routes use this; production sessions come from the login provider.
func (s *jwtService) GenerateToken(claims service.SessionClaims, ttl time.Duration) (string, error) {
	mapClaims := jwt.MapClaims{
		"sub":        claims.UserID.String(),
		"email":      claims.Email,
		"first_name": claims.FirstName,
		"last_name":  claims.LastName,
		"picture":    claims.AvatarURL,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(s.accessSecret))
}

// Parse checks the validity of a token string against the shared secret.
func (s *jwtService) Parse(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.accessSecret), nil
	})
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
