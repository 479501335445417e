// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"net/http"
	"strings"

	"seopulse/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys the auth middleware sets for downstream handlers.
const (
	// ContextKeyUserID holds the authenticated user's uuid.UUID.
	ContextKeyUserID = "userID"

	// ContextKeySessionClaims holds the *service.SessionClaims.
	ContextKeySessionClaims = "sessionClaims"
)

// AuthMiddleware validates session tokens issued by the external login
// provider and exposes their claims to handlers.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeySessionClaims, claims)

		return next(c)
	}
}

// extractToken reads the session token from the Authorization header or,
// for browser-driven requests, the session cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}

		return ""
	}

	cookie, err := c.Cookie("session")
	if err != nil {
		return ""
	}

	return cookie.Value
}
