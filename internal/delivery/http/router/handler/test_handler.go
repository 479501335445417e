package handler

import (
	"net/http"
	"time"

	"seopulse/internal/delivery/http/response"
	"seopulse/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// devTokenTTL bounds tokens minted through the test routes.
const devTokenTTL = 24 * time.Hour

// TestHandler handles development-only endpoints. The router registers it
// only when test routes are enabled in config.
type TestHandler struct {
	tokenSvc service.TokenService
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(tokenSvc service.TokenService) *TestHandler {
	return &TestHandler{tokenSvc: tokenSvc}
}

type issueTokenRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// IssueToken mints a session-compatible token so the API can be exercised
// without the external login provider.
func (h *TestHandler) IssueToken(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.tokenSvc.GenerateToken(service.SessionClaims{
		UserID:    uuid.New(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, devTokenTTL)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": token}, "Token issued")
}
