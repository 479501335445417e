// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"seopulse/internal/delivery/http/middleware"
	"seopulse/internal/delivery/http/response"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"
	"seopulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userResponse is the JSON shape the dashboard consumes for a user.
type userResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GetCurrentUser returns the authenticated user's profile, mirroring the
// session claims into local storage on the way.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextKeySessionClaims).(*service.SessionClaims)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	user, err := h.uc.GetCurrentUser(c.Request().Context(), claims)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.AvatarURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// currentUserID extracts the authenticated user ID set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
