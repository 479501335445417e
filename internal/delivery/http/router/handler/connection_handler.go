package handler

import (
	"log/slog"
	"net/http"

	"seopulse/config"
	"seopulse/internal/delivery/http/response"
	"seopulse/internal/domain/entity"
	"seopulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ConnectionHandler holds dependencies for OAuth connection handlers.
type ConnectionHandler struct {
	uc          usecase.ConnectionUsecase
	settingsURL string
	logger      *slog.Logger
}

// NewConnectionHandler is the constructor for ConnectionHandler, injected by Fx.
func NewConnectionHandler(uc usecase.ConnectionUsecase, cfg *config.Config, logger *slog.Logger) *ConnectionHandler {
	settingsURL := "/settings"
	if cfg != nil && cfg.GoogleOAuth.SettingsURL != "" {
		settingsURL = cfg.GoogleOAuth.SettingsURL
	}

	return &ConnectionHandler{
		uc:          uc,
		settingsURL: settingsURL,
		logger:      logger,
	}
}

// GetConnections reports which services the user has connected.
func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	output, err := h.uc.Connections(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// Connect starts the OAuth flow and returns the provider consent URL.
func (h *ConnectionHandler) Connect(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	svc, ok := entity.ParseServiceType(c.Param("serviceType"))
	if !ok {
		return response.BadRequest(c, "INVALID_SERVICE", "Unknown service type")
	}

	authURL, err := h.uc.Connect(c.Request().Context(), userID, svc)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"authUrl": authURL})
}

// Callback completes the OAuth flow. Google's redirect lands here, so the
// response is always a browser redirect back to the settings page.
func (h *ConnectionHandler) Callback(c echo.Context) error {
	svc, ok := entity.ParseServiceType(c.Param("serviceType"))
	if !ok {
		return c.Redirect(http.StatusFound, h.settingsURL+"?error=oauth_failed")
	}

	output := h.uc.Callback(c.Request().Context(), svc, c.QueryParam("code"), c.QueryParam("state"))

	return c.Redirect(http.StatusFound, output.RedirectURL)
}

// Disconnect removes the stored credential for one service.
func (h *ConnectionHandler) Disconnect(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	svc, ok := entity.ParseServiceType(c.Param("serviceType"))
	if !ok {
		return response.BadRequest(c, "INVALID_SERVICE", "Unknown service type")
	}

	if err := h.uc.Disconnect(c.Request().Context(), userID, svc); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
