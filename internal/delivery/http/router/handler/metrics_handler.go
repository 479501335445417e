package handler

import (
	"log/slog"
	"net/http"

	"seopulse/internal/delivery/http/response"
	"seopulse/internal/domain/entity"
	"seopulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MetricsHandler holds dependencies for the cached dashboard metric handlers.
type MetricsHandler struct {
	uc     usecase.MetricsUsecase
	logger *slog.Logger
}

// NewMetricsHandler is the constructor for MetricsHandler, injected by Fx.
func NewMetricsHandler(uc usecase.MetricsUsecase, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetSeoOverview serves the Search Console overview payload.
func (h *MetricsHandler) GetSeoOverview(c echo.Context) error {
	return h.serve(c, entity.MetricOverview)
}

// GetKeywords serves the keyword ranking payload.
func (h *MetricsHandler) GetKeywords(c echo.Context) error {
	return h.serve(c, entity.MetricKeywords)
}

// GetPages serves the top pages payload.
func (h *MetricsHandler) GetPages(c echo.Context) error {
	return h.serve(c, entity.MetricPages)
}

// GetAnalyticsOverview serves the Analytics payload.
func (h *MetricsHandler) GetAnalyticsOverview(c echo.Context) error {
	return h.serve(c, entity.MetricAnalytics)
}

// serve runs the shared cache flow and writes the payload verbatim, so the
// dashboard receives exactly what was fetched or cached.
func (h *MetricsHandler) serve(c echo.Context, metricType entity.MetricType) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	payload, err := h.uc.GetMetrics(c.Request().Context(), userID, metricType, c.QueryParam("dateRange"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSONBlob(http.StatusOK, payload)
}
