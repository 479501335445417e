package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"seopulse/internal/delivery/http/middleware"
	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMetricsUsecase records the request and replies with a fixed payload.
type stubMetricsUsecase struct {
	payload json.RawMessage

	gotMetricType entity.MetricType
	gotDateRange  string
}

func (s *stubMetricsUsecase) GetMetrics(_ context.Context, _ uuid.UUID, metricType entity.MetricType, dateRange string) (json.RawMessage, error) {
	s.gotMetricType = metricType
	s.gotDateRange = dateRange

	return s.payload, nil
}

func TestMetricsHandler_ServesPayloadVerbatim(t *testing.T) {
	uc := &stubMetricsUsecase{payload: json.RawMessage(`{"totalClicks":1845}`)}
	h := NewMetricsHandler(uc, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/seo/overview?dateRange=7d", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, h.GetSeoOverview(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"totalClicks":1845}`, rec.Body.String())
	assert.Equal(t, entity.MetricOverview, uc.gotMetricType)
	assert.Equal(t, "7d", uc.gotDateRange)
}

func TestMetricsHandler_RoutesToMetricTypes(t *testing.T) {
	tests := []struct {
		name string
		call func(*MetricsHandler, echo.Context) error
		want entity.MetricType
	}{
		{name: "keywords", call: (*MetricsHandler).GetKeywords, want: entity.MetricKeywords},
		{name: "pages", call: (*MetricsHandler).GetPages, want: entity.MetricPages},
		{name: "analytics", call: (*MetricsHandler).GetAnalyticsOverview, want: entity.MetricAnalytics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubMetricsUsecase{payload: json.RawMessage(`[]`)}
			h := NewMetricsHandler(uc, discardLogger())

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(middleware.ContextKeyUserID, uuid.New())

			require.NoError(t, tt.call(h, c))
			assert.Equal(t, tt.want, uc.gotMetricType)
		})
	}
}

func TestMetricsHandler_RejectsMissingSession(t *testing.T) {
	h := NewMetricsHandler(&stubMetricsUsecase{}, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/seo/overview", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetSeoOverview(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
