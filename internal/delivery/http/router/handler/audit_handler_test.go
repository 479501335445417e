package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"seopulse/internal/delivery/http/middleware"
	"seopulse/internal/domain/entity"
	"seopulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuditUsecase records the inputs and replies with canned values.
type stubAuditUsecase struct {
	output  *usecase.AuditOutput
	records []*entity.AuditRecord

	gotInput *usecase.RunAuditInput
	gotURL   string
}

func (s *stubAuditUsecase) RunAudit(_ context.Context, input *usecase.RunAuditInput) (*usecase.AuditOutput, error) {
	s.gotInput = input
	return s.output, nil
}

func (s *stubAuditUsecase) History(_ context.Context, _ uuid.UUID, url string) ([]*entity.AuditRecord, error) {
	s.gotURL = url
	return s.records, nil
}

func TestAuditHandler_RunAudit(t *testing.T) {
	uc := &stubAuditUsecase{output: &usecase.AuditOutput{
		PerformanceScore:   87,
		SEOScore:           92,
		AccessibilityScore: 95,
		BestPracticesScore: 100,
	}}
	h := NewAuditHandler(uc, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/lighthouse/audit?url=https%3A%2F%2Fexample.com&device=desktop", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	userID := uuid.New()
	c.Set(middleware.ContextKeyUserID, userID)

	require.NoError(t, h.RunAudit(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"performanceScore": 87, "seoScore": 92, "accessibilityScore": 95, "bestPracticesScore": 100}`,
		rec.Body.String(),
	)
	require.NotNil(t, uc.gotInput)
	assert.Equal(t, userID, uc.gotInput.UserID)
	assert.Equal(t, "https://example.com", uc.gotInput.URL)
	assert.Equal(t, "desktop", uc.gotInput.Device)
}

func TestAuditHandler_GetHistory(t *testing.T) {
	record := &entity.AuditRecord{
		ID:               uuid.New(),
		URL:              "https://example.com",
		PerformanceScore: 87,
		Device:           entity.DeviceMobile,
	}
	uc := &stubAuditUsecase{records: []*entity.AuditRecord{record}}
	h := NewAuditHandler(uc, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/lighthouse/history?url=https%3A%2F%2Fexample.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, h.GetHistory(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", uc.gotURL)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, record.ID.String(), entries[0]["id"])
	assert.Equal(t, "mobile", entries[0]["device"])
}

func TestAuditHandler_GetHistory_EmptyListNotNull(t *testing.T) {
	h := NewAuditHandler(&stubAuditUsecase{}, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/lighthouse/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, h.GetHistory(c))
	assert.JSONEq(t, "[]", rec.Body.String())
}
