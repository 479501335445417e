package handler

import (
	"log/slog"
	"net/http"
	"time"

	"seopulse/internal/delivery/http/response"
	"seopulse/internal/domain/entity"
	"seopulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuditHandler holds dependencies for the performance audit handlers.
type AuditHandler struct {
	uc     usecase.AuditUsecase
	logger *slog.Logger
}

// NewAuditHandler is the constructor for AuditHandler, injected by Fx.
func NewAuditHandler(uc usecase.AuditUsecase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		uc:     uc,
		logger: logger,
	}
}

// RunAudit runs one PageSpeed audit and returns the four category scores.
func (h *AuditHandler) RunAudit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	output, err := h.uc.RunAudit(c.Request().Context(), &usecase.RunAuditInput{
		UserID: userID,
		URL:    c.QueryParam("url"),
		Device: c.QueryParam("device"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// auditHistoryEntry is the JSON shape of one archived audit.
type auditHistoryEntry struct {
	ID                 string    `json:"id"`
	URL                string    `json:"url"`
	PerformanceScore   int       `json:"performanceScore"`
	SEOScore           int       `json:"seoScore"`
	AccessibilityScore int       `json:"accessibilityScore"`
	BestPracticesScore int       `json:"bestPracticesScore"`
	Device             string    `json:"device"`
	CreatedAt          time.Time `json:"createdAt"`
}

// GetHistory returns past audits, filtered by URL when the query names one.
func (h *AuditHandler) GetHistory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Unauthorized")
	}

	records, err := h.uc.History(c.Request().Context(), userID, c.QueryParam("url"))
	if err != nil {
		return errors.WithStack(err)
	}

	entries := make([]auditHistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, toAuditHistoryEntry(record))
	}

	return c.JSON(http.StatusOK, entries)
}

func toAuditHistoryEntry(record *entity.AuditRecord) auditHistoryEntry {
	return auditHistoryEntry{
		ID:                 record.ID.String(),
		URL:                record.URL,
		PerformanceScore:   record.PerformanceScore,
		SEOScore:           record.SEOScore,
		AccessibilityScore: record.AccessibilityScore,
		BestPracticesScore: record.BestPracticesScore,
		Device:             string(record.Device),
		CreatedAt:          record.CreatedAt,
	}
}
