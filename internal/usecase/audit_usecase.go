package usecase

import (
	"context"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RunAuditInput carries the raw query parameters of an audit request.
// Validation happens in the use case so every caller gets the same rules.
type RunAuditInput struct {
	UserID uuid.UUID
	URL    string
	Device string
}

// --- Output DTOs ---

// AuditOutput returns the four extracted category scores.
type AuditOutput struct {
	PerformanceScore   int `json:"performanceScore"`
	SEOScore           int `json:"seoScore"`
	AccessibilityScore int `json:"accessibilityScore"`
	BestPracticesScore int `json:"bestPracticesScore"`
}

// AuditUsecase runs performance audits and serves their history.
type AuditUsecase interface {
	// RunAudit validates the input, runs one provider audit, persists
	// the result and returns the scores.
	RunAudit(ctx context.Context, input *RunAuditInput) (*AuditOutput, error)

	// History returns past audits, filtered to one URL when url is
	// non-empty, newest first.
	History(ctx context.Context, userID uuid.UUID, url string) ([]*entity.AuditRecord, error)
}
