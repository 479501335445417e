package repository

import (
	"context"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// AuditRepository is the append-and-query store for performance audits.
// There are no updates or deletes; every audit run adds a row.
type AuditRepository interface {
	// Create persists one audit result.
	Create(ctx context.Context, audit *entity.AuditRecord) error

	// FindByURL retrieves the audit history for one URL, newest first.
	FindByURL(ctx context.Context, userID uuid.UUID, url string) ([]*entity.AuditRecord, error)

	// FindByUser retrieves all audits a user has run, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditRecord, error)
}
