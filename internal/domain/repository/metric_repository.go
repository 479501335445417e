package repository

import (
	"context"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// MetricRepository persists cached metric payloads. The newest row per
// (user, metric type) is the one the gateway serves; older rows are kept as
// history.
type MetricRepository interface {
	// FindByType retrieves cached metrics for one type, newest first.
	// An empty slice is a cache miss, not an error.
	FindByType(ctx context.Context, userID uuid.UUID, metricType entity.MetricType) ([]*entity.CachedMetric, error)

	// Create persists a freshly fetched payload.
	Create(ctx context.Context, metric *entity.CachedMetric) error

	// Update replaces the payload and date range of an existing row,
	// bumping its updated_at so it counts as fresh again.
	Update(ctx context.Context, metric *entity.CachedMetric) error
}
