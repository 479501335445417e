package usecase

import (
	"context"
	"encoding/json"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// MetricsUsecase serves dashboard metric payloads through the cache.
type MetricsUsecase interface {
	// GetMetrics returns the payload for one metric type. A user without
	// the backing service connected gets the type's empty shape with no
	// error; cache, live fetch and fallback policy are internal.
	GetMetrics(ctx context.Context, userID uuid.UUID, metricType entity.MetricType, dateRange string) (json.RawMessage, error)
}
