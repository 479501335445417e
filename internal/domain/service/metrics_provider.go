package service

import (
	"context"
	"encoding/json"
	"errors"

	"seopulse/internal/domain/entity"
)

// ErrProviderNotConfigured is returned by Fetch when the credential has no
// property or site selected yet, so there is nothing to query. Callers fall
// back to sample payloads instead of failing the request.
var ErrProviderNotConfigured = errors.New("metrics provider not configured")

// MetricsProvider fetches a live metric payload from the external reporting
// API using the user's stored credential. Implementations shape the payload
// exactly as the dashboard consumes it; the gateway caches it verbatim.
type MetricsProvider interface {
	Fetch(ctx context.Context, credential *entity.Credential, metricType entity.MetricType, dateRange string) (json.RawMessage, error)
}

// SampleSource supplies the fixed illustrative payloads served when no live
// provider is configured or a live fetch fails with nothing cached to fall
// back on.
type SampleSource interface {
	Sample(metricType entity.MetricType) json.RawMessage
}
