package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MetricType names a category of cached dashboard data.
type MetricType string

const (
	MetricOverview  MetricType = "overview"
	MetricPages     MetricType = "pages"
	MetricKeywords  MetricType = "keywords"
	MetricAnalytics MetricType = "analytics"
)

// ServiceFor resolves which credential a metric type is served from:
// overview, pages and keywords come from Search Console, while the
// analytics metric type comes from the Analytics API.
func (m MetricType) ServiceFor() ServiceType {
	if m == MetricAnalytics {
		return ServiceAnalytics
	}

	return ServiceSearchConsole
}

// EmptyShape returns the JSON value a disconnected user receives for this
// metric type: the list-shaped types render as an empty table, the rest as
// an empty object. Disconnected is a valid terminal state, not an error.
func (m MetricType) EmptyShape() json.RawMessage {
	switch m {
	case MetricPages, MetricKeywords:
		return json.RawMessage("[]")
	default:
		return json.RawMessage("{}")
	}
}

// CachedMetric holds the most recent payload fetched from a provider for one
// (user, metric type) pair. Payloads are opaque to this service and are
// returned to the dashboard verbatim.
type CachedMetric struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	MetricType MetricType
	Payload    json.RawMessage // Opaque provider payload, stored as jsonb.
	DateRange  string          // Optional range label, e.g. "28d"; empty when unset.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FreshAt reports whether the cached row is still within the given TTL at
// the supplied instant. A non-positive TTL disables expiry.
func (c *CachedMetric) FreshAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}

	return now.Sub(c.UpdatedAt) <= ttl
}
