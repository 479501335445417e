package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricType_ServiceFor(t *testing.T) {
	assert.Equal(t, ServiceSearchConsole, MetricOverview.ServiceFor())
	assert.Equal(t, ServiceSearchConsole, MetricPages.ServiceFor())
	assert.Equal(t, ServiceSearchConsole, MetricKeywords.ServiceFor())
	assert.Equal(t, ServiceAnalytics, MetricAnalytics.ServiceFor())
}

func TestMetricType_EmptyShape(t *testing.T) {
	assert.Equal(t, "{}", string(MetricOverview.EmptyShape()))
	assert.Equal(t, "{}", string(MetricAnalytics.EmptyShape()))
	assert.Equal(t, "[]", string(MetricPages.EmptyShape()))
	assert.Equal(t, "[]", string(MetricKeywords.EmptyShape()))
}

func TestCachedMetric_FreshAt(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		updatedAt time.Time
		ttl       time.Duration
		want      bool
	}{
		{name: "within the TTL", updatedAt: now.Add(-time.Hour), ttl: 6 * time.Hour, want: true},
		{name: "past the TTL", updatedAt: now.Add(-7 * time.Hour), ttl: 6 * time.Hour, want: false},
		{name: "exactly at the TTL", updatedAt: now.Add(-6 * time.Hour), ttl: 6 * time.Hour, want: true},
		{name: "zero TTL disables expiry", updatedAt: now.Add(-1000 * time.Hour), ttl: 0, want: true},
		{name: "negative TTL disables expiry", updatedAt: now.Add(-1000 * time.Hour), ttl: -time.Hour, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric := &CachedMetric{UpdatedAt: tt.updatedAt}
			assert.Equal(t, tt.want, metric.FreshAt(now, tt.ttl))
		})
	}
}
