// Package metrics provides Prometheus collection and exposure for the
// gateways' operational counters.
package metrics

import (
	"net/http"

	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements service.UsageRecorder on a Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	providerCalls *prometheus.CounterVec
	audits        *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry, so tests can build
// isolated instances without colliding on metric names.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seopulse_metric_cache_hits_total",
			Help: "Metric requests served from a fresh cached payload.",
		}, []string{"metric_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seopulse_metric_cache_misses_total",
			Help: "Metric requests that needed a live fetch or fallback.",
		}, []string{"metric_type"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seopulse_provider_fetch_total",
			Help: "Live fetches against the Google reporting APIs.",
		}, []string{"service", "result"}),
		audits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seopulse_lighthouse_audits_total",
			Help: "PageSpeed audit runs.",
		}, []string{"result"}),
	}

	c.registry.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.providerCalls,
		c.audits,
	)

	return c
}

// NewUsageRecorder exposes the Collector as the domain interface for Fx.
func NewUsageRecorder(collector *Collector) service.UsageRecorder {
	return collector
}

// RecordCacheHit counts a metric request served from fresh cache.
func (c *Collector) RecordCacheHit(metricType entity.MetricType) {
	c.cacheHits.WithLabelValues(string(metricType)).Inc()
}

// RecordCacheMiss counts a metric request that missed the cache.
func (c *Collector) RecordCacheMiss(metricType entity.MetricType) {
	c.cacheMisses.WithLabelValues(string(metricType)).Inc()
}

// RecordProviderFetch counts one live fetch attempt.
func (c *Collector) RecordProviderFetch(svc entity.ServiceType, success bool) {
	c.providerCalls.WithLabelValues(string(svc), resultLabel(success)).Inc()
}

// RecordAudit counts one PageSpeed audit run.
func (c *Collector) RecordAudit(success bool) {
	c.audits.WithLabelValues(resultLabel(success)).Inc()
}

// Handler returns the scrape handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
