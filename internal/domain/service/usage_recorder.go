package service

import "seopulse/internal/domain/entity"

// UsageRecorder collects operational counters from the gateways. The
// Prometheus implementation lives in the infrastructure layer; a no-op
// implementation backs tests.
type UsageRecorder interface {
	RecordCacheHit(metricType entity.MetricType)
	RecordCacheMiss(metricType entity.MetricType)
	RecordProviderFetch(service entity.ServiceType, success bool)
	RecordAudit(success bool)
}
