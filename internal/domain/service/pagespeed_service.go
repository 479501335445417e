package service

import (
	"context"
	"encoding/json"

	"seopulse/internal/domain/entity"
)

// PageSpeedResult carries the four category scores extracted from one
// provider run plus the raw result for archival.
type PageSpeedResult struct {
	PerformanceScore   int
	SEOScore           int
	AccessibilityScore int
	BestPracticesScore int
	RawPayload         json.RawMessage
}

// PageSpeedService runs one synchronous performance audit against the
// external scoring API. There is no queueing or polling; a slow provider
// stalls only the requesting call.
type PageSpeedService interface {
	Run(ctx context.Context, url string, device entity.Device) (*PageSpeedResult, error)
}
