package google

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"time"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultPageSpeedEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// PageSpeed runs can take a while; the provider analyzes the page live.
const pageSpeedTimeout = 90 * time.Second

// pageSpeedService implements service.PageSpeedService against the PageSpeed
// Insights API.
type pageSpeedService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewPageSpeedService builds the audit provider from the application config.
func NewPageSpeedService(cfg *config.Config) service.PageSpeedService {
	endpoint := cfg.PageSpeed.Endpoint
	if endpoint == "" {
		endpoint = defaultPageSpeedEndpoint
	}

	return &pageSpeedService{
		endpoint: endpoint,
		apiKey:   cfg.PageSpeed.APIKey,
		client:   &http.Client{Timeout: pageSpeedTimeout},
	}
}

// pageSpeedResponse is the subset of the provider response this service
// reads. The lighthouse result is kept raw so the full document can be
// archived with the audit row.
type pageSpeedResponse struct {
	LighthouseResult json.RawMessage `json:"lighthouseResult"`
	Error            struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// lighthouseCategories carries the fractional scores in [0, 1] extracted
// from the lighthouse result.
type lighthouseCategories struct {
	Categories map[string]struct {
		Score *float64 `json:"score"`
	} `json:"categories"`
}

// Run audits one URL with the given device strategy.
func (s *pageSpeedService) Run(ctx context.Context, pageURL string, device entity.Device) (*service.PageSpeedResult, error) {
	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("strategy", string(device))
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pagespeed request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call pagespeed API")
	}
	defer resp.Body.Close()

	var parsed pageSpeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode pagespeed response")
	}

	// The provider returns its own error message on failure; surface it
	// instead of a generic gateway error.
	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.NewPageSpeedError(resp.StatusCode, parsed.Error.Message)
	}

	if len(parsed.LighthouseResult) == 0 {
		return nil, domainerrors.NewPageSpeedError(http.StatusBadGateway, "pagespeed response carried no lighthouse result")
	}

	var categories lighthouseCategories
	if err := json.Unmarshal(parsed.LighthouseResult, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode lighthouse categories")
	}

	return &service.PageSpeedResult{
		PerformanceScore:   categories.score("performance"),
		SEOScore:           categories.score("seo"),
		AccessibilityScore: categories.score("accessibility"),
		BestPracticesScore: categories.score("best-practices"),
		RawPayload:         parsed.LighthouseResult,
	}, nil
}

// score scales a fractional category score to 0-100. A missing category
// scores zero rather than failing the audit.
func (c lighthouseCategories) score(name string) int {
	category, ok := c.Categories[name]
	if !ok || category.Score == nil {
		return 0
	}

	return int(math.Round(*category.Score * 100))
}
