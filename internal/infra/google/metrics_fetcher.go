package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	searchConsoleAPIURL = "https://www.googleapis.com/webmasters/v3/sites"
	analyticsDataAPIURL = "https://analyticsdata.googleapis.com/v1beta/properties"

	defaultRangeDays = 28
	topRowLimit      = 5
	fullRowLimit     = 20
)

// metricsFetcher implements service.MetricsProvider against the Search
// Console and Analytics Data APIs. Payloads are shaped exactly as the
// dashboard renders them, so the cache can serve them verbatim.
type metricsFetcher struct {
	configs map[entity.ServiceType]*oauth2.Config
	now     func() time.Time
}

// NewMetricsFetcher builds the live metrics provider.
func NewMetricsFetcher(cfg *config.Config) (service.MetricsProvider, error) {
	configs, err := newOAuthConfigs(cfg)
	if err != nil {
		return nil, err
	}

	return &metricsFetcher{
		configs: configs,
		now:     time.Now,
	}, nil
}

// Fetch retrieves one metric payload using the user's stored credential.
func (f *metricsFetcher) Fetch(ctx context.Context, credential *entity.Credential, metricType entity.MetricType, dateRange string) (json.RawMessage, error) {
	if credential == nil || credential.PropertyID == "" {
		return nil, service.ErrProviderNotConfigured
	}

	source, err := tokenSourceFor(ctx, f.configs, credential)
	if err != nil {
		return nil, err
	}
	client := oauth2.NewClient(ctx, source)

	end := f.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -parseRangeDays(dateRange))

	switch metricType {
	case entity.MetricOverview:
		return f.fetchOverview(ctx, client, credential.PropertyID, start, end)
	case entity.MetricPages:
		return f.fetchSearchRows(ctx, client, credential.PropertyID, start, end, "page", pageRow)
	case entity.MetricKeywords:
		return f.fetchKeywords(ctx, client, credential.PropertyID, start, end)
	case entity.MetricAnalytics:
		return f.fetchAnalytics(ctx, client, credential.PropertyID, start, end)
	default:
		return nil, errors.Errorf("unknown metric type %q", metricType)
	}
}

// parseRangeDays understands labels like "7d", "28d" or "90d".
func parseRangeDays(dateRange string) int {
	if len(dateRange) < 2 || dateRange[len(dateRange)-1] != 'd' {
		return defaultRangeDays
	}

	days, err := strconv.Atoi(dateRange[:len(dateRange)-1])
	if err != nil || days <= 0 {
		return defaultRangeDays
	}

	return days
}

// --- Search Console ---

// searchRow is one row of a searchAnalytics query response. CTR and position
// come back as fractions; callers convert to the percentages the dashboard
// shows.
type searchRow struct {
	Keys        []string `json:"keys"`
	Clicks      float64  `json:"clicks"`
	Impressions float64  `json:"impressions"`
	CTR         float64  `json:"ctr"`
	Position    float64  `json:"position"`
}

func (f *metricsFetcher) querySearchConsole(ctx context.Context, client *http.Client, siteURL string, start, end time.Time, dimension string, rowLimit int) ([]searchRow, error) {
	body, err := json.Marshal(map[string]any{
		"startDate":  start.Format("2006-01-02"),
		"endDate":    end.Format("2006-01-02"),
		"dimensions": []string{dimension},
		"rowLimit":   rowLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode search analytics query")
	}

	endpoint := searchConsoleAPIURL + "/" + url.PathEscape(siteURL) + "/searchAnalytics/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create search analytics request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query search analytics")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("search analytics query failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Rows []searchRow `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode search analytics response")
	}

	return result.Rows, nil
}

func (f *metricsFetcher) fetchOverview(ctx context.Context, client *http.Client, siteURL string, start, end time.Time) (json.RawMessage, error) {
	dateRows, err := f.querySearchConsole(ctx, client, siteURL, start, end, "date", 1000)
	if err != nil {
		return nil, err
	}
	pageRows, err := f.querySearchConsole(ctx, client, siteURL, start, end, "page", topRowLimit)
	if err != nil {
		return nil, err
	}

	var totalClicks, totalImpressions, positionSum float64
	trend := make([]map[string]any, 0, len(dateRows))
	for _, row := range dateRows {
		totalClicks += row.Clicks
		totalImpressions += row.Impressions
		positionSum += row.Position

		trend = append(trend, map[string]any{
			"date":        trendLabel(row.Keys, "2006-01-02"),
			"clicks":      int(math.Round(row.Clicks)),
			"impressions": int(math.Round(row.Impressions)),
		})
	}

	avgCTR := 0.0
	if totalImpressions > 0 {
		avgCTR = totalClicks / totalImpressions * 100
	}
	avgPosition := 0.0
	if len(dateRows) > 0 {
		avgPosition = positionSum / float64(len(dateRows))
	}

	topPages := make([]map[string]any, 0, len(pageRows))
	for _, row := range pageRows {
		topPages = append(topPages, map[string]any{
			"page":        firstKey(row.Keys),
			"clicks":      int(math.Round(row.Clicks)),
			"impressions": int(math.Round(row.Impressions)),
			"ctr":         roundOne(row.CTR * 100),
		})
	}

	return json.Marshal(map[string]any{
		"totalClicks":      int(math.Round(totalClicks)),
		"totalImpressions": int(math.Round(totalImpressions)),
		"avgCtr":           roundOne(avgCTR),
		"avgPosition":      roundOne(avgPosition),
		"trafficTrend":     trend,
		"topPages":         topPages,
	})
}

func pageRow(row searchRow) map[string]any {
	return map[string]any{
		"page":        firstKey(row.Keys),
		"clicks":      int(math.Round(row.Clicks)),
		"impressions": int(math.Round(row.Impressions)),
		"ctr":         roundOne(row.CTR * 100),
		"position":    roundOne(row.Position),
	}
}

func (f *metricsFetcher) fetchSearchRows(ctx context.Context, client *http.Client, siteURL string, start, end time.Time, dimension string, shape func(searchRow) map[string]any) (json.RawMessage, error) {
	rows, err := f.querySearchConsole(ctx, client, siteURL, start, end, dimension, fullRowLimit)
	if err != nil {
		return nil, err
	}

	shaped := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		shaped = append(shaped, shape(row))
	}

	return json.Marshal(shaped)
}

// fetchKeywords queries the current and previous periods so each keyword can
// carry a ranking trend. Position is inverted quality: dropping means the
// keyword moved up.
func (f *metricsFetcher) fetchKeywords(ctx context.Context, client *http.Client, siteURL string, start, end time.Time) (json.RawMessage, error) {
	current, err := f.querySearchConsole(ctx, client, siteURL, start, end, "query", fullRowLimit)
	if err != nil {
		return nil, err
	}

	span := end.Sub(start)
	previous, err := f.querySearchConsole(ctx, client, siteURL, start.Add(-span), start, "query", 1000)
	if err != nil {
		return nil, err
	}

	previousPositions := make(map[string]float64, len(previous))
	for _, row := range previous {
		previousPositions[firstKey(row.Keys)] = row.Position
	}

	shaped := make([]map[string]any, 0, len(current))
	for _, row := range current {
		keyword := firstKey(row.Keys)
		shaped = append(shaped, map[string]any{
			"keyword":     keyword,
			"position":    roundOne(row.Position),
			"clicks":      int(math.Round(row.Clicks)),
			"impressions": int(math.Round(row.Impressions)),
			"ctr":         roundOne(row.CTR * 100),
			"trend":       positionTrend(row.Position, previousPositions[keyword]),
		})
	}

	return json.Marshal(shaped)
}

// positionTrend compares average positions between periods. Anything within
// half a position counts as unchanged.
func positionTrend(current, previous float64) string {
	if previous == 0 {
		return "same"
	}

	switch delta := previous - current; {
	case delta > 0.5:
		return "up"
	case delta < -0.5:
		return "down"
	default:
		return "same"
	}
}

// --- Analytics Data ---

type apiValue struct {
	Value string `json:"value"`
}

type analyticsReport struct {
	Rows []struct {
		DimensionValues []apiValue `json:"dimensionValues"`
		MetricValues    []apiValue `json:"metricValues"`
	} `json:"rows"`
}

func (f *metricsFetcher) runReport(ctx context.Context, client *http.Client, propertyID string, body map[string]any) (*analyticsReport, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode analytics report request")
	}

	endpoint := analyticsDataAPIURL + "/" + url.PathEscape(propertyID) + ":runReport"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create analytics report request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run analytics report")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("analytics report failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var report analyticsReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, errors.Wrap(err, "failed to decode analytics report response")
	}

	return &report, nil
}

func (f *metricsFetcher) fetchAnalytics(ctx context.Context, client *http.Client, propertyID string, start, end time.Time) (json.RawMessage, error) {
	dateRanges := []map[string]string{{
		"startDate": start.Format("2006-01-02"),
		"endDate":   end.Format("2006-01-02"),
	}}

	byDate, err := f.runReport(ctx, client, propertyID, map[string]any{
		"dateRanges": dateRanges,
		"dimensions": []map[string]string{{"name": "date"}},
		"metrics": []map[string]string{
			{"name": "sessions"},
			{"name": "totalUsers"},
			{"name": "bounceRate"},
			{"name": "averageSessionDuration"},
		},
		"orderBys": []map[string]any{{"dimension": map[string]string{"dimensionName": "date"}}},
	})
	if err != nil {
		return nil, err
	}

	byChannel, err := f.runReport(ctx, client, propertyID, map[string]any{
		"dateRanges": dateRanges,
		"dimensions": []map[string]string{{"name": "sessionDefaultChannelGroup"}},
		"metrics":    []map[string]string{{"name": "sessions"}},
	})
	if err != nil {
		return nil, err
	}

	var totalSessions, totalUsers int
	var bounceSum, durationSum float64
	sessionTrend := make([]map[string]any, 0, len(byDate.Rows))
	for _, row := range byDate.Rows {
		sessions := intMetric(row.MetricValues, 0)
		users := intMetric(row.MetricValues, 1)
		totalSessions += sessions
		totalUsers += users
		bounceSum += floatMetric(row.MetricValues, 2)
		durationSum += floatMetric(row.MetricValues, 3)

		sessionTrend = append(sessionTrend, map[string]any{
			"date":     trendLabel(dimensionValues(row.DimensionValues), "20060102"),
			"sessions": sessions,
			"users":    users,
		})
	}

	avgBounceRate := 0.0
	avgDuration := 0.0
	if len(byDate.Rows) > 0 {
		// bounceRate comes back as a fraction, the dashboard shows a percentage.
		avgBounceRate = bounceSum / float64(len(byDate.Rows)) * 100
		avgDuration = durationSum / float64(len(byDate.Rows))
	}

	trafficSources := make([]map[string]any, 0, len(byChannel.Rows))
	for i, row := range byChannel.Rows {
		trafficSources = append(trafficSources, map[string]any{
			"name":  firstKey(dimensionValues(row.DimensionValues)),
			"value": intMetric(row.MetricValues, 0),
			"color": fmt.Sprintf("hsl(var(--chart-%d))", i%5+1),
		})
	}

	return json.Marshal(map[string]any{
		"totalUsers":         totalUsers,
		"totalSessions":      totalSessions,
		"avgSessionDuration": formatDuration(avgDuration),
		"bounceRate":         roundOne(avgBounceRate),
		"trafficSources":     trafficSources,
		"sessionTrend":       sessionTrend,
	})
}

// --- Shared helpers ---

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func dimensionValues(values []apiValue) []string {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, v.Value)
	}
	return keys
}

func intMetric(values []apiValue, index int) int {
	return int(math.Round(floatMetric(values, index)))
}

func floatMetric(values []apiValue, index int) float64 {
	if index >= len(values) {
		return 0
	}
	parsed, err := strconv.ParseFloat(values[index].Value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// trendLabel renders a provider date key as the short label the dashboard
// charts use, e.g. "Jan 15". Unparseable keys pass through unchanged.
func trendLabel(keys []string, layout string) string {
	raw := firstKey(keys)
	parsed, err := time.Parse(layout, raw)
	if err != nil {
		return raw
	}

	return parsed.Format("Jan 2")
}

func roundOne(value float64) float64 {
	return math.Round(value*10) / 10
}

// formatDuration renders seconds as the "3m 24s" label the dashboard shows.
func formatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
