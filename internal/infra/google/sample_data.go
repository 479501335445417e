package google

import (
	"encoding/json"

	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"
)

// sampleSource serves fixed illustrative payloads for connected users whose
// live provider is not configured yet, or when a live fetch fails with
// nothing cached. The shapes mirror what the live fetcher produces.
type sampleSource struct{}

// NewSampleSource builds the fallback payload source.
func NewSampleSource() service.SampleSource {
	return &sampleSource{}
}

// Sample returns the canned payload for one metric type.
func (s *sampleSource) Sample(metricType entity.MetricType) json.RawMessage {
	switch metricType {
	case entity.MetricOverview:
		return json.RawMessage(sampleOverview)
	case entity.MetricPages:
		return json.RawMessage(samplePages)
	case entity.MetricKeywords:
		return json.RawMessage(sampleKeywords)
	case entity.MetricAnalytics:
		return json.RawMessage(sampleAnalytics)
	default:
		return metricType.EmptyShape()
	}
}

const sampleOverview = `{
  "totalClicks": 1845,
  "totalImpressions": 45230,
  "avgCtr": 4.08,
  "avgPosition": 12.4,
  "trafficTrend": [
    {"date": "Jan 1", "clicks": 120, "impressions": 3200},
    {"date": "Jan 8", "clicks": 145, "impressions": 3800},
    {"date": "Jan 15", "clicks": 178, "impressions": 4200},
    {"date": "Jan 22", "clicks": 165, "impressions": 4100},
    {"date": "Jan 29", "clicks": 198, "impressions": 4800},
    {"date": "Feb 5", "clicks": 215, "impressions": 5200},
    {"date": "Feb 12", "clicks": 245, "impressions": 5800}
  ],
  "topPages": [
    {"page": "/blog/seo-tips", "clicks": 450, "impressions": 8500, "ctr": 5.3},
    {"page": "/services", "clicks": 320, "impressions": 6200, "ctr": 5.2},
    {"page": "/", "clicks": 280, "impressions": 7100, "ctr": 3.9},
    {"page": "/about", "clicks": 150, "impressions": 3800, "ctr": 3.9},
    {"page": "/contact", "clicks": 120, "impressions": 2900, "ctr": 4.1}
  ]
}`

const sampleKeywords = `[
  {"keyword": "seo tips for beginners", "position": 3.2, "clicks": 450, "impressions": 8500, "ctr": 5.3, "trend": "up"},
  {"keyword": "website optimization", "position": 5.8, "clicks": 320, "impressions": 6200, "ctr": 5.2, "trend": "up"},
  {"keyword": "google analytics guide", "position": 8.1, "clicks": 280, "impressions": 7100, "ctr": 3.9, "trend": "down"},
  {"keyword": "search engine marketing", "position": 12.4, "clicks": 150, "impressions": 3800, "ctr": 3.9, "trend": "same"},
  {"keyword": "digital marketing agency", "position": 15.2, "clicks": 120, "impressions": 2900, "ctr": 4.1, "trend": "up"},
  {"keyword": "seo best practices", "position": 6.7, "clicks": 380, "impressions": 7200, "ctr": 5.3, "trend": "up"},
  {"keyword": "content marketing tips", "position": 9.3, "clicks": 240, "impressions": 5400, "ctr": 4.4, "trend": "same"},
  {"keyword": "local seo services", "position": 4.5, "clicks": 410, "impressions": 8900, "ctr": 4.6, "trend": "up"}
]`

const samplePages = `[
  {"page": "/blog/seo-tips", "clicks": 450, "impressions": 8500, "ctr": 5.3, "position": 3.2},
  {"page": "/services", "clicks": 320, "impressions": 6200, "ctr": 5.2, "position": 5.8},
  {"page": "/", "clicks": 280, "impressions": 7100, "ctr": 3.9, "position": 8.1},
  {"page": "/about", "clicks": 150, "impressions": 3800, "ctr": 3.9, "position": 12.4},
  {"page": "/contact", "clicks": 120, "impressions": 2900, "ctr": 4.1, "position": 15.2},
  {"page": "/blog/content-marketing", "clicks": 380, "impressions": 7200, "ctr": 5.3, "position": 6.7},
  {"page": "/pricing", "clicks": 240, "impressions": 5400, "ctr": 4.4, "position": 9.3},
  {"page": "/blog/local-seo", "clicks": 410, "impressions": 8900, "ctr": 4.6, "position": 4.5}
]`

const sampleAnalytics = `{
  "totalUsers": 8450,
  "totalSessions": 12340,
  "avgSessionDuration": "3m 24s",
  "bounceRate": 42.3,
  "trafficSources": [
    {"name": "Organic Search", "value": 4500, "color": "hsl(var(--chart-1))"},
    {"name": "Direct", "value": 2800, "color": "hsl(var(--chart-2))"},
    {"name": "Social Media", "value": 1200, "color": "hsl(var(--chart-3))"},
    {"name": "Referral", "value": 900, "color": "hsl(var(--chart-4))"},
    {"name": "Email", "value": 600, "color": "hsl(var(--chart-5))"}
  ],
  "sessionTrend": [
    {"date": "Jan 1", "sessions": 850, "users": 720},
    {"date": "Jan 8", "sessions": 920, "users": 780},
    {"date": "Jan 15", "sessions": 1050, "users": 890},
    {"date": "Jan 22", "sessions": 980, "users": 830},
    {"date": "Jan 29", "sessions": 1150, "users": 970},
    {"date": "Feb 5", "sessions": 1280, "users": 1080},
    {"date": "Feb 12", "sessions": 1420, "users": 1200}
  ]
}`
