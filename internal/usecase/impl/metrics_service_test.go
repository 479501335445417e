package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type metricsServiceFixture struct {
	svc            *metricsService
	credentialRepo *mockCredentialRepo
	metricRepo     *mockMetricRepo
	provider       *mockProvider
	usage          *stubUsage
}

func newMetricsFixture(withProvider bool) *metricsServiceFixture {
	credentialRepo := new(mockCredentialRepo)
	metricRepo := new(mockMetricRepo)
	usage := &stubUsage{}
	factory := &stubRepoFactory{credentialRepo: credentialRepo, metricRepo: metricRepo}

	svc := NewMetricsService(MetricsServiceParams{
		TxManager:      &stubTxManager{factory: factory},
		CredentialRepo: credentialRepo,
		MetricRepo:     metricRepo,
		Samples:        stubSamples{},
		Usage:          usage,
		Config:         &config.Config{},
		Logger:         discardLogger(),
	}).(*metricsService)

	fixture := &metricsServiceFixture{
		svc:            svc,
		credentialRepo: credentialRepo,
		metricRepo:     metricRepo,
		usage:          usage,
	}
	if withProvider {
		fixture.provider = new(mockProvider)
		svc.provider = fixture.provider
	}

	return fixture
}

func TestMetricsService_GetMetrics_Disconnected(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		metricType entity.MetricType
		want       string
	}{
		{name: "overview renders an empty object", metricType: entity.MetricOverview, want: "{}"},
		{name: "keywords render an empty list", metricType: entity.MetricKeywords, want: "[]"},
		{name: "pages render an empty list", metricType: entity.MetricPages, want: "[]"},
		{name: "analytics render an empty object", metricType: entity.MetricAnalytics, want: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newMetricsFixture(true)
			fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, tt.metricType.ServiceFor()).
				Return(nil, repository.ErrCredentialNotFound)

			payload, err := fixture.svc.GetMetrics(context.Background(), userID, tt.metricType, "28d")

			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(payload))
			fixture.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMetricsService_GetMetrics_RevokedCredential(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(true)

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
		Return(&entity.Credential{UserID: userID, Service: entity.ServiceSearchConsole, Connected: false}, nil)

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricOverview, "28d")

	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(payload))
}

func TestMetricsService_GetMetrics_FreshCacheHit(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(true)
	now := time.Now()
	fixture.svc.now = func() time.Time { return now }

	cached := &entity.CachedMetric{
		UserID:     userID,
		MetricType: entity.MetricOverview,
		Payload:    json.RawMessage(`{"totalClicks":1845}`),
		UpdatedAt:  now.Add(-time.Hour),
	}

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
		Return(&entity.Credential{UserID: userID, Service: entity.ServiceSearchConsole, Connected: true}, nil)
	fixture.metricRepo.On("FindByType", mock.Anything, userID, entity.MetricOverview).
		Return([]*entity.CachedMetric{cached}, nil)

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricOverview, "28d")

	require.NoError(t, err)
	assert.Equal(t, string(cached.Payload), string(payload))
	assert.Equal(t, 1, fixture.usage.hits)
	assert.Equal(t, 0, fixture.usage.misses)
	fixture.provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMetricsService_GetMetrics_StaleCacheRefetches(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(true)
	now := time.Now()
	fixture.svc.now = func() time.Time { return now }

	credential := &entity.Credential{UserID: userID, Service: entity.ServiceSearchConsole, Connected: true, PropertyID: "sc-domain:example.com"}
	stale := &entity.CachedMetric{
		ID:         uuid.New(),
		UserID:     userID,
		MetricType: entity.MetricOverview,
		Payload:    json.RawMessage(`{"totalClicks":1}`),
		UpdatedAt:  now.Add(-24 * time.Hour),
	}
	fresh := json.RawMessage(`{"totalClicks":2}`)

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
		Return(credential, nil)
	fixture.metricRepo.On("FindByType", mock.Anything, userID, entity.MetricOverview).
		Return([]*entity.CachedMetric{stale}, nil)
	fixture.provider.On("Fetch", mock.Anything, credential, entity.MetricOverview, "28d").
		Return(fresh, nil)
	fixture.metricRepo.On("Update", mock.Anything, mock.MatchedBy(func(metric *entity.CachedMetric) bool {
		return metric.ID == stale.ID && string(metric.Payload) == string(fresh)
	})).Return(nil)

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricOverview, "28d")

	require.NoError(t, err)
	assert.Equal(t, string(fresh), string(payload))
	assert.Equal(t, 1, fixture.usage.misses)
	assert.Equal(t, 1, fixture.usage.fetches)
	assert.True(t, fixture.usage.lastFetchOK)
	fixture.metricRepo.AssertExpectations(t)
}

func TestMetricsService_GetMetrics_FirstFetchCreatesCacheRow(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(true)

	credential := &entity.Credential{UserID: userID, Service: entity.ServiceAnalytics, Connected: true, PropertyID: "123456"}
	fresh := json.RawMessage(`{"totalUsers":"12.5K"}`)

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceAnalytics).
		Return(credential, nil)
	fixture.metricRepo.On("FindByType", mock.Anything, userID, entity.MetricAnalytics).
		Return([]*entity.CachedMetric{}, nil)
	fixture.provider.On("Fetch", mock.Anything, credential, entity.MetricAnalytics, "7d").
		Return(fresh, nil)
	fixture.metricRepo.On("Create", mock.Anything, mock.MatchedBy(func(metric *entity.CachedMetric) bool {
		return metric.UserID == userID &&
			metric.MetricType == entity.MetricAnalytics &&
			string(metric.Payload) == string(fresh) &&
			metric.DateRange == "7d"
	})).Return(nil)

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricAnalytics, "7d")

	require.NoError(t, err)
	assert.Equal(t, string(fresh), string(payload))
	fixture.metricRepo.AssertExpectations(t)
}

func TestMetricsService_GetMetrics_FailedFetchServesStalePayload(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(true)
	now := time.Now()
	fixture.svc.now = func() time.Time { return now }

	credential := &entity.Credential{UserID: userID, Service: entity.ServiceSearchConsole, Connected: true}
	stale := &entity.CachedMetric{
		UserID:     userID,
		MetricType: entity.MetricKeywords,
		Payload:    json.RawMessage(`[{"keyword":"seo tools"}]`),
		UpdatedAt:  now.Add(-48 * time.Hour),
	}

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
		Return(credential, nil)
	fixture.metricRepo.On("FindByType", mock.Anything, userID, entity.MetricKeywords).
		Return([]*entity.CachedMetric{stale}, nil)
	fixture.provider.On("Fetch", mock.Anything, credential, entity.MetricKeywords, "28d").
		Return(nil, errors.New("googleapi: 429 rate limited"))

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricKeywords, "28d")

	require.NoError(t, err)
	assert.Equal(t, string(stale.Payload), string(payload))
	assert.Equal(t, 1, fixture.usage.fetches)
	assert.False(t, fixture.usage.lastFetchOK)
	fixture.metricRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMetricsService_GetMetrics_NoProviderFallsBackToSamples(t *testing.T) {
	userID := uuid.New()
	fixture := newMetricsFixture(false)

	fixture.credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
		Return(&entity.Credential{UserID: userID, Service: entity.ServiceSearchConsole, Connected: true}, nil)
	fixture.metricRepo.On("FindByType", mock.Anything, userID, entity.MetricOverview).
		Return([]*entity.CachedMetric{}, nil)

	payload, err := fixture.svc.GetMetrics(context.Background(), userID, entity.MetricOverview, "28d")

	require.NoError(t, err)
	assert.JSONEq(t, `{"sample":"overview"}`, string(payload))
}
