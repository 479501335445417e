package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"seopulse/config"
	deliverycontext "seopulse/internal/delivery/context"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/repository"
	"seopulse/internal/domain/service"
	"seopulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultCacheTTL is how long a cached payload counts as fresh when the
// config does not say otherwise.
const defaultCacheTTL = 6 * time.Hour

// metricsService implements the MetricsUsecase interface.
type metricsService struct {
	txManager      repository.TransactionManager
	credentialRepo repository.CredentialRepository
	metricRepo     repository.MetricRepository
	provider       service.MetricsProvider
	samples        service.SampleSource
	usage          service.UsageRecorder
	cacheTTL       time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// MetricsServiceParams holds dependencies for MetricsService, injected by Fx.
type MetricsServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	MetricRepo     repository.MetricRepository
	Provider       service.MetricsProvider `optional:"true"`
	Samples        service.SampleSource
	Usage          service.UsageRecorder
	Config         *config.Config
	Logger         *slog.Logger
}

// NewMetricsService is the constructor for metricsService.
func NewMetricsService(params MetricsServiceParams) usecase.MetricsUsecase {
	cacheTTL := defaultCacheTTL
	if params.Config != nil && params.Config.MetricsCache.TTL > 0 {
		cacheTTL = params.Config.MetricsCache.TTL
	}

	return &metricsService{
		txManager:      params.TxManager,
		credentialRepo: params.CredentialRepo,
		metricRepo:     params.MetricRepo,
		provider:       params.Provider,
		samples:        params.Samples,
		usage:          params.Usage,
		cacheTTL:       cacheTTL,
		now:            time.Now,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *metricsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetMetrics serves one metric payload: empty shape for disconnected users,
// fresh cache verbatim, otherwise a live fetch with write-through. A failed
// fetch degrades to the stale row if one exists, else the sample payload;
// the dashboard never sees a provider outage as an error.
func (srv *metricsService) GetMetrics(ctx context.Context, userID uuid.UUID, metricType entity.MetricType, dateRange string) (json.RawMessage, error) {
	credential, err := srv.credentialRepo.FindByUserAndService(ctx, userID, metricType.ServiceFor())
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return metricType.EmptyShape(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up credential")
	}
	if !credential.Connected {
		return metricType.EmptyShape(), nil
	}

	cached, err := srv.metricRepo.FindByType(ctx, userID, metricType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read metric cache")
	}

	var latest *entity.CachedMetric
	if len(cached) > 0 {
		latest = cached[0]
	}

	if latest != nil && latest.FreshAt(srv.now(), srv.cacheTTL) {
		srv.usage.RecordCacheHit(metricType)

		return latest.Payload, nil
	}
	srv.usage.RecordCacheMiss(metricType)

	payload, err := srv.fetchAndStore(ctx, credential, metricType, dateRange, latest)
	if err == nil {
		return payload, nil
	}

	if !errors.Is(err, service.ErrProviderNotConfigured) {
		srv.log(ctx).Warn("Live metrics fetch failed",
			slog.String("userId", userID.String()),
			slog.String("metricType", string(metricType)),
			slog.Any("error", err),
		)
	}

	// Stale beats canned: a real payload from a past fetch is still the
	// user's own data.
	if latest != nil {
		return latest.Payload, nil
	}

	return srv.samples.Sample(metricType), nil
}

// fetchAndStore runs a live fetch and writes the payload through to the
// cache in one transaction, updating the newest row in place when one
// exists.
func (srv *metricsService) fetchAndStore(ctx context.Context, credential *entity.Credential, metricType entity.MetricType, dateRange string, latest *entity.CachedMetric) (json.RawMessage, error) {
	if srv.provider == nil {
		return nil, service.ErrProviderNotConfigured
	}

	var payload json.RawMessage
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		fetched, err := srv.provider.Fetch(ctx, credential, metricType, dateRange)
		if err != nil {
			srv.usage.RecordProviderFetch(credential.Service, false)

			return err
		}
		srv.usage.RecordProviderFetch(credential.Service, true)
		payload = fetched

		if latest != nil {
			latest.Payload = fetched
			latest.DateRange = dateRange

			return repoFactory.MetricRepo().Update(ctx, latest)
		}

		return repoFactory.MetricRepo().Create(ctx, &entity.CachedMetric{
			UserID:     credential.UserID,
			MetricType: metricType,
			Payload:    fetched,
			DateRange:  dateRange,
		})
	})
	if err != nil {
		return nil, err
	}

	return payload, nil
}
