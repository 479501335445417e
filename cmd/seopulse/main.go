package main

import (
	"context"
	"log/slog"
	"os"

	"seopulse/config"
	"seopulse/internal/delivery"
	"seopulse/internal/delivery/http"
	"seopulse/internal/delivery/http/middleware"
	"seopulse/internal/delivery/http/router/handler"
	"seopulse/internal/domain/service"
	"seopulse/internal/infra/auth"
	"seopulse/internal/infra/google"
	logs "seopulse/internal/infra/log"
	"seopulse/internal/infra/metrics"
	"seopulse/internal/infra/persistence/postgres"
	"seopulse/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		metrics.NewCollector,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCredentialRepository,
			postgres.NewMetricRepository,
			postgres.NewAuditRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			google.NewStateSigner,
			google.NewSampleSource,
			google.NewPageSpeedService,
			newOAuthConnector,
			newMetricsFetcher,
			metrics.NewUsageRecorder,
		),
	)
}

// newOAuthConnector creates the Google OAuth connector when client
// credentials are configured. Without them the connect endpoints report the
// client as unconfigured instead of failing startup.
func newOAuthConnector(cfg *config.Config) (service.OAuthConnector, error) {
	if cfg.GoogleOAuth.ClientID == "" {
		return nil, nil // OAuth client is optional
	}

	return google.NewOAuthConnector(cfg)
}

// newMetricsFetcher creates the live metrics provider under the same
// condition; without it, metric endpoints serve cached or sample payloads.
func newMetricsFetcher(cfg *config.Config) (service.MetricsProvider, error) {
	if cfg.GoogleOAuth.ClientID == "" {
		return nil, nil
	}

	return google.NewMetricsFetcher(cfg)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewConnectionService,
			impl.NewMetricsService,
			impl.NewAuditService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewConnectionHandler,
			handler.NewMetricsHandler,
			handler.NewAuditHandler,
			handler.NewTestHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
