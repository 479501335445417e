package impl

import (
	"context"
	"log/slog"

	deliverycontext "seopulse/internal/delivery/context"
	"seopulse/internal/domain/entity"
	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/repository"
	"seopulse/internal/domain/service"
	"seopulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// auditService implements the AuditUsecase interface.
type auditService struct {
	auditRepo repository.AuditRepository
	pageSpeed service.PageSpeedService
	usage     service.UsageRecorder
	logger    *slog.Logger
}

// AuditServiceParams holds dependencies for AuditService, injected by Fx.
type AuditServiceParams struct {
	fx.In

	AuditRepo repository.AuditRepository
	PageSpeed service.PageSpeedService
	Usage     service.UsageRecorder
	Logger    *slog.Logger
}

// NewAuditService is the constructor for auditService.
func NewAuditService(params AuditServiceParams) usecase.AuditUsecase {
	return &auditService{
		auditRepo: params.AuditRepo,
		pageSpeed: params.PageSpeed,
		usage:     params.Usage,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *auditService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RunAudit validates the input, runs one synchronous provider audit,
// persists the result and returns the four scores.
func (srv *auditService) RunAudit(ctx context.Context, input *usecase.RunAuditInput) (*usecase.AuditOutput, error) {
	if input == nil || input.URL == "" {
		return nil, domainerrors.ErrMissingURL
	}

	device, ok := entity.ParseDevice(input.Device)
	if !ok {
		return nil, domainerrors.ErrInvalidDevice
	}

	result, err := srv.pageSpeed.Run(ctx, input.URL, device)
	if err != nil {
		srv.usage.RecordAudit(false)
		srv.log(ctx).Warn("PageSpeed audit failed",
			slog.String("url", input.URL),
			slog.Any("error", err),
		)

		return nil, err
	}
	srv.usage.RecordAudit(true)

	record := &entity.AuditRecord{
		UserID:             input.UserID,
		URL:                input.URL,
		PerformanceScore:   result.PerformanceScore,
		SEOScore:           result.SEOScore,
		AccessibilityScore: result.AccessibilityScore,
		BestPracticesScore: result.BestPracticesScore,
		Device:             device,
		RawPayload:         result.RawPayload,
	}
	if err := srv.auditRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to persist audit")
	}

	return &usecase.AuditOutput{
		PerformanceScore:   result.PerformanceScore,
		SEOScore:           result.SEOScore,
		AccessibilityScore: result.AccessibilityScore,
		BestPracticesScore: result.BestPracticesScore,
	}, nil
}

// History returns past audits, scoped to one URL when given.
func (srv *auditService) History(ctx context.Context, userID uuid.UUID, url string) ([]*entity.AuditRecord, error) {
	if url != "" {
		return srv.auditRepo.FindByURL(ctx, userID, url)
	}

	return srv.auditRepo.FindByUser(ctx, userID)
}
