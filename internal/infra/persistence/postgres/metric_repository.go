package postgres

import (
	"context"
	"encoding/json"

	"seopulse/internal/domain/entity"
	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/repository"
	"seopulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// metricRepository implements the repository.MetricRepository interface.
type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository is the constructor for metricRepository.
func NewMetricRepository(db *gorm.DB) repository.MetricRepository {
	return &metricRepository{
		db: db,
	}
}

// FindByType retrieves cached metrics for one (user, metric type), newest
// first. An empty result is a cache miss, not an error.
func (repo *metricRepository) FindByType(ctx context.Context, userID uuid.UUID, metricType entity.MetricType) ([]*entity.CachedMetric, error) {
	var metricModels []*model.SeoMetricModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND metric_type = ?", userID, string(metricType)).
		Order("updated_at DESC").
		Find(&metricModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find metrics by type")
	}

	metrics := make([]*entity.CachedMetric, 0, len(metricModels))
	for _, metricM := range metricModels {
		metrics = append(metrics, toMetricDomain(metricM))
	}

	return metrics, nil
}

// Create persists a freshly fetched payload.
func (repo *metricRepository) Create(ctx context.Context, metric *entity.CachedMetric) error {
	metricM := fromMetricDomain(metric)

	if err := repo.db.WithContext(ctx).Create(metricM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required metric information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create metric")
	}

	// Update the entity with generated values
	metric.ID = metricM.ID
	metric.CreatedAt = metricM.CreatedAt
	metric.UpdatedAt = metricM.UpdatedAt

	return nil
}

// Update replaces the payload and date range of an existing row. GORM bumps
// updated_at, which is what FreshAt judges the TTL against.
func (repo *metricRepository) Update(ctx context.Context, metric *entity.CachedMetric) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SeoMetricModel{}).
		Where("id = ?", metric.ID).
		Updates(map[string]interface{}{
			"data":       datatypes.JSON(metric.Payload),
			"date_range": metric.DateRange,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update metric")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WrapMessage("metric row no longer exists")
	}

	return nil
}

// --- Mapper Functions ---

// toMetricDomain converts a GORM SeoMetricModel to a domain CachedMetric entity.
func toMetricDomain(data *model.SeoMetricModel) *entity.CachedMetric {
	if data == nil {
		return nil
	}

	return &entity.CachedMetric{
		ID:         data.ID,
		UserID:     data.UserID,
		MetricType: entity.MetricType(data.MetricType),
		Payload:    json.RawMessage(data.Data),
		DateRange:  data.DateRange,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromMetricDomain converts a domain CachedMetric entity to a GORM SeoMetricModel.
func fromMetricDomain(data *entity.CachedMetric) *model.SeoMetricModel {
	if data == nil {
		return nil
	}

	return &model.SeoMetricModel{
		ID:         data.ID,
		UserID:     data.UserID,
		MetricType: string(data.MetricType),
		Data:       datatypes.JSON(data.Payload),
		DateRange:  data.DateRange,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
