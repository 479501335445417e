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

// auditRepository implements the repository.AuditRepository interface.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository is the constructor for auditRepository.
func NewAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &auditRepository{
		db: db,
	}
}

// Create persists one audit result.
func (repo *auditRepository) Create(ctx context.Context, audit *entity.AuditRecord) error {
	auditM := fromAuditDomain(audit)

	if err := repo.db.WithContext(ctx).Create(auditM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("audit references unknown user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required audit information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create audit")
	}

	// Update the entity with generated values
	audit.ID = auditM.ID
	audit.CreatedAt = auditM.CreatedAt

	return nil
}

// FindByURL retrieves the audit history for one URL, newest first.
func (repo *auditRepository) FindByURL(ctx context.Context, userID uuid.UUID, url string) ([]*entity.AuditRecord, error) {
	var auditModels []*model.LighthouseAuditModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND url = ?", userID, url).
		Order("created_at DESC").
		Find(&auditModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find audits by URL")
	}

	return toAuditDomainList(auditModels), nil
}

// FindByUser retrieves all audits a user has run, newest first.
func (repo *auditRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditRecord, error) {
	var auditModels []*model.LighthouseAuditModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&auditModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find audits by user")
	}

	return toAuditDomainList(auditModels), nil
}

// --- Mapper Functions ---

func toAuditDomainList(models []*model.LighthouseAuditModel) []*entity.AuditRecord {
	audits := make([]*entity.AuditRecord, 0, len(models))
	for _, auditM := range models {
		audits = append(audits, toAuditDomain(auditM))
	}

	return audits
}

// toAuditDomain converts a GORM LighthouseAuditModel to a domain AuditRecord entity.
func toAuditDomain(data *model.LighthouseAuditModel) *entity.AuditRecord {
	if data == nil {
		return nil
	}

	return &entity.AuditRecord{
		ID:                 data.ID,
		UserID:             data.UserID,
		URL:                data.URL,
		PerformanceScore:   data.PerformanceScore,
		SEOScore:           data.SEOScore,
		AccessibilityScore: data.AccessibilityScore,
		BestPracticesScore: data.BestPracticesScore,
		Device:             entity.Device(data.Device),
		RawPayload:         json.RawMessage(data.AuditData),
		CreatedAt:          data.CreatedAt,
	}
}

// fromAuditDomain converts a domain AuditRecord entity to a GORM LighthouseAuditModel.
func fromAuditDomain(data *entity.AuditRecord) *model.LighthouseAuditModel {
	if data == nil {
		return nil
	}

	return &model.LighthouseAuditModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		URL:                data.URL,
		PerformanceScore:   data.PerformanceScore,
		SEOScore:           data.SEOScore,
		AccessibilityScore: data.AccessibilityScore,
		BestPracticesScore: data.BestPracticesScore,
		Device:             string(data.Device),
		AuditData:          datatypes.JSON(data.RawPayload),
		CreatedAt:          data.CreatedAt,
	}
}
