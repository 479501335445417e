package postgres

import (
	"context"

	"seopulse/internal/domain/entity"
	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/repository"
	"seopulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// credentialRepository implements the repository.CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{
		db: db,
	}
}

// FindByUserAndService retrieves the credential one user holds for one service.
func (repo *credentialRepository) FindByUserAndService(ctx context.Context, userID uuid.UUID, service entity.ServiceType) (*entity.Credential, error) {
	var credentialM model.GoogleCredentialModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND service_type = ?", userID, string(service)).
		First(&credentialM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by user and service")
	}

	return toCredentialDomain(&credentialM), nil
}

// FindByUser retrieves all credentials a user holds.
func (repo *credentialRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Credential, error) {
	var credentialModels []*model.GoogleCredentialModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&credentialModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find credentials by user")
	}

	credentials := make([]*entity.Credential, 0, len(credentialModels))
	for _, credentialM := range credentialModels {
		credentials = append(credentials, toCredentialDomain(credentialM))
	}

	return credentials, nil
}

// Upsert creates the credential or replaces the tokens of the existing row
// for the same (user, service). The composite unique index turns a
// reconnect into an update, so a user never accumulates duplicate rows.
func (repo *credentialRepository) Upsert(ctx context.Context, credential *entity.Credential) error {
	credentialM := fromCredentialDomain(credential)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "service_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "token_expiry", "property_id", "connected", "updated_at",
			}),
		}).
		Create(credentialM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("credential references unknown user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required credential information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert credential")
	}

	// Update the entity with generated values
	credential.ID = credentialM.ID
	credential.CreatedAt = credentialM.CreatedAt
	credential.UpdatedAt = credentialM.UpdatedAt

	return nil
}

// Update persists changed token fields of an existing credential.
func (repo *credentialRepository) Update(ctx context.Context, credential *entity.Credential) error {
	result := repo.db.WithContext(ctx).
		Model(&model.GoogleCredentialModel{}).
		Where("id = ?", credential.ID).
		Updates(map[string]interface{}{
			"access_token":  credential.AccessToken,
			"refresh_token": credential.RefreshToken,
			"token_expiry":  credential.TokenExpiry,
			"property_id":   credential.PropertyID,
			"connected":     credential.Connected,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update credential")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

// Delete removes a credential by ID. Deleting an absent row is a no-op, so
// disconnecting twice stays idempotent.
func (repo *credentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.GoogleCredentialModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete credential")
	}

	return nil
}

// --- Mapper Functions ---

// toCredentialDomain converts a GORM GoogleCredentialModel to a domain Credential entity.
func toCredentialDomain(data *model.GoogleCredentialModel) *entity.Credential {
	if data == nil {
		return nil
	}

	return &entity.Credential{
		ID:           data.ID,
		UserID:       data.UserID,
		Service:      entity.ServiceType(data.ServiceType),
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		TokenExpiry:  data.TokenExpiry,
		PropertyID:   data.PropertyID,
		Connected:    data.Connected,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromCredentialDomain converts a domain Credential entity to a GORM GoogleCredentialModel.
func fromCredentialDomain(data *entity.Credential) *model.GoogleCredentialModel {
	if data == nil {
		return nil
	}

	return &model.GoogleCredentialModel{
		ID:           data.ID,
		UserID:       data.UserID,
		ServiceType:  string(data.Service),
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		TokenExpiry:  data.TokenExpiry,
		PropertyID:   data.PropertyID,
		Connected:    data.Connected,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
