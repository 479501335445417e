package repository

import (
	"context"
	"errors"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when no credential exists for a
// (user, service) pair. Callers treat it as "not connected", never as a
// server fault.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository persists one OAuth credential per (user, service).
type CredentialRepository interface {
	// FindByUserAndService retrieves the credential for one service, or
	// ErrCredentialNotFound.
	FindByUserAndService(ctx context.Context, userID uuid.UUID, service entity.ServiceType) (*entity.Credential, error)

	// FindByUser retrieves all credentials a user holds, in no particular order.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Credential, error)

	// Upsert creates the credential or, when a row for the same
	// (user, service) already exists, replaces its tokens and connection
	// state. Reconnecting must never leave two rows behind.
	Upsert(ctx context.Context, credential *entity.Credential) error

	// Update persists changed token fields of an existing credential,
	// e.g. after a refresh. Returns ErrCredentialNotFound when the row
	// disappeared underneath.
	Update(ctx context.Context, credential *entity.Credential) error

	// Delete removes a credential by ID. Deleting an absent row is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
