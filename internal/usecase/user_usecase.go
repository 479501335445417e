// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"
)

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// GetCurrentUser returns the user for validated session claims,
	// creating or refreshing the local mirror row on the way.
	GetCurrentUser(ctx context.Context, claims *service.SessionClaims) (*entity.User, error)
}
