// Package impl contains the implementation of the application's business logic.
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

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCurrentUser mirrors the session claims into the local users table and
// returns the stored row. The upsert keeps the mirror current when the
// login provider's profile fields change.
func (srv *userService) GetCurrentUser(ctx context.Context, claims *service.SessionClaims) (*entity.User, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user := &entity.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		AvatarURL: claims.AvatarURL,
	}

	if err := srv.userRepo.Upsert(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to upsert user from session claims",
			slog.String("userId", claims.UserID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	return user, nil
}
