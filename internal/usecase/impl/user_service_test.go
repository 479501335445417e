package impl

import (
	"context"
	"testing"

	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetCurrentUser(t *testing.T) {
	t.Run("mirrors the session claims into the users table", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(UserServiceParams{UserRepo: userRepo, Logger: discardLogger()})

		claims := &service.SessionClaims{
			UserID:    uuid.New(),
			Email:     "jordan@example.com",
			FirstName: "Jordan",
			LastName:  "Lee",
			AvatarURL: "https://cdn.example.com/avatar.png",
		}
		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		user, err := svc.GetCurrentUser(context.Background(), claims)

		require.NoError(t, err)
		assert.Equal(t, claims.UserID, user.ID)
		assert.Equal(t, "jordan@example.com", user.Email)
		assert.Equal(t, "Jordan", user.FirstName)
		assert.Equal(t, "https://cdn.example.com/avatar.png", user.AvatarURL)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a missing session", func(t *testing.T) {
		svc := NewUserService(UserServiceParams{UserRepo: new(mockUserRepo), Logger: discardLogger()})

		_, err := svc.GetCurrentUser(context.Background(), nil)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})

	t.Run("surfaces a storage failure", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(UserServiceParams{UserRepo: userRepo, Logger: discardLogger()})

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		_, err := svc.GetCurrentUser(context.Background(), &service.SessionClaims{UserID: uuid.New()})

		assert.Error(t, err)
	})
}
