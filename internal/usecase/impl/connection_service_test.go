package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	domainerrors "seopulse/internal/domain/errors"
	"seopulse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConnectionService(connector *mockConnector, signer *mockStateSigner, credentialRepo *mockCredentialRepo) *connectionService {
	factory := &stubRepoFactory{credentialRepo: credentialRepo}

	svc := NewConnectionService(ConnectionServiceParams{
		TxManager:      &stubTxManager{factory: factory},
		CredentialRepo: credentialRepo,
		StateSigner:    signer,
		Config:         &config.Config{},
		Logger:         discardLogger(),
	}).(*connectionService)
	if connector != nil {
		svc.connector = connector
	}

	return svc
}

func TestConnectionService_Connect(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the provider consent URL", func(t *testing.T) {
		connector := new(mockConnector)
		signer := new(mockStateSigner)
		svc := newConnectionService(connector, signer, new(mockCredentialRepo))

		signer.On("Issue", userID, entity.ServiceSearchConsole).Return("signed-state", nil)
		connector.On("AuthorizationURL", entity.ServiceSearchConsole, "signed-state").
			Return("https://accounts.google.com/o/oauth2/auth?state=signed-state", nil)

		authURL, err := svc.Connect(context.Background(), userID, entity.ServiceSearchConsole)

		require.NoError(t, err)
		assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=signed-state", authURL)
		connector.AssertExpectations(t)
		signer.AssertExpectations(t)
	})

	t.Run("fails when no OAuth client is configured", func(t *testing.T) {
		svc := newConnectionService(nil, new(mockStateSigner), new(mockCredentialRepo))

		_, err := svc.Connect(context.Background(), userID, entity.ServiceAnalytics)

		assert.ErrorIs(t, err, domainerrors.ErrOAuthNotConfigured)
	})
}

func TestConnectionService_Callback(t *testing.T) {
	userID := uuid.New()

	t.Run("stores the credential and redirects with success", func(t *testing.T) {
		connector := new(mockConnector)
		signer := new(mockStateSigner)
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(connector, signer, credentialRepo)

		signer.On("Verify", "signed-state", entity.ServiceAnalytics).Return(userID, nil)
		connector.On("Exchange", mock.Anything, entity.ServiceAnalytics, "auth-code").
			Return(&entity.OAuthToken{AccessToken: "access", RefreshToken: "refresh"}, nil)
		credentialRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(credential *entity.Credential) bool {
			return credential.UserID == userID &&
				credential.Service == entity.ServiceAnalytics &&
				credential.AccessToken == "access" &&
				credential.RefreshToken == "refresh" &&
				credential.Connected
		})).Return(nil)

		output := svc.Callback(context.Background(), entity.ServiceAnalytics, "auth-code", "signed-state")

		assert.Equal(t, "/settings?success=connected", output.RedirectURL)
		credentialRepo.AssertExpectations(t)
	})

	t.Run("redirects with an error flag on an invalid state", func(t *testing.T) {
		connector := new(mockConnector)
		signer := new(mockStateSigner)
		svc := newConnectionService(connector, signer, new(mockCredentialRepo))

		signer.On("Verify", "tampered", entity.ServiceAnalytics).
			Return(uuid.Nil, errors.New("signature is invalid"))

		output := svc.Callback(context.Background(), entity.ServiceAnalytics, "auth-code", "tampered")

		assert.Equal(t, "/settings?error=oauth_failed", output.RedirectURL)
		connector.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("redirects with an error flag when the code is missing", func(t *testing.T) {
		svc := newConnectionService(new(mockConnector), new(mockStateSigner), new(mockCredentialRepo))

		output := svc.Callback(context.Background(), entity.ServiceAnalytics, "", "signed-state")

		assert.Equal(t, "/settings?error=oauth_failed", output.RedirectURL)
	})

	t.Run("redirects with an error flag when the exchange fails", func(t *testing.T) {
		connector := new(mockConnector)
		signer := new(mockStateSigner)
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(connector, signer, credentialRepo)

		signer.On("Verify", "signed-state", entity.ServiceAnalytics).Return(userID, nil)
		connector.On("Exchange", mock.Anything, entity.ServiceAnalytics, "expired-code").
			Return(nil, errors.New("invalid_grant"))

		output := svc.Callback(context.Background(), entity.ServiceAnalytics, "expired-code", "signed-state")

		assert.Equal(t, "/settings?error=oauth_failed", output.RedirectURL)
		credentialRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestConnectionService_Disconnect(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes the stored credential", func(t *testing.T) {
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(new(mockConnector), new(mockStateSigner), credentialRepo)

		credential := &entity.Credential{ID: uuid.New(), UserID: userID, Service: entity.ServiceAnalytics}
		credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceAnalytics).
			Return(credential, nil)
		credentialRepo.On("Delete", mock.Anything, credential.ID).Return(nil)

		err := svc.Disconnect(context.Background(), userID, entity.ServiceAnalytics)

		require.NoError(t, err)
		credentialRepo.AssertExpectations(t)
	})

	t.Run("succeeds when nothing is connected", func(t *testing.T) {
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(new(mockConnector), new(mockStateSigner), credentialRepo)

		credentialRepo.On("FindByUserAndService", mock.Anything, userID, entity.ServiceSearchConsole).
			Return(nil, repository.ErrCredentialNotFound)

		err := svc.Disconnect(context.Background(), userID, entity.ServiceSearchConsole)

		require.NoError(t, err)
		credentialRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestConnectionService_Connections(t *testing.T) {
	userID := uuid.New()

	t.Run("reports connected services", func(t *testing.T) {
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(new(mockConnector), new(mockStateSigner), credentialRepo)

		credentialRepo.On("FindByUser", mock.Anything, userID).Return([]*entity.Credential{
			{Service: entity.ServiceAnalytics, Connected: true},
			{Service: entity.ServiceSearchConsole, Connected: false},
		}, nil)

		output, err := svc.Connections(context.Background(), userID)

		require.NoError(t, err)
		assert.True(t, output.Analytics)
		assert.False(t, output.SearchConsole)
	})

	t.Run("reports nothing for a fresh user", func(t *testing.T) {
		credentialRepo := new(mockCredentialRepo)
		svc := newConnectionService(new(mockConnector), new(mockStateSigner), credentialRepo)

		credentialRepo.On("FindByUser", mock.Anything, userID).Return([]*entity.Credential{}, nil)

		output, err := svc.Connections(context.Background(), userID)

		require.NoError(t, err)
		assert.False(t, output.Analytics)
		assert.False(t, output.SearchConsole)
	})
}
