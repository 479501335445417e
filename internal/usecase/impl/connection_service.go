package impl

import (
	"context"
	"log/slog"

	"seopulse/config"
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

// connectionService implements the ConnectionUsecase interface.
type connectionService struct {
	txManager      repository.TransactionManager
	credentialRepo repository.CredentialRepository
	connector      service.OAuthConnector
	stateSigner    service.StateSigner
	settingsURL    string
	logger         *slog.Logger
}

// ConnectionServiceParams holds dependencies for ConnectionService, injected by Fx.
type ConnectionServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	Connector      service.OAuthConnector `optional:"true"`
	StateSigner    service.StateSigner
	Config         *config.Config
	Logger         *slog.Logger
}

// NewConnectionService is the constructor for connectionService.
func NewConnectionService(params ConnectionServiceParams) usecase.ConnectionUsecase {
	settingsURL := "/settings"
	if params.Config != nil && params.Config.GoogleOAuth.SettingsURL != "" {
		settingsURL = params.Config.GoogleOAuth.SettingsURL
	}

	return &connectionService{
		txManager:      params.TxManager,
		credentialRepo: params.CredentialRepo,
		connector:      params.Connector,
		stateSigner:    params.StateSigner,
		settingsURL:    settingsURL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *connectionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Connect issues a state token and builds the provider consent URL.
func (srv *connectionService) Connect(ctx context.Context, userID uuid.UUID, svc entity.ServiceType) (string, error) {
	if srv.connector == nil {
		return "", domainerrors.ErrOAuthNotConfigured
	}

	state, err := srv.stateSigner.Issue(userID, svc)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue oauth state")
	}

	authURL, err := srv.connector.AuthorizationURL(svc, state)
	if err != nil {
		return "", errors.Wrap(err, "failed to build authorization URL")
	}

	srv.log(ctx).Info("Started OAuth connect flow",
		slog.String("userId", userID.String()),
		slog.String("service", string(svc)),
	)

	return authURL, nil
}

// Callback completes the flow. Exchange and credential upsert run in one
// transaction so a crash cannot record a connection without its tokens. The
// browser always gets a redirect; failures carry an error flag instead of
// an API error body because Google is the caller here, not the dashboard.
func (srv *connectionService) Callback(ctx context.Context, svc entity.ServiceType, code, state string) *usecase.CallbackOutput {
	if err := srv.completeCallback(ctx, svc, code, state); err != nil {
		srv.log(ctx).Warn("OAuth callback failed",
			slog.String("service", string(svc)),
			slog.Any("error", err),
		)

		return &usecase.CallbackOutput{RedirectURL: srv.settingsURL + "?error=oauth_failed"}
	}

	return &usecase.CallbackOutput{RedirectURL: srv.settingsURL + "?success=connected"}
}

func (srv *connectionService) completeCallback(ctx context.Context, svc entity.ServiceType, code, state string) error {
	if srv.connector == nil {
		return domainerrors.ErrOAuthNotConfigured
	}
	if code == "" {
		return domainerrors.ErrOAuthCodeMissing
	}

	userID, err := srv.stateSigner.Verify(state, svc)
	if err != nil {
		return domainerrors.ErrOAuthStateInvalid.WrapMessage(err.Error())
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		token, err := srv.connector.Exchange(ctx, svc, code)
		if err != nil {
			return domainerrors.ErrOAuthExchangeFailed.WrapMessage(err.Error())
		}

		credential := &entity.Credential{
			UserID:       userID,
			Service:      svc,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			TokenExpiry:  token.Expiry,
			Connected:    true,
		}

		if err := repoFactory.CredentialRepo().Upsert(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to store credential")
		}

		srv.log(ctx).Info("Service connected",
			slog.String("userId", userID.String()),
			slog.String("service", string(svc)),
		)

		return nil
	})
}

// Disconnect removes the stored credential. A missing credential already is
// the desired state, so it succeeds.
func (srv *connectionService) Disconnect(ctx context.Context, userID uuid.UUID, svc entity.ServiceType) error {
	credential, err := srv.credentialRepo.FindByUserAndService(ctx, userID, svc)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up credential")
	}

	if err := srv.credentialRepo.Delete(ctx, credential.ID); err != nil {
		return errors.Wrap(err, "failed to delete credential")
	}

	srv.log(ctx).Info("Service disconnected",
		slog.String("userId", userID.String()),
		slog.String("service", string(svc)),
	)

	return nil
}

// Connections reports which services hold a connected credential.
func (srv *connectionService) Connections(ctx context.Context, userID uuid.UUID) (*usecase.ConnectionsOutput, error) {
	credentials, err := srv.credentialRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list credentials")
	}

	output := &usecase.ConnectionsOutput{}
	for _, credential := range credentials {
		if !credential.Connected {
			continue
		}
		switch credential.Service {
		case entity.ServiceAnalytics:
			output.Analytics = true
		case entity.ServiceSearchConsole:
			output.SearchConsole = true
		}
	}

	return output, nil
}
