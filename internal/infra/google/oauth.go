// Package google implements the external Google API integrations: the OAuth
// connect flow, the reporting APIs behind the metrics cache, and PageSpeed
// Insights.
package google

import (
	"context"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

const (
	scopeAnalytics     = "https://www.googleapis.com/auth/analytics.readonly"
	scopeSearchConsole = "https://www.googleapis.com/auth/webmasters.readonly"
)

// oauthConnector implements service.OAuthConnector on top of the standard
// authorization code flow. One oauth2.Config per service type, differing in
// scope and callback path.
type oauthConnector struct {
	configs map[entity.ServiceType]*oauth2.Config
}

// NewOAuthConnector builds the per-service OAuth configurations from the
// application config.
func NewOAuthConnector(cfg *config.Config) (service.OAuthConnector, error) {
	configs, err := newOAuthConfigs(cfg)
	if err != nil {
		return nil, err
	}

	return &oauthConnector{configs: configs}, nil
}

// newOAuthConfigs derives one oauth2.Config per service type. Shared by the
// connect flow and the metrics fetcher, which refreshes stored tokens with
// the same client credentials.
func newOAuthConfigs(cfg *config.Config) (map[entity.ServiceType]*oauth2.Config, error) {
	if cfg.GoogleOAuth.ClientID == "" || cfg.GoogleOAuth.ClientSecret == "" {
		return nil, errors.New("google oauth client credentials must be provided")
	}

	configs := make(map[entity.ServiceType]*oauth2.Config, 2)
	for svc, scope := range map[entity.ServiceType]string{
		entity.ServiceAnalytics:     scopeAnalytics,
		entity.ServiceSearchConsole: scopeSearchConsole,
	} {
		configs[svc] = &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectBaseURL + "/api/google/callback/" + string(svc),
			Scopes:       []string{scope},
			Endpoint:     googleoauth.Endpoint,
		}
	}

	return configs, nil
}

// AuthorizationURL builds the consent URL for one service. Offline access
// plus forced consent makes Google return a refresh token on every connect,
// not just the first one.
func (c *oauthConnector) AuthorizationURL(svc entity.ServiceType, state string) (string, error) {
	cfg, ok := c.configs[svc]
	if !ok {
		return "", errors.Errorf("no oauth config for service %q", svc)
	}

	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades the authorization code for a token pair.
func (c *oauthConnector) Exchange(ctx context.Context, svc entity.ServiceType, code string) (*entity.OAuthToken, error) {
	cfg, ok := c.configs[svc]
	if !ok {
		return nil, errors.Errorf("no oauth config for service %q", svc)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}

	result := &entity.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		result.Expiry = &expiry
	}

	return result, nil
}

// tokenSourceFor builds a refreshing token source for a stored credential.
// oauth2 transparently swaps in a fresh access token when the stored one
// expired, using the refresh token.
func tokenSourceFor(ctx context.Context, configs map[entity.ServiceType]*oauth2.Config, credential *entity.Credential) (oauth2.TokenSource, error) {
	cfg, ok := configs[credential.Service]
	if !ok {
		return nil, errors.Errorf("no oauth config for service %q", credential.Service)
	}

	token := &oauth2.Token{
		AccessToken:  credential.AccessToken,
		RefreshToken: credential.RefreshToken,
	}
	if credential.TokenExpiry != nil {
		token.Expiry = *credential.TokenExpiry
	}

	return cfg.TokenSource(ctx, token), nil
}
