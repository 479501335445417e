// Package service defines domain-level service interfaces implemented by the
// infrastructure layer.
package service

import (
	"context"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// OAuthConnector drives the server-side authorization code flow against the
// identity provider, scoped per service type.
type OAuthConnector interface {
	// AuthorizationURL builds the provider consent URL for one service,
	// embedding the given opaque state value. The caller redirects the
	// end user there.
	AuthorizationURL(service entity.ServiceType, state string) (string, error)

	// Exchange trades an authorization code for a token pair.
	Exchange(ctx context.Context, service entity.ServiceType, code string) (*entity.OAuthToken, error)
}

// StateSigner issues and verifies the OAuth state parameter. States are
// signed, time-bound and single-use: verifying a state consumes it, so a
// replayed callback fails.
type StateSigner interface {
	// Issue mints a state token binding the user to the service they are
	// connecting.
	Issue(userID uuid.UUID, service entity.ServiceType) (string, error)

	// Verify checks signature, expiry and service binding, consumes the
	// token, and returns the user it was issued for.
	Verify(state string, service entity.ServiceType) (uuid.UUID, error)
}
