package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType identifies which external Google service a credential grants
// read access to.
type ServiceType string

const (
	// ServiceAnalytics scopes a credential to the Analytics reporting API.
	ServiceAnalytics ServiceType = "analytics"

	// ServiceSearchConsole scopes a credential to the Search Console API.
	ServiceSearchConsole ServiceType = "search_console"
)

// ParseServiceType validates a raw service type string, typically taken from
// a URL path parameter.
func ParseServiceType(raw string) (ServiceType, bool) {
	switch ServiceType(raw) {
	case ServiceAnalytics, ServiceSearchConsole:
		return ServiceType(raw), true
	default:
		return "", false
	}
}

// Credential stores the OAuth token pair that lets the service fetch metrics
// on a user's behalf. At most one credential exists per (user, service);
// reconnecting replaces the stored tokens rather than adding a second row.
type Credential struct {
	ID           uuid.UUID   // The unique ID of this credential record.
	UserID       uuid.UUID   // The owning user.
	Service      ServiceType // Which Google service the tokens are scoped to.
	AccessToken  string      // Short-lived bearer token for API calls.
	RefreshToken string      // Long-lived token used to mint new access tokens; may be empty.
	TokenExpiry  *time.Time  // Expiry of the access token; nil when the provider omitted it.
	PropertyID   string      // Analytics property ID or Search Console site URL; empty until selected.
	Connected    bool        // False when the user has revoked access out-of-band.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OAuthToken is the provider-neutral result of an authorization code
// exchange, before it is persisted as part of a Credential.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}
