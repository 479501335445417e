package usecase

import (
	"context"

	"seopulse/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Output DTOs ---

// ConnectionsOutput reports which services a user currently has connected.
type ConnectionsOutput struct {
	Analytics     bool `json:"analytics"`
	SearchConsole bool `json:"searchConsole"`
}

// CallbackOutput tells the handler where to send the user's browser after
// the OAuth callback, mirroring the dashboard's settings page flags.
type CallbackOutput struct {
	RedirectURL string
}

// ConnectionUsecase drives the OAuth connection lifecycle for the two
// Google services.
type ConnectionUsecase interface {
	// Connect starts the flow: issues a state token and returns the
	// provider consent URL for the handler to hand to the client.
	Connect(ctx context.Context, userID uuid.UUID, service entity.ServiceType) (string, error)

	// Callback completes the flow: verifies and consumes the state,
	// exchanges the code, and upserts the credential atomically. It
	// always returns a redirect target; exchange failures land on the
	// settings page with an error flag instead of an API error body.
	Callback(ctx context.Context, service entity.ServiceType, code, state string) *CallbackOutput

	// Disconnect removes the stored credential. Disconnecting a service
	// that was never connected is a successful no-op.
	Disconnect(ctx context.Context, userID uuid.UUID, service entity.ServiceType) error

	// Connections reports the connection status of both services.
	Connections(ctx context.Context, userID uuid.UUID) (*ConnectionsOutput, error)
}
