// Package delivery defines the contract every transport implementation
// satisfies so the application can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport, e.g. the HTTP server. Serve blocks
// until the transport stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
