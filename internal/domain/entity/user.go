// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record mirrored from the external session provider.
// It is created the first time a session token for this user is seen and
// refreshed whenever the provider's profile claims change.
type User struct {
	ID        uuid.UUID // Stable identifier, equal to the session provider's subject claim.
	Email     string    // The user's primary contact email.
	FirstName string    // Given name as reported by the session provider.
	LastName  string    // Family name as reported by the session provider.
	AvatarURL string    // Profile image URL, may be empty.
	CreatedAt time.Time // Timestamp of the first authenticated request for this user.
	UpdatedAt time.Time // Timestamp of the last profile refresh.
}
