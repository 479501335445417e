package model

import (
	"time"

	"github.com/google/uuid"
)

// GoogleCredentialModel mirrors the 'google_connections' table. One row per
// user per service type; the composite unique index makes reconnecting an
// upsert instead of an insert.
type GoogleCredentialModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_google_connections_user_service"`
	ServiceType  string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_google_connections_user_service"`
	AccessToken  string     `gorm:"type:text;not null"`
	RefreshToken string     `gorm:"type:text"`
	TokenExpiry  *time.Time `gorm:""`
	PropertyID   string     `gorm:"type:varchar(255)"`
	Connected    bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (GoogleCredentialModel) TableName() string {
	return "google_connections"
}
