package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Rows are upserted from session token
// claims, so the primary key comes from the login provider rather than the
// database.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	FirstName       string    `gorm:"type:varchar(100)"`
	LastName        string    `gorm:"type:varchar(100)"`
	ProfileImageURL string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Credentials []GoogleCredentialModel `gorm:"foreignKey:UserID"`
	Audits      []LighthouseAuditModel  `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
