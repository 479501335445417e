package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LighthouseAuditModel mirrors the 'lighthouse_audits' table. Audits are
// append-only; history queries order by CreatedAt descending.
type LighthouseAuditModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	URL                string         `gorm:"type:text;not null;index"`
	PerformanceScore   int            `gorm:"not null"`
	SEOScore           int            `gorm:"column:seo_score;not null"`
	AccessibilityScore int            `gorm:"not null"`
	BestPracticesScore int            `gorm:"not null"`
	Device             string         `gorm:"type:varchar(20);not null;default:'mobile'"`
	AuditData          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (LighthouseAuditModel) TableName() string {
	return "lighthouse_audits"
}
