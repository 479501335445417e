package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SeoMetricModel mirrors the 'seo_metrics' table. The payload is stored as
// jsonb exactly as the provider shaped it; freshness is judged against
// CreatedAt at read time, never persisted.
type SeoMetricModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	MetricType string         `gorm:"type:varchar(50);not null;index"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	DateRange  string         `gorm:"type:varchar(50)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (SeoMetricModel) TableName() string {
	return "seo_metrics"
}
