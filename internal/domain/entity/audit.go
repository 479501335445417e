package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Device selects the PageSpeed analysis strategy.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// ParseDevice validates a raw device string. An empty value defaults to
// mobile, matching the audit endpoint's behavior.
func ParseDevice(raw string) (Device, bool) {
	switch Device(raw) {
	case "":
		return DeviceMobile, true
	case DeviceMobile, DeviceDesktop:
		return Device(raw), true
	default:
		return "", false
	}
}

// AuditRecord is one externally-scored snapshot of a URL's quality. Records
// are append-only; every audit run adds a row.
type AuditRecord struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	URL                string
	PerformanceScore   int // 0-100, rounded from the provider's fractional score.
	SEOScore           int
	AccessibilityScore int
	BestPracticesScore int
	Device             Device
	RawPayload         json.RawMessage // Full lighthouseResult from the provider.
	CreatedAt          time.Time
}
