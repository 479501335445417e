package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServiceType(t *testing.T) {
	tests := []struct {
		raw    string
		want   ServiceType
		wantOK bool
	}{
		{raw: "analytics", want: ServiceAnalytics, wantOK: true},
		{raw: "search_console", want: ServiceSearchConsole, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "youtube", wantOK: false},
		{raw: "Analytics", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseServiceType(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		raw    string
		want   Device
		wantOK bool
	}{
		{raw: "mobile", want: DeviceMobile, wantOK: true},
		{raw: "desktop", want: DeviceDesktop, wantOK: true},
		{raw: "", want: DeviceMobile, wantOK: true},
		{raw: "tablet", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseDevice(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
