package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEncounterID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Encounter/abc", "abc"},
		{"abc", "abc"},
		{"Encounter/", ""},
		{"", ""},
		{"Patient/abc", "Patient/abc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeEncounterID(tt.in))
	}
}

func TestDelayDays(t *testing.T) {
	tests := []struct {
		name      string
		issued    string
		reference string
		want      float64
		wantNaN   bool
	}{
		{"half day", "2025-03-01T12:00:00Z", "2025-03-01T00:00:00Z", 0.5, false},
		{"negative", "2025-02-28T00:00:00Z", "2025-03-01T00:00:00Z", -1, false},
		{"zero", "2025-03-01T00:00:00Z", "2025-03-01T00:00:00Z", 0, false},
		{"timezone aware", "2025-03-01T12:00:00+02:00", "2025-03-01T10:00:00Z", 0, false},
		{"fractional seconds", "2025-03-01T00:00:00.500Z", "2025-03-01T00:00:00Z", 0.5 / 86400, false},
		{"bad issued", "garbage", "2025-03-01T00:00:00Z", 0, true},
		{"bad reference", "2025-03-01T00:00:00Z", "garbage", 0, true},
		{"empty issued", "", "2025-03-01T00:00:00Z", 0, true},
		{"empty reference", "2025-03-01T00:00:00Z", "", 0, true},
		{"date only", "2025-03-01", "2025-03-01T00:00:00Z", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := delayDays(tt.issued, tt.reference)
			if tt.wantNaN {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDischargeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-03T16:45:00Z", "2025-03-03"},
		{"2025-12-31T23:59:59-05:00", "2025-12-31"},
		{"", ""},
		{"garbage", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dischargeDate(tt.in))
	}
}
