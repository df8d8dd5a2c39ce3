package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"truncates past eight places", 1.234567891, 1.23456789},
		{"rounds up past the midpoint", 1.234567896, 1.2345679},
		{"negative value", -122.987654321987, -122.98765432},
		{"zero", 0, 0},
		{"fewer than eight places unchanged", 47.5, 47.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundCoordinate(tt.value), 1e-12)
		})
	}
}

func TestNewGeospatialPinRoundsCoordinates(t *testing.T) {
	arrival := time.Date(2025, time.August, 26, 10, 0, 0, 0, time.Local)

	pin := NewGeospatialPin(1.234567891, -1.234567891, arrival, 120)

	assert.InDelta(t, 1.23456789, pin.Latitude, 1e-12)
	assert.InDelta(t, -1.23456789, pin.Longitude, 1e-12)
	assert.True(t, pin.ArrivalTime.Equal(arrival))
	assert.Equal(t, 120, pin.DurationSeconds)
	assert.Zero(t, pin.ID, "id is assigned by the store")
}
