package models

import (
	"math"
	"time"
)

// CoordinatePrecision is the number of decimal places kept on stored
// latitude and longitude values.
const CoordinatePrecision = 8

// GeospatialPin represents a single recorded visit: where the device was,
// when it arrived, and how long it stayed there.
type GeospatialPin struct {
	ID              int64     `json:"id"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	DurationSeconds int       `json:"durationSeconds"`
	Address         string    `json:"address,omitempty"`
}

// NewGeospatialPin creates an unstored pin with coordinates rounded to
// storage precision. The id is assigned when the pin is persisted.
func NewGeospatialPin(latitude, longitude float64, arrivalTime time.Time, durationSeconds int) *GeospatialPin {
	return &GeospatialPin{
		Latitude:        RoundCoordinate(latitude),
		Longitude:       RoundCoordinate(longitude),
		ArrivalTime:     arrivalTime,
		DurationSeconds: durationSeconds,
	}
}

// RoundCoordinate rounds a coordinate to eight decimal places.
func RoundCoordinate(value float64) float64 {
	const precision = 100000000 // Eight decimal places
	return math.Round(value*precision) / precision
}

// PinRequest carries the client-settable fields of a pin. ArrivalTime is
// optional; a missing value means "now".
type PinRequest struct {
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	ArrivalTime     *time.Time `json:"arrivalTime"`
	DurationSeconds int        `json:"durationSeconds"`
	Address         string     `json:"address"`
}
