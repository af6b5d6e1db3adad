package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate rejects non-finite or out-of-range coordinates.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("coordinates (%v, %v) must be finite: %w", c.Lat, c.Lng, ErrInvalidInput)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range: %w", c.Lat, ErrInvalidInput)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range: %w", c.Lng, ErrInvalidInput)
	}
	return nil
}
