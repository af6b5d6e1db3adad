package domain

import (
	"fmt"
	"strings"
)

// Temperature-controlled facility usable as an intermediate stop.
type ColdStorage struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    Coordinates `json:"location"`
	CapacityKg  float64     `json:"capacity_kg"`
	CostPerHour float64     `json:"cost_per_hour"`
	Active      bool        `json:"active"`
}

func (c ColdStorage) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("validate cold storage: id must be non-empty: %w", ErrInvalidInput)
	}
	if err := c.Location.Validate(); err != nil {
		return fmt.Errorf("validate cold storage %s: %w", c.ID, err)
	}
	if c.CapacityKg <= 0 {
		return fmt.Errorf("validate cold storage %s: capacity must be positive: %w", c.ID, ErrInvalidInput)
	}
	if c.CostPerHour < 0 {
		return fmt.Errorf("validate cold storage %s: cost per hour must not be negative: %w", c.ID, ErrInvalidInput)
	}
	return nil
}
