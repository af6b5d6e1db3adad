package domain

import (
	"fmt"
	"strings"
)

// Fishing port where a catch is landed.
type Port struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Code     string      `json:"code"`
	Location Coordinates `json:"location"`
	Region   string      `json:"region"`
	Active   bool        `json:"active"`
}

func (p Port) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("validate port: id must be non-empty: %w", ErrInvalidInput)
	}
	if err := p.Location.Validate(); err != nil {
		return fmt.Errorf("validate port %s: %w", p.ID, err)
	}
	return nil
}
