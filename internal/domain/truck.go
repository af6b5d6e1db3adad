package domain

import (
	"fmt"
	"strings"
)

type TruckType string

const (
	TruckRefrigerated TruckType = "refrigerated"
	TruckRegular      TruckType = "regular"
)

// ParseTruckType accepts the two transport modes, case-insensitively.
func ParseTruckType(s string) (TruckType, error) {
	switch TruckType(strings.ToLower(strings.TrimSpace(s))) {
	case TruckRefrigerated:
		return TruckRefrigerated, nil
	case TruckRegular:
		return TruckRegular, nil
	}
	return "", fmt.Errorf("parse truck type %q: %w", s, ErrInvalidInput)
}

// Truck available for a single shipment.
// Capacity and range decide feasibility; the type decides which spoilage rate applies.
type Truck struct {
	ID            string    `json:"id"`
	CapacityKg    float64   `json:"capacity_kg"`
	Type          TruckType `json:"type"`
	CostPerKm     float64   `json:"cost_per_km"`
	MaxDistanceKm float64   `json:"max_distance_km"`
	Available     bool      `json:"available"`
}

func (t Truck) Refrigerated() bool { return t.Type == TruckRefrigerated }

// Validate reports records that cannot be scored.
func (t Truck) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("validate truck: id must be non-empty: %w", ErrInvalidInput)
	}
	if t.Type != TruckRefrigerated && t.Type != TruckRegular {
		return fmt.Errorf("validate truck %s: unknown type %q: %w", t.ID, t.Type, ErrInvalidInput)
	}
	if t.CapacityKg <= 0 {
		return fmt.Errorf("validate truck %s: capacity must be positive (capacity=%v): %w", t.ID, t.CapacityKg, ErrInvalidInput)
	}
	if t.CostPerKm < 0 {
		return fmt.Errorf("validate truck %s: cost per km must not be negative: %w", t.ID, ErrInvalidInput)
	}
	if t.MaxDistanceKm <= 0 {
		return fmt.Errorf("validate truck %s: max distance must be positive: %w", t.ID, ErrInvalidInput)
	}
	return nil
}

// CanCarry reports whether the truck is available and large enough for the volume.
func (t Truck) CanCarry(volumeKg float64) bool {
	return t.Available && t.CapacityKg >= volumeKg
}
