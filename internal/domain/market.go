package domain

import (
	"fmt"
	"strings"
)

// Quantity of one fish type a market will take, and the price it pays.
type Demand struct {
	FishType   FishType `json:"fish_type"`
	QuantityKg float64  `json:"quantity_kg"`
	PricePerKg float64  `json:"price_per_kg"`
}

// Market buying fish. MaxDeliveryHours of zero means the market sets no delivery window.
type Market struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Location         Coordinates `json:"location"`
	Demand           []Demand    `json:"demand"`
	MaxDeliveryHours float64     `json:"max_delivery_hours"`
}

// DemandFor returns the demand entry for a fish type, if any.
func (m Market) DemandFor(ft FishType) (Demand, bool) {
	for _, d := range m.Demand {
		if d.FishType == ft {
			return d, true
		}
	}
	return Demand{}, false
}

func (m Market) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("validate market: id must be non-empty: %w", ErrInvalidInput)
	}
	if err := m.Location.Validate(); err != nil {
		return fmt.Errorf("validate market %s: %w", m.ID, err)
	}
	if m.MaxDeliveryHours < 0 {
		return fmt.Errorf("validate market %s: max delivery hours must not be negative: %w", m.ID, ErrInvalidInput)
	}
	return nil
}

func (d Demand) Validate() error {
	if d.QuantityKg <= 0 {
		return fmt.Errorf("validate demand %s: quantity must be positive: %w", d.FishType, ErrInvalidInput)
	}
	if d.PricePerKg <= 0 {
		return fmt.Errorf("validate demand %s: price must be positive: %w", d.FishType, ErrInvalidInput)
	}
	return nil
}
