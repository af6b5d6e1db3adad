package domain

import (
	"fmt"
	"strings"
)

type FishType string

const (
	FishTilapia  FishType = "tilapia"
	FishPomfret  FishType = "pomfret"
	FishMackerel FishType = "mackerel"
	FishSardine  FishType = "sardine"
	FishTuna     FishType = "tuna"
)

// FishTypes lists every supported fish type in a stable order.
var FishTypes = []FishType{FishTilapia, FishPomfret, FishMackerel, FishSardine, FishTuna}

// ParseFishType normalizes case and whitespace before matching.
func ParseFishType(s string) (FishType, error) {
	ft := FishType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FishTypes {
		if ft == known {
			return ft, nil
		}
	}
	return "", fmt.Errorf("parse fish type %q: %w", s, ErrUnknownFishType)
}

// FastSpoiling reports oily species that degrade noticeably faster in transit.
func (f FishType) FastSpoiling() bool {
	return f == FishMackerel || f == FishSardine
}

// Available supply of one fish type at a port.
type FishLot struct {
	PortID       string   `json:"port_id"`
	FishType     FishType `json:"fish_type"`
	VolumeKg     float64  `json:"volume_kg"`
	QualityGrade string   `json:"quality_grade"`
	UnitPrice    float64  `json:"unit_price"`
}

// Per-hour spoilage fractions for one fish type.
// Rates are fractions of the shipment lost per hour of transit (0.02 = 2%/h).
type SpoilageProfile struct {
	FishType                FishType `json:"fish_type" yaml:"fish_type"`
	RegularRatePerHour      float64  `json:"regular_rate_per_hour" yaml:"regular_rate_per_hour"`
	RefrigeratedRatePerHour float64  `json:"refrigerated_rate_per_hour" yaml:"refrigerated_rate_per_hour"`
}

func (p SpoilageProfile) Validate() error {
	if p.RegularRatePerHour <= 0 || p.RefrigeratedRatePerHour <= 0 {
		return fmt.Errorf("spoilage profile %q: rates must be positive: %w", p.FishType, ErrInvalidInput)
	}
	if p.RefrigeratedRatePerHour > p.RegularRatePerHour {
		return fmt.Errorf(
			"spoilage profile %q: refrigerated rate must not exceed regular rate (regular=%v refrigerated=%v): %w",
			p.FishType, p.RegularRatePerHour, p.RefrigeratedRatePerHour, ErrInvalidInput,
		)
	}
	return nil
}
