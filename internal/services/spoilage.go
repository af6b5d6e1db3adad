package services

import (
	"fish-logistics-service/internal/domain"
	"fmt"
	"math"
)

// DefaultSpoilageProfiles is the canonical hourly rate table.
// Refrigerated rates are a third of the regular ones.
func DefaultSpoilageProfiles() []domain.SpoilageProfile {
	return []domain.SpoilageProfile{
		{FishType: domain.FishTilapia, RegularRatePerHour: 0.0200, RefrigeratedRatePerHour: 0.0067},
		{FishType: domain.FishPomfret, RegularRatePerHour: 0.0250, RefrigeratedRatePerHour: 0.0083},
		{FishType: domain.FishMackerel, RegularRatePerHour: 0.0350, RefrigeratedRatePerHour: 0.0117},
		{FishType: domain.FishSardine, RegularRatePerHour: 0.0400, RefrigeratedRatePerHour: 0.0133},
		{FishType: domain.FishTuna, RegularRatePerHour: 0.0220, RefrigeratedRatePerHour: 0.0073},
	}
}

// Conditions are the per-request environmental levers applied on top of the base rate.
type Conditions struct {
	// Ambient temperature in °C; nil means "not supplied".
	TemperatureC      *float64
	WeatherAdjustment bool
}

// SpoilageModel turns transit hours into an expected spoilage percentage.
//
// pct = min(rate * hours * temperatureFactor * weatherFactor * 100, 100)
//
// The model is immutable after construction and safe for concurrent use.
type SpoilageModel struct {
	rates map[domain.FishType]domain.SpoilageProfile

	baselineTempC     float64
	tempSlopePerDeg   float64
	weatherMultiplier float64
}

type SpoilageOptions struct {
	BaselineTempC     float64
	TempSlopePerDeg   float64
	WeatherMultiplier float64
}

func DefaultSpoilageOptions() SpoilageOptions {
	return SpoilageOptions{
		BaselineTempC:     25,
		TempSlopePerDeg:   0.05,
		WeatherMultiplier: 1.15,
	}
}

// NewSpoilageModel builds a model from a profile table.
// Later entries for the same fish type override earlier ones.
func NewSpoilageModel(profiles []domain.SpoilageProfile, opts SpoilageOptions) (*SpoilageModel, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("new spoilage model: profile table is empty: %w", domain.ErrInvalidInput)
	}
	if opts.TempSlopePerDeg < 0 || opts.WeatherMultiplier < 1 {
		return nil, fmt.Errorf(
			"new spoilage model: temperature slope must be >= 0 and weather multiplier >= 1 (slope=%v multiplier=%v): %w",
			opts.TempSlopePerDeg, opts.WeatherMultiplier, domain.ErrInvalidInput,
		)
	}

	rates := make(map[domain.FishType]domain.SpoilageProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("new spoilage model: %w", err)
		}
		rates[p.FishType] = p
	}

	return &SpoilageModel{
		rates:             rates,
		baselineTempC:     opts.BaselineTempC,
		tempSlopePerDeg:   opts.TempSlopePerDeg,
		weatherMultiplier: opts.WeatherMultiplier,
	}, nil
}

// Knows reports whether the model has a rate for the fish type.
func (m *SpoilageModel) Knows(ft domain.FishType) bool {
	_, ok := m.rates[ft]
	return ok
}

// LegSpoilage returns the spoilage percentage for a single leg.
func (m *SpoilageModel) LegSpoilage(ft domain.FishType, refrigerated bool, hours float64, cond Conditions) (float64, error) {
	profile, ok := m.rates[ft]
	if !ok {
		return 0, fmt.Errorf("leg spoilage: fish type %q: %w", ft, domain.ErrUnknownFishType)
	}
	if hours < 0 || math.IsNaN(hours) {
		return 0, fmt.Errorf("leg spoilage: travel hours must not be negative (hours=%v): %w", hours, domain.ErrInvalidInput)
	}

	rate := profile.RegularRatePerHour
	if refrigerated {
		rate = profile.RefrigeratedRatePerHour
	}

	pct := rate * hours * m.temperatureFactor(cond) * m.weatherFactor(cond) * 100
	return clampPct(pct), nil
}

// RouteSpoilage sums per-leg spoilage for a route driven in the given legs.
// The first leg uses the truck's own refrigeration; every leg after a
// cold-storage stop is refrigerated.
func (m *SpoilageModel) RouteSpoilage(
	ft domain.FishType,
	truckRefrigerated bool,
	legHours []float64,
	cond Conditions,
) (float64, []float64, error) {
	perLeg := make([]float64, 0, len(legHours))
	total := 0.0

	for i, h := range legHours {
		refrigerated := truckRefrigerated || i > 0
		pct, err := m.LegSpoilage(ft, refrigerated, h, cond)
		if err != nil {
			return 0, nil, fmt.Errorf("route spoilage: leg %d: %w", i+1, err)
		}
		perLeg = append(perLeg, pct)
		total += pct
	}

	return clampPct(total), perLeg, nil
}

func (m *SpoilageModel) temperatureFactor(cond Conditions) float64 {
	if cond.TemperatureC == nil || *cond.TemperatureC <= m.baselineTempC {
		return 1
	}
	return 1 + m.tempSlopePerDeg*(*cond.TemperatureC-m.baselineTempC)
}

func (m *SpoilageModel) weatherFactor(cond Conditions) float64 {
	if !cond.WeatherAdjustment {
		return 1
	}
	return m.weatherMultiplier
}

func clampPct(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}
