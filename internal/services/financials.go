package services

import (
	"fish-logistics-service/internal/domain"
	"fmt"
	"math"
)

// FinancialInput carries everything needed to price one route.
type FinancialInput struct {
	VolumeKg    float64
	SpoilagePct float64
	PricePerKg  float64

	// Total driven distance across all legs, and the truck's rate.
	DistanceKm float64
	CostPerKm  float64

	// Zero when the route has no cold-storage stop.
	StorageHours       float64
	StorageCostPerHour float64
}

type Financials struct {
	FreshWeightKg float64
	Revenue       float64
	Costs         domain.CostBreakdown
	NetProfit     float64
}

// ComputeFinancials prices a route.
//
// Revenue is earned on fresh weight only. The spoiled weight is also
// reported as a cost line and included in the total, so
// netProfit = revenue - (transport + spoilage + coldStorage).
func ComputeFinancials(in FinancialInput) (Financials, error) {
	if in.VolumeKg <= 0 || math.IsNaN(in.VolumeKg) {
		return Financials{}, fmt.Errorf("compute financials: volume must be positive (volume=%v): %w", in.VolumeKg, domain.ErrInvalidInput)
	}
	if in.PricePerKg <= 0 || math.IsNaN(in.PricePerKg) {
		return Financials{}, fmt.Errorf("compute financials: price must be positive (price=%v): %w", in.PricePerKg, domain.ErrInvalidInput)
	}
	if in.SpoilagePct < 0 || in.SpoilagePct > 100 || math.IsNaN(in.SpoilagePct) {
		return Financials{}, fmt.Errorf("compute financials: spoilage %v outside [0, 100]: %w", in.SpoilagePct, domain.ErrInvalidInput)
	}
	if in.DistanceKm < 0 || in.CostPerKm < 0 || in.StorageHours < 0 || in.StorageCostPerHour < 0 {
		return Financials{}, fmt.Errorf("compute financials: distance, rates and storage hours must not be negative: %w", domain.ErrInvalidInput)
	}

	fresh := in.VolumeKg * (1 - in.SpoilagePct/100)
	revenue := fresh * in.PricePerKg

	costs := domain.CostBreakdown{
		Transport:   in.DistanceKm * in.CostPerKm,
		Spoilage:    (in.VolumeKg - fresh) * in.PricePerKg,
		ColdStorage: in.StorageHours * in.StorageCostPerHour,
	}
	costs.Total = costs.Transport + costs.Spoilage + costs.ColdStorage

	return Financials{
		FreshWeightKg: fresh,
		Revenue:       revenue,
		Costs:         costs,
		NetProfit:     revenue - costs.Total,
	}, nil
}
