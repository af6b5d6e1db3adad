package services

import "math"

const (
	fuelEfficiencyKmPerLiter = 12.0
	co2KgPerLiter            = 2.6

	sustainabilityBase = 50.0
)

// EfficiencyScore is the unweighted mean of three 0-100 sub-scores:
// freshness, profit (1 point per 1000 currency units) and proximity.
func EfficiencyScore(spoilagePct, netProfit, distanceKm float64) float64 {
	freshness := math.Max(0, 100-2*spoilagePct)
	profit := clamp(netProfit/1000, 0, 100)
	proximity := math.Max(0, 100-distanceKm/10)
	return (freshness + profit + proximity) / 3
}

// SustainabilityScore starts at a base and only ever adds bonuses.
func SustainabilityScore(spoilagePct float64, refrigerated bool, distanceKm float64) float64 {
	score := sustainabilityBase

	switch {
	case spoilagePct < 5:
		score += 20
	case spoilagePct < 10:
		score += 10
	}

	if refrigerated {
		score += 15
	}

	switch {
	case distanceKm < 200:
		score += 15
	case distanceKm < 500:
		score += 5
	}

	return math.Min(100, score)
}

// CarbonKg estimates diesel CO2 for the driven distance.
func CarbonKg(distanceKm float64) float64 {
	return distanceKm / fuelEfficiencyKmPerLiter * co2KgPerLiter
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
