package ports

import "fish-logistics-service/internal/domain"

// Contract for measuring the distance between two coordinates.
// Implementations must be pure and safe for concurrent use: the optimizer
// calls them from several goroutines at once.
type DistanceProvider interface {
	// Return distance in kilometers, never negative.
	DistanceKm(from, to domain.Coordinates) float64
}
