package services

import (
	"fish-logistics-service/internal/domain"
	"math"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (Haversine) distance between two points.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng
	// Rounding can push h a hair above 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// TravelTimeHours converts a distance into driving hours at a constant average speed.
func TravelTimeHours(distanceKm, averageSpeedKmh float64) float64 {
	if averageSpeedKmh <= 0 {
		return math.Inf(1)
	}
	return distanceKm / averageSpeedKmh
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// GreatCircle implements ports.DistanceProvider with DistanceKm.
type GreatCircle struct{}

func (GreatCircle) DistanceKm(from, to domain.Coordinates) float64 { return DistanceKm(from, to) }
