package services

import (
	"fish-logistics-service/internal/domain"
	"math"
	"testing"
)

func TestDistanceKmChennaiBangalore(t *testing.T) {
	got := DistanceKm(chennai, bangalore)
	if math.Abs(got-290) > 2 {
		t.Fatalf("distance = %.2f km, want ~290", got)
	}
}

func TestDistanceKmSymmetricAndNonNegative(t *testing.T) {
	points := []domain.Coordinates{
		chennai, bangalore, vellore, coimbatore,
		{Lat: 0, Lng: 0},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
		{Lat: -89.9, Lng: 0.1},
	}

	for _, a := range points {
		for _, b := range points {
			ab := DistanceKm(a, b)
			ba := DistanceKm(b, a)
			if ab < 0 || math.IsNaN(ab) || math.IsInf(ab, 0) {
				t.Fatalf("distance(%v, %v) = %v, want finite non-negative", a, b, ab)
			}
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
			}
		}
	}

	if d := DistanceKm(chennai, chennai); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	got := DistanceKm(domain.Coordinates{Lat: 0, Lng: 0}, domain.Coordinates{Lat: 0, Lng: 180})
	want := math.Pi * earthRadiusKm
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("antipodal distance = %v, want %v", got, want)
	}
}

func TestTravelTimeHours(t *testing.T) {
	if got := TravelTimeHours(300, 60); got != 5 {
		t.Fatalf("TravelTimeHours(300, 60) = %v, want 5", got)
	}
	if got := TravelTimeHours(0, 50); got != 0 {
		t.Fatalf("TravelTimeHours(0, 50) = %v, want 0", got)
	}
	if got := TravelTimeHours(10, 0); !math.IsInf(got, 1) {
		t.Fatalf("TravelTimeHours with zero speed = %v, want +Inf", got)
	}
}
