package services

import (
	"fish-logistics-service/internal/domain"
	"io"
	"log/slog"
)

var (
	chennai    = domain.Coordinates{Lat: 13.0827, Lng: 80.2707}
	bangalore  = domain.Coordinates{Lat: 12.9716, Lng: 77.5946}
	vellore    = domain.Coordinates{Lat: 12.9165, Lng: 79.1325}
	coimbatore = domain.Coordinates{Lat: 11.0168, Lng: 76.9558}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{AverageSpeedKmh: 60, Logger: quietLogger()}
}

func reeferTruck(id string) domain.Truck {
	return domain.Truck{ID: id, CapacityKg: 2000, Type: domain.TruckRefrigerated, CostPerKm: 25, MaxDistanceKm: 1000, Available: true}
}

func regularTruck(id string) domain.Truck {
	return domain.Truck{ID: id, CapacityKg: 2000, Type: domain.TruckRegular, CostPerKm: 18, MaxDistanceKm: 1000, Available: true}
}

// chennaiSnapshot is one port, one Bangalore market buying tilapia at 180/kg,
// and the given trucks.
func chennaiSnapshot(trucks ...domain.Truck) *domain.Snapshot {
	return &domain.Snapshot{
		Ports: []domain.Port{
			{ID: "CHN", Name: "Chennai Fishing Harbour", Code: "INMAA", Location: chennai, Region: "TN", Active: true},
		},
		Trucks: trucks,
		Markets: []domain.Market{
			{
				ID:       "BLR",
				Name:     "Bangalore Wholesale",
				Location: bangalore,
				Demand: []domain.Demand{
					{FishType: domain.FishTilapia, QuantityKg: 1500, PricePerKg: 180},
				},
			},
		},
	}
}

func tilapiaRequest() OptimizeRequest {
	return OptimizeRequest{
		SourcePortIDs: []string{"CHN"},
		FishTypes:     []domain.FishType{domain.FishTilapia},
		VolumeKg:      1000,
		MaxDistanceKm: 500,
		Objective:     domain.ObjectiveProfit,
	}
}

func hasAdvice(r domain.RouteCandidate, code string) bool {
	for _, a := range r.Advisories {
		if a.Code == code {
			return true
		}
	}
	return false
}

// fixedDistance reports the same distance for every pair.
type fixedDistance float64

func (f fixedDistance) DistanceKm(_, _ domain.Coordinates) float64 { return float64(f) }
