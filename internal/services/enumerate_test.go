package services

import (
	"fish-logistics-service/internal/domain"
	"math"
	"testing"
)

func normalized(t *testing.T, req OptimizeRequest) OptimizeRequest {
	t.Helper()
	req, err := req.normalize(testOptions().withDefaults())
	if err != nil {
		t.Fatalf("normalize: unexpected error: %v", err)
	}
	return req
}

func ids(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID())
	}
	return out
}

func TestEnumerateFiltersByCapacityAndAvailability(t *testing.T) {
	small := reeferTruck("SMALL")
	small.CapacityKg = 500
	parked := reeferTruck("PARKED")
	parked.Available = false

	snap := chennaiSnapshot(small, reeferTruck("BIG"), parked)
	got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())

	if len(got) != 1 || got[0].Truck.ID != "BIG" {
		t.Fatalf("candidates = %v, want only BIG", ids(got))
	}
}

func TestEnumerateDistanceLimits(t *testing.T) {
	shortRange := reeferTruck("SHORT")
	shortRange.MaxDistanceKm = 200

	snap := chennaiSnapshot(shortRange, reeferTruck("LONG"))

	got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if len(got) != 1 || got[0].Truck.ID != "LONG" {
		t.Fatalf("candidates = %v, want only LONG", ids(got))
	}

	req := tilapiaRequest()
	req.MaxDistanceKm = 250
	if got := Enumerate(normalized(t, req), snap, testOptions()); len(got) != 0 {
		t.Fatalf("candidates = %v, want none beyond caller max distance", ids(got))
	}
}

func TestEnumerateNeverExceedsDistanceLimits(t *testing.T) {
	trucks := []domain.Truck{reeferTruck("A"), regularTruck("B")}
	trucks[0].MaxDistanceKm = 295
	trucks[1].MaxDistanceKm = 800

	snap := chennaiSnapshot(trucks...)
	snap.ColdStorages = []domain.ColdStorage{
		{ID: "VLR", Location: vellore, CapacityKg: 5000, CostPerHour: 40, Active: true},
		{ID: "CBE", Location: coimbatore, CapacityKg: 5000, CostPerHour: 40, Active: true},
	}

	for _, maxKm := range []float64{100, 290.5, 291.5, 500, 700, 2000} {
		req := tilapiaRequest()
		req.MaxDistanceKm = maxKm
		req.UseColdStorage = true

		for _, c := range Enumerate(normalized(t, req), snap, testOptions()) {
			if c.DistanceKm > maxKm || c.DistanceKm > c.Truck.MaxDistanceKm {
				t.Fatalf("max %v: candidate %s has distance %.1f (truck max %.1f)", maxKm, c.ID(), c.DistanceKm, c.Truck.MaxDistanceKm)
			}
		}
	}
}

func TestEnumerateDeliveryWindow(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"))

	snap.Markets[0].MaxDeliveryHours = 4
	if got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions()); len(got) != 0 {
		t.Fatalf("candidates = %v, want none outside a 4h window", ids(got))
	}

	snap.Markets[0].MaxDeliveryHours = 6
	if got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions()); len(got) != 1 {
		t.Fatalf("candidates = %v, want one inside a 6h window", ids(got))
	}
}

func TestEnumerateColdStorageIsAnAlternative(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"), regularTruck("T2"))
	snap.ColdStorages = []domain.ColdStorage{
		{ID: "VLR", Name: "Vellore Cold Chain", Location: vellore, CapacityKg: 5000, CostPerHour: 40, Active: true},
		{ID: "OFF", Location: vellore, CapacityKg: 5000, CostPerHour: 40, Active: false},
		{ID: "TINY", Location: vellore, CapacityKg: 100, CostPerHour: 40, Active: true},
	}

	req := tilapiaRequest()
	req.UseColdStorage = true
	got := Enumerate(normalized(t, req), snap, testOptions())

	// direct + via VLR for each truck
	if len(got) != 4 {
		t.Fatalf("candidates = %v, want 4", ids(got))
	}

	via := 0
	for _, c := range got {
		if c.ColdStorage == nil {
			if len(c.Legs) != 1 {
				t.Fatalf("direct route %s has %d legs", c.ID(), len(c.Legs))
			}
			continue
		}
		via++
		if c.ColdStorage.ID != "VLR" {
			t.Fatalf("unexpected storage %s", c.ColdStorage.ID)
		}
		if len(c.Legs) != 2 || c.Legs[0].To != "VLR" || c.Legs[1].From != "VLR" {
			t.Fatalf("via route legs = %+v", c.Legs)
		}
		if math.Abs(c.DistanceKm-(c.Legs[0].DistanceKm+c.Legs[1].DistanceKm)) > 1e-9 {
			t.Fatalf("via distance %v is not the sum of its legs", c.DistanceKm)
		}
		if c.StorageHours != DefaultStorageHours {
			t.Fatalf("storage hours = %v, want %v", c.StorageHours, DefaultStorageHours)
		}
	}
	if via != 2 {
		t.Fatalf("via candidates = %d, want 2", via)
	}

	// Without the flag storages are ignored.
	if got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions()); len(got) != 2 {
		t.Fatalf("candidates without cold storage = %v, want 2", ids(got))
	}
}

func TestEnumerateColdStorageLegSumCountsAgainstLimit(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"))
	snap.ColdStorages = []domain.ColdStorage{
		{ID: "VLR", Location: vellore, CapacityKg: 5000, CostPerHour: 40, Active: true},
	}

	req := tilapiaRequest()
	req.UseColdStorage = true
	req.MaxDistanceKm = 291 // direct ~290.2, via Vellore ~291.5

	got := Enumerate(normalized(t, req), snap, testOptions())
	if len(got) != 1 || got[0].ColdStorage != nil {
		t.Fatalf("candidates = %v, want only the direct route", ids(got))
	}
}

func TestEnumerateShippedVolume(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"))

	got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if got[0].VolumeKg != 1000 {
		t.Fatalf("volume = %v, want requested 1000", got[0].VolumeKg)
	}

	snap.Lots = []domain.FishLot{{PortID: "CHN", FishType: domain.FishTilapia, VolumeKg: 800}}
	got = Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if got[0].VolumeKg != 800 {
		t.Fatalf("volume = %v, want lot 800", got[0].VolumeKg)
	}

	snap.Markets[0].Demand[0].QuantityKg = 600
	got = Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if got[0].VolumeKg != 600 {
		t.Fatalf("volume = %v, want demand 600", got[0].VolumeKg)
	}

	if got[0].VolumeKg > got[0].Truck.CapacityKg {
		t.Fatalf("volume %v exceeds truck capacity", got[0].VolumeKg)
	}
}

func TestEnumerateSkipsMalformedRecords(t *testing.T) {
	broken := reeferTruck("BROKEN")
	broken.Type = "hovercraft"

	snap := chennaiSnapshot(broken, reeferTruck("OK"))
	snap.Markets = append(snap.Markets,
		domain.Market{ID: "NOWHERE", Location: domain.Coordinates{Lat: 200, Lng: 0},
			Demand: []domain.Demand{{FishType: domain.FishTilapia, QuantityKg: 100, PricePerKg: 100}}},
		domain.Market{ID: "FREE", Location: vellore,
			Demand: []domain.Demand{{FishType: domain.FishTilapia, QuantityKg: 100, PricePerKg: 0}}},
	)

	got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if len(got) != 1 || got[0].Truck.ID != "OK" || got[0].Market.ID != "BLR" {
		t.Fatalf("candidates = %v, want only CHN:tilapia:BLR:OK:direct", ids(got))
	}
}

func TestEnumerateNoDuplicatesCollapsed(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"), reeferTruck("T2"), regularTruck("T3"))
	got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions())
	if len(got) != 3 {
		t.Fatalf("candidates = %v, want one per truck", ids(got))
	}
}

func TestEnumerateEmptyInputs(t *testing.T) {
	snap := chennaiSnapshot(reeferTruck("T1"))
	snap.Markets = nil
	if got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions()); len(got) != 0 {
		t.Fatalf("candidates = %v, want none without markets", ids(got))
	}

	snap = chennaiSnapshot(reeferTruck("T1"))
	req := tilapiaRequest()
	req.FishTypes = []domain.FishType{domain.FishTuna}
	if got := Enumerate(normalized(t, req), snap, testOptions()); len(got) != 0 {
		t.Fatalf("candidates = %v, want none when no market demands tuna", ids(got))
	}

	snap.Ports[0].Active = false
	if got := Enumerate(normalized(t, tilapiaRequest()), snap, testOptions()); len(got) != 0 {
		t.Fatalf("candidates = %v, want none from an inactive port", ids(got))
	}
}
