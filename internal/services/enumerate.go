package services

import (
	"fish-logistics-service/internal/domain"
	"log/slog"
	"math"
	"strings"
)

// PlannedLeg is one segment of an enumerated, not yet scored, route.
type PlannedLeg struct {
	From        string
	To          string
	DistanceKm  float64
	TravelHours float64
}

// Candidate is a feasible (port, fish, market, truck, storage) combination.
type Candidate struct {
	Port        domain.Port
	Market      domain.Market
	Demand      domain.Demand
	Truck       domain.Truck
	ColdStorage *domain.ColdStorage
	FishType    domain.FishType
	VolumeKg    float64

	Legs         []PlannedLeg
	DistanceKm   float64
	TravelHours  float64
	StorageHours float64
}

func (c Candidate) ID() string {
	storage := "direct"
	if c.ColdStorage != nil {
		storage = c.ColdStorage.ID
	}
	return strings.Join([]string{c.Port.ID, string(c.FishType), c.Market.ID, c.Truck.ID, storage}, ":")
}

// Enumerate builds every feasible candidate for a normalized request.
//
// For each source port, fish type, market demanding that fish and truck able
// to carry the requested volume, the direct route is emitted; when cold
// storage is requested, one two-leg route per facility is emitted as well.
// Routes are dropped when they exceed min(truck range, caller max distance)
// or the market's delivery window. Malformed records are skipped one by one.
// Candidates are never deduplicated; an empty result is not an error.
func Enumerate(req OptimizeRequest, snap *domain.Snapshot, opts Options) []Candidate {
	opts = opts.withDefaults()
	log := opts.Logger

	trucks := validTrucks(snap.Trucks, req.VolumeKg, log)
	markets := validMarkets(snap.Markets, log)
	var storages []domain.ColdStorage
	if req.UseColdStorage {
		storages = validStorages(snap.ColdStorages, log)
	}

	dist := newDistanceMemo(opts)
	out := []Candidate{}

	for _, portID := range req.SourcePortIDs {
		port, ok := snap.Port(portID)
		if !ok {
			log.Warn("enumerate: unknown source port", "port_id", portID)
			continue
		}
		if !port.Active {
			log.Info("enumerate: skipping inactive port", "port_id", portID)
			continue
		}
		if err := port.Validate(); err != nil {
			log.Warn("enumerate: skipping malformed port", "port_id", portID, "err", err)
			continue
		}

		for _, ft := range req.FishTypes {
			lot := req.VolumeKg
			if v, ok := snap.LotVolume(port.ID, ft); ok {
				lot = v
			}
			if lot <= 0 {
				continue
			}

			for _, market := range markets {
				demand, ok := market.DemandFor(ft)
				if !ok {
					continue
				}
				if err := demand.Validate(); err != nil {
					log.Warn("enumerate: skipping malformed demand", "market_id", market.ID, "fish_type", ft, "err", err)
					continue
				}

				volume := math.Min(req.VolumeKg, math.Min(lot, demand.QuantityKg))
				direct := dist.leg(port.ID, port.Location, market.ID, market.Location)

				for _, truck := range trucks {
					limit := math.Min(truck.MaxDistanceKm, req.MaxDistanceKm)

					base := Candidate{
						Port:     port,
						Market:   market,
						Demand:   demand,
						Truck:    truck,
						FishType: ft,
						VolumeKg: volume,
					}

					if c, ok := withLegs(base, limit, 0, direct); ok {
						out = append(out, c)
					}

					for i := range storages {
						storage := storages[i]
						if storage.CapacityKg < volume {
							continue
						}

						inbound := dist.leg(port.ID, port.Location, storage.ID, storage.Location)
						outbound := dist.leg(storage.ID, storage.Location, market.ID, market.Location)

						via := base
						via.ColdStorage = &storage
						if c, ok := withLegs(via, limit, req.StorageHours, inbound, outbound); ok {
							out = append(out, c)
						}
					}
				}
			}
		}
	}

	return out
}

// withLegs attaches legs and totals, reporting false when the route is infeasible.
func withLegs(c Candidate, maxDistanceKm, storageHours float64, legs ...PlannedLeg) (Candidate, bool) {
	total, hours := 0.0, 0.0
	for _, l := range legs {
		total += l.DistanceKm
		hours += l.TravelHours
	}

	if total > maxDistanceKm {
		return Candidate{}, false
	}
	if c.Market.MaxDeliveryHours > 0 && hours+storageHours > c.Market.MaxDeliveryHours {
		return Candidate{}, false
	}

	c.Legs = legs
	c.DistanceKm = total
	c.TravelHours = hours
	c.StorageHours = storageHours
	return c, true
}

func validTrucks(all []domain.Truck, volumeKg float64, log *slog.Logger) []domain.Truck {
	out := make([]domain.Truck, 0, len(all))
	for _, t := range all {
		if err := t.Validate(); err != nil {
			log.Warn("enumerate: skipping malformed truck", "truck_id", t.ID, "err", err)
			continue
		}
		if !t.CanCarry(volumeKg) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func validMarkets(all []domain.Market, log *slog.Logger) []domain.Market {
	out := make([]domain.Market, 0, len(all))
	for _, m := range all {
		if err := m.Validate(); err != nil {
			log.Warn("enumerate: skipping malformed market", "market_id", m.ID, "err", err)
			continue
		}
		out = append(out, m)
	}
	return out
}

func validStorages(all []domain.ColdStorage, log *slog.Logger) []domain.ColdStorage {
	out := make([]domain.ColdStorage, 0, len(all))
	for _, s := range all {
		if !s.Active {
			continue
		}
		if err := s.Validate(); err != nil {
			log.Warn("enumerate: skipping malformed cold storage", "cold_storage_id", s.ID, "err", err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// distanceMemo caches distances for one Enumerate call; the same port-market
// pair recurs once per truck.
type distanceMemo struct {
	opts Options
	km   map[[2]domain.Coordinates]float64
}

func newDistanceMemo(opts Options) *distanceMemo {
	return &distanceMemo{opts: opts, km: make(map[[2]domain.Coordinates]float64)}
}

func (d *distanceMemo) leg(fromID string, from domain.Coordinates, toID string, to domain.Coordinates) PlannedLeg {
	key := [2]domain.Coordinates{from, to}
	km, ok := d.km[key]
	if !ok {
		km = d.opts.Distance.DistanceKm(from, to)
		d.km[key] = km
	}

	return PlannedLeg{
		From:        fromID,
		To:          toID,
		DistanceKm:  km,
		TravelHours: TravelTimeHours(km, d.opts.AverageSpeedKmh),
	}
}

// validProfiles drops catalog spoilage entries that would break the model.
// The base table in Options is checked at startup and stays strict.
func validProfiles(all []domain.SpoilageProfile, log *slog.Logger) []domain.SpoilageProfile {
	out := make([]domain.SpoilageProfile, 0, len(all))
	for _, p := range all {
		if err := p.Validate(); err != nil {
			log.Warn("optimize: skipping malformed spoilage profile", "fish_type", p.FishType, "err", err)
			continue
		}
		out = append(out, p)
	}
	return out
}
