package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fish-logistics-service/internal/domain"
	"fmt"
	"os"
	"strings"
)

// CatalogSeed is the JSON layout accepted by SeedFromJSON.
type CatalogSeed struct {
	Ports        []domain.Port            `json:"ports"`
	Trucks       []domain.Truck           `json:"trucks"`
	Markets      []domain.Market          `json:"markets"`
	ColdStorages []domain.ColdStorage     `json:"cold_storages"`
	Lots         []domain.FishLot         `json:"lots"`
	Profiles     []domain.SpoilageProfile `json:"spoilage_profiles"`
}

// Populate the database with catalog data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	return Seed(ctx, db, dialect, seed)
}

// Seed validates every record and upserts the whole catalog in one transaction.
// Unlike reads, seeding is strict: the first malformed record aborts it.
func Seed(ctx context.Context, db *sql.DB, dialect Dialect, seed CatalogSeed) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}
	if err := seed.normalize(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range seed.Ports {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO ports (id, name, code, lat, lng, region, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			code = EXCLUDED.code,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			region = EXCLUDED.region,
			active = EXCLUDED.active;
		`), p.ID, p.Name, p.Code, p.Location.Lat, p.Location.Lng, p.Region, boolInt(p.Active))
		if err != nil {
			return fmt.Errorf("seed catalog: upsert port id=%q: %w", p.ID, err)
		}
	}

	for _, t := range seed.Trucks {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO trucks (id, capacity_kg, truck_type, cost_per_km, max_distance_km, available)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET capacity_kg = EXCLUDED.capacity_kg,
			truck_type = EXCLUDED.truck_type,
			cost_per_km = EXCLUDED.cost_per_km,
			max_distance_km = EXCLUDED.max_distance_km,
			available = EXCLUDED.available;
		`), t.ID, t.CapacityKg, string(t.Type), t.CostPerKm, t.MaxDistanceKm, boolInt(t.Available))
		if err != nil {
			return fmt.Errorf("seed catalog: upsert truck id=%q: %w", t.ID, err)
		}
	}

	for _, m := range seed.Markets {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO markets (id, name, lat, lng, max_delivery_hours)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			max_delivery_hours = EXCLUDED.max_delivery_hours;
		`), m.ID, m.Name, m.Location.Lat, m.Location.Lng, m.MaxDeliveryHours)
		if err != nil {
			return fmt.Errorf("seed catalog: upsert market id=%q: %w", m.ID, err)
		}

		if _, err := tx.ExecContext(ctx, dialect.rebind(`DELETE FROM market_demand WHERE market_id = ?;`), m.ID); err != nil {
			return fmt.Errorf("seed catalog: clear demand market_id=%q: %w", m.ID, err)
		}
		for _, d := range m.Demand {
			_, err := tx.ExecContext(ctx, dialect.rebind(`
			INSERT INTO market_demand (market_id, fish_type, quantity_kg, price_per_kg)
			VALUES (?, ?, ?, ?);
			`), m.ID, string(d.FishType), d.QuantityKg, d.PricePerKg)
			if err != nil {
				return fmt.Errorf("seed catalog: insert demand market_id=%q fish_type=%q: %w", m.ID, d.FishType, err)
			}
		}
	}

	for _, c := range seed.ColdStorages {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO cold_storages (id, name, lat, lng, capacity_kg, cost_per_hour, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			capacity_kg = EXCLUDED.capacity_kg,
			cost_per_hour = EXCLUDED.cost_per_hour,
			active = EXCLUDED.active;
		`), c.ID, c.Name, c.Location.Lat, c.Location.Lng, c.CapacityKg, c.CostPerHour, boolInt(c.Active))
		if err != nil {
			return fmt.Errorf("seed catalog: upsert cold storage id=%q: %w", c.ID, err)
		}
	}

	for _, l := range seed.Lots {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO fish_lots (port_id, fish_type, quality_grade, volume_kg, unit_price)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (port_id, fish_type, quality_grade) DO UPDATE
		SET volume_kg = EXCLUDED.volume_kg,
			unit_price = EXCLUDED.unit_price;
		`), l.PortID, string(l.FishType), l.QualityGrade, l.VolumeKg, l.UnitPrice)
		if err != nil {
			return fmt.Errorf("seed catalog: upsert lot port_id=%q fish_type=%q: %w", l.PortID, l.FishType, err)
		}
	}

	for _, p := range seed.Profiles {
		_, err := tx.ExecContext(ctx, dialect.rebind(`
		INSERT INTO spoilage_profiles (fish_type, regular_rate_per_hour, refrigerated_rate_per_hour)
		VALUES (?, ?, ?)
		ON CONFLICT (fish_type) DO UPDATE
		SET regular_rate_per_hour = EXCLUDED.regular_rate_per_hour,
			refrigerated_rate_per_hour = EXCLUDED.refrigerated_rate_per_hour;
		`), string(p.FishType), p.RegularRatePerHour, p.RefrigeratedRatePerHour)
		if err != nil {
			return fmt.Errorf("seed catalog: upsert spoilage profile fish_type=%q: %w", p.FishType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

func normalizeFish(ft domain.FishType) domain.FishType {
	return domain.FishType(strings.ToLower(strings.TrimSpace(string(ft))))
}

func (s *CatalogSeed) normalize() error {
	ports := make(map[string]struct{}, len(s.Ports))
	for i := range s.Ports {
		p := &s.Ports[i]
		p.ID = strings.TrimSpace(p.ID)
		if err := p.Validate(); err != nil {
			return fmt.Errorf("port at index %d: %w", i+1, err)
		}
		ports[p.ID] = struct{}{}
	}

	for i := range s.Trucks {
		t := &s.Trucks[i]
		t.ID = strings.TrimSpace(t.ID)
		tt, err := domain.ParseTruckType(string(t.Type))
		if err != nil {
			return fmt.Errorf("truck at index %d: %w", i+1, err)
		}
		t.Type = tt
		if err := t.Validate(); err != nil {
			return fmt.Errorf("truck at index %d: %w", i+1, err)
		}
	}

	for i := range s.Markets {
		m := &s.Markets[i]
		m.ID = strings.TrimSpace(m.ID)
		if err := m.Validate(); err != nil {
			return fmt.Errorf("market at index %d: %w", i+1, err)
		}
		for j := range m.Demand {
			m.Demand[j].FishType = normalizeFish(m.Demand[j].FishType)
			if m.Demand[j].FishType == "" {
				return fmt.Errorf("market %s demand at index %d: fish type cannot be empty", m.ID, j+1)
			}
			if err := m.Demand[j].Validate(); err != nil {
				return fmt.Errorf("market %s demand at index %d: %w", m.ID, j+1, err)
			}
		}
	}

	for i := range s.ColdStorages {
		c := &s.ColdStorages[i]
		c.ID = strings.TrimSpace(c.ID)
		if err := c.Validate(); err != nil {
			return fmt.Errorf("cold storage at index %d: %w", i+1, err)
		}
	}

	for i := range s.Lots {
		l := &s.Lots[i]
		l.FishType = normalizeFish(l.FishType)
		if _, ok := ports[l.PortID]; !ok {
			return fmt.Errorf("lot at index %d: unknown port %q", i+1, l.PortID)
		}
		if l.FishType == "" || l.VolumeKg <= 0 {
			return fmt.Errorf("lot at index %d: fish type and a positive volume are required", i+1)
		}
	}

	for i := range s.Profiles {
		p := &s.Profiles[i]
		p.FishType = normalizeFish(p.FishType)
		if p.FishType == "" {
			return fmt.Errorf("spoilage profile at index %d: fish type cannot be empty", i+1)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("spoilage profile at index %d: %w", i+1, err)
		}
	}

	return nil
}
