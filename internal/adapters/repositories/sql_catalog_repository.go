package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"fmt"
	"log/slog"
)

// SQL-backed implementation of the CatalogRepository port.
// Rows that fail to map onto a valid domain record are logged and skipped.
type SQLCatalogRepository struct {
	DB      *sql.DB
	Dialect Dialect
	Logger  *slog.Logger
}

func NewSQLCatalogRepository(db *sql.DB, dialect Dialect, logger *slog.Logger) *SQLCatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLCatalogRepository{DB: db, Dialect: dialect, Logger: logger}
}

// LoadSnapshot reads every catalog table into one consistent snapshot.
func (r *SQLCatalogRepository) LoadSnapshot(ctx context.Context) (_ *domain.Snapshot, err error) {
	defer obs.Time(ctx, "catalog.sql.LoadSnapshot")(&err)

	if r.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := &domain.Snapshot{}
	if snap.Ports, err = r.listPorts(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Trucks, err = r.listTrucks(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Markets, err = r.listMarkets(ctx, tx); err != nil {
		return nil, err
	}
	if snap.ColdStorages, err = r.listColdStorages(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Lots, err = r.listLots(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Profiles, err = r.listProfiles(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("load snapshot: commit tx: %w", err)
	}

	return snap, nil
}

func (r *SQLCatalogRepository) listPorts(ctx context.Context, tx *sql.Tx) ([]domain.Port, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT id, name, code, lat, lng, region, active
	FROM ports
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list ports: query ports table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Port, 0, 16)
	for rows.Next() {
		var p domain.Port
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Location.Lat, &p.Location.Lng, &p.Region, &p.Active); err != nil {
			return nil, fmt.Errorf("list ports: scan row: %w", err)
		}
		if err := p.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed port row", "port_id", p.ID, "err", err)
			continue
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ports: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLCatalogRepository) listTrucks(ctx context.Context, tx *sql.Tx) ([]domain.Truck, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT id, capacity_kg, truck_type, cost_per_km, max_distance_km, available
	FROM trucks
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list trucks: query trucks table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Truck, 0, 16)
	for rows.Next() {
		var t domain.Truck
		var truckType string
		if err := rows.Scan(&t.ID, &t.CapacityKg, &truckType, &t.CostPerKm, &t.MaxDistanceKm, &t.Available); err != nil {
			return nil, fmt.Errorf("list trucks: scan row: %w", err)
		}

		tt, err := domain.ParseTruckType(truckType)
		if err != nil {
			r.Logger.Warn("catalog: skipping truck row with unknown type", "truck_id", t.ID, "truck_type", truckType)
			continue
		}
		t.Type = tt

		if err := t.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed truck row", "truck_id", t.ID, "err", err)
			continue
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trucks: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLCatalogRepository) listMarkets(ctx context.Context, tx *sql.Tx) ([]domain.Market, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT id, name, lat, lng, max_delivery_hours
	FROM markets
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list markets: query markets table: %w", err)
	}

	markets := make([]domain.Market, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var m domain.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.Location.Lat, &m.Location.Lng, &m.MaxDeliveryHours); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list markets: scan row: %w", err)
		}
		if err := m.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed market row", "market_id", m.ID, "err", err)
			continue
		}
		m.Demand = []domain.Demand{}
		index[m.ID] = len(markets)
		markets = append(markets, m)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("list markets: row iteration: %w", err)
	}

	// Read demand only after the market cursor is closed; a single SQLite
	// connection cannot hold two open result sets inside one tx.
	demand, err := tx.QueryContext(ctx, `
	SELECT market_id, fish_type, quantity_kg, price_per_kg
	FROM market_demand
	ORDER BY market_id, fish_type;
	`)
	if err != nil {
		return nil, fmt.Errorf("list markets: query market_demand table: %w", err)
	}
	defer demand.Close()

	for demand.Next() {
		var marketID, fish string
		var d domain.Demand
		if err := demand.Scan(&marketID, &fish, &d.QuantityKg, &d.PricePerKg); err != nil {
			return nil, fmt.Errorf("list markets: scan demand row: %w", err)
		}
		i, ok := index[marketID]
		if !ok {
			continue
		}
		d.FishType = normalizeFish(domain.FishType(fish))
		if err := d.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed demand row", "market_id", marketID, "fish_type", fish, "err", err)
			continue
		}
		markets[i].Demand = append(markets[i].Demand, d)
	}
	if err := demand.Err(); err != nil {
		return nil, fmt.Errorf("list markets: demand row iteration: %w", err)
	}

	return markets, nil
}

func (r *SQLCatalogRepository) listColdStorages(ctx context.Context, tx *sql.Tx) ([]domain.ColdStorage, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT id, name, lat, lng, capacity_kg, cost_per_hour, active
	FROM cold_storages
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list cold storages: query cold_storages table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ColdStorage, 0, 8)
	for rows.Next() {
		var c domain.ColdStorage
		if err := rows.Scan(&c.ID, &c.Name, &c.Location.Lat, &c.Location.Lng, &c.CapacityKg, &c.CostPerHour, &c.Active); err != nil {
			return nil, fmt.Errorf("list cold storages: scan row: %w", err)
		}
		if err := c.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed cold storage row", "cold_storage_id", c.ID, "err", err)
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cold storages: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLCatalogRepository) listLots(ctx context.Context, tx *sql.Tx) ([]domain.FishLot, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT port_id, fish_type, quality_grade, volume_kg, unit_price
	FROM fish_lots
	ORDER BY port_id, fish_type, quality_grade;
	`)
	if err != nil {
		return nil, fmt.Errorf("list lots: query fish_lots table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FishLot, 0, 16)
	for rows.Next() {
		var l domain.FishLot
		var fish string
		if err := rows.Scan(&l.PortID, &fish, &l.QualityGrade, &l.VolumeKg, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("list lots: scan row: %w", err)
		}
		l.FishType = normalizeFish(domain.FishType(fish))
		if l.VolumeKg <= 0 {
			r.Logger.Warn("catalog: skipping empty lot row", "port_id", l.PortID, "fish_type", fish)
			continue
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lots: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLCatalogRepository) listProfiles(ctx context.Context, tx *sql.Tx) ([]domain.SpoilageProfile, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT fish_type, regular_rate_per_hour, refrigerated_rate_per_hour
	FROM spoilage_profiles
	ORDER BY fish_type;
	`)
	if err != nil {
		return nil, fmt.Errorf("list spoilage profiles: query spoilage_profiles table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SpoilageProfile, 0, 8)
	for rows.Next() {
		var p domain.SpoilageProfile
		var fish string
		if err := rows.Scan(&fish, &p.RegularRatePerHour, &p.RefrigeratedRatePerHour); err != nil {
			return nil, fmt.Errorf("list spoilage profiles: scan row: %w", err)
		}
		p.FishType = normalizeFish(domain.FishType(fish))
		if err := p.Validate(); err != nil {
			r.Logger.Warn("catalog: skipping malformed spoilage profile row", "fish_type", fish, "err", err)
			continue
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spoilage profiles: row iteration: %w", err)
	}

	return out, nil
}
