package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Booleans are stored as 0/1 integers and reals as DOUBLE PRECISION so the
// same DDL runs on SQLite and PostgreSQL.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS ports (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS trucks (
		id TEXT PRIMARY KEY,
		capacity_kg DOUBLE PRECISION NOT NULL,
		truck_type TEXT NOT NULL,
		cost_per_km DOUBLE PRECISION NOT NULL,
		max_distance_km DOUBLE PRECISION NOT NULL,
		available INTEGER NOT NULL DEFAULT 1
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS markets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		max_delivery_hours DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS market_demand (
		market_id TEXT NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
		fish_type TEXT NOT NULL,
		quantity_kg DOUBLE PRECISION NOT NULL,
		price_per_kg DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (market_id, fish_type)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS cold_storages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		capacity_kg DOUBLE PRECISION NOT NULL,
		cost_per_hour DOUBLE PRECISION NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS fish_lots (
		port_id TEXT NOT NULL REFERENCES ports(id) ON DELETE CASCADE,
		fish_type TEXT NOT NULL,
		quality_grade TEXT NOT NULL DEFAULT '',
		volume_kg DOUBLE PRECISION NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (port_id, fish_type, quality_grade)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS spoilage_profiles (
		fish_type TEXT PRIMARY KEY,
		regular_rate_per_hour DOUBLE PRECISION NOT NULL,
		refrigerated_rate_per_hour DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_market_demand_fish_type
	ON market_demand(fish_type, market_id);
	`,
}

// InitSchema creates the catalog tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
