package repositories

import (
	"context"
	"database/sql"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/db"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func testSeed() CatalogSeed {
	return CatalogSeed{
		Ports: []domain.Port{
			{ID: "CHN", Name: "Chennai Fishing Harbour", Code: "INMAA", Location: domain.Coordinates{Lat: 13.0827, Lng: 80.2707}, Region: "TN", Active: true},
			{ID: "KOC", Name: "Kochi", Location: domain.Coordinates{Lat: 9.9312, Lng: 76.2673}, Active: false},
		},
		Trucks: []domain.Truck{
			{ID: "T1", CapacityKg: 2000, Type: "Refrigerated", CostPerKm: 25, MaxDistanceKm: 800, Available: true},
			{ID: "T2", CapacityKg: 5000, Type: domain.TruckRegular, CostPerKm: 15, MaxDistanceKm: 600, Available: false},
		},
		Markets: []domain.Market{
			{
				ID: "BLR", Name: "Bangalore Wholesale", Location: domain.Coordinates{Lat: 12.9716, Lng: 77.5946},
				Demand: []domain.Demand{
					{FishType: "Tilapia", QuantityKg: 1500, PricePerKg: 180},
					{FishType: domain.FishTuna, QuantityKg: 300, PricePerKg: 420},
				},
				MaxDeliveryHours: 12,
			},
		},
		ColdStorages: []domain.ColdStorage{
			{ID: "CS1", Name: "Vellore Cold Chain", Location: domain.Coordinates{Lat: 12.9165, Lng: 79.1325}, CapacityKg: 4000, CostPerHour: 40, Active: true},
		},
		Lots: []domain.FishLot{
			{PortID: "CHN", FishType: domain.FishTilapia, VolumeKg: 900, QualityGrade: "A", UnitPrice: 120},
			{PortID: "CHN", FishType: domain.FishTilapia, VolumeKg: 300, QualityGrade: "B", UnitPrice: 90},
		},
		Profiles: []domain.SpoilageProfile{
			{FishType: "Salmon", RegularRatePerHour: 0.03, RefrigeratedRatePerHour: 0.01},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedAndLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	require.NoError(t, Seed(ctx, conn, DialectSQLite, testSeed()))

	repo := NewSQLCatalogRepository(conn, DialectSQLite, quietLogger())
	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Ports, 2)
	assert.Equal(t, "CHN", snap.Ports[0].ID)
	assert.True(t, snap.Ports[0].Active)
	assert.False(t, snap.Ports[1].Active)
	assert.InDelta(t, 13.0827, snap.Ports[0].Location.Lat, 1e-9)

	require.Len(t, snap.Trucks, 2)
	assert.Equal(t, domain.TruckRefrigerated, snap.Trucks[0].Type)
	assert.False(t, snap.Trucks[1].Available)

	require.Len(t, snap.Markets, 1)
	assert.Equal(t, 12.0, snap.Markets[0].MaxDeliveryHours)
	d, ok := snap.Markets[0].DemandFor(domain.FishTilapia)
	require.True(t, ok, "demand fish types are normalized")
	assert.Equal(t, 180.0, d.PricePerKg)
	assert.Len(t, snap.Markets[0].Demand, 2)

	require.Len(t, snap.ColdStorages, 1)
	assert.True(t, snap.ColdStorages[0].Active)

	vol, ok := snap.LotVolume("CHN", domain.FishTilapia)
	require.True(t, ok)
	assert.Equal(t, 1200.0, vol)

	require.Len(t, snap.Profiles, 1)
	assert.Equal(t, domain.FishType("salmon"), snap.Profiles[0].FishType)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	seed := testSeed()
	require.NoError(t, Seed(ctx, conn, DialectSQLite, seed))

	seed = testSeed()
	seed.Markets[0].Demand = seed.Markets[0].Demand[:1]
	seed.Trucks[0].CostPerKm = 30
	require.NoError(t, Seed(ctx, conn, DialectSQLite, seed))

	snap, err := NewSQLCatalogRepository(conn, DialectSQLite, quietLogger()).LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Trucks, 2)
	assert.Equal(t, 30.0, snap.Trucks[0].CostPerKm)
	assert.Len(t, snap.Markets[0].Demand, 1, "demand is replaced per market")
}

func TestSeedRejectsMalformedRecords(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CatalogSeed)
	}{
		{"bad truck type", func(s *CatalogSeed) { s.Trucks[0].Type = "boat" }},
		{"bad coordinates", func(s *CatalogSeed) { s.Ports[0].Location.Lat = 91 }},
		{"free fish", func(s *CatalogSeed) { s.Markets[0].Demand[0].PricePerKg = 0 }},
		{"orphan lot", func(s *CatalogSeed) { s.Lots[0].PortID = "NOPE" }},
		{"zero rate profile", func(s *CatalogSeed) { s.Profiles[0].RegularRatePerHour = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := openTestDB(t)
			seed := testSeed()
			tt.mutate(&seed)

			require.Error(t, Seed(ctx, conn, DialectSQLite, seed))

			var n int
			require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM ports`).Scan(&n))
			assert.Zero(t, n, "nothing is written when validation fails")
		})
	}
}

func TestLoadSnapshotSkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	require.NoError(t, Seed(ctx, conn, DialectSQLite, testSeed()))

	stmts := []string{
		`INSERT INTO trucks (id, capacity_kg, truck_type, cost_per_km, max_distance_km, available) VALUES ('BAD', 1000, 'hovercraft', 10, 100, 1)`,
		`INSERT INTO trucks (id, capacity_kg, truck_type, cost_per_km, max_distance_km, available) VALUES ('ZERO', 0, 'regular', 10, 100, 1)`,
		`INSERT INTO ports (id, lat, lng) VALUES ('OUT', 123, 0)`,
		`INSERT INTO market_demand (market_id, fish_type, quantity_kg, price_per_kg) VALUES ('BLR', 'sardine', -5, 100)`,
		`INSERT INTO spoilage_profiles (fish_type, regular_rate_per_hour, refrigerated_rate_per_hour) VALUES ('eel', -1, 0.01)`,
	}
	for _, s := range stmts {
		_, err := conn.ExecContext(ctx, s)
		require.NoError(t, err)
	}

	snap, err := NewSQLCatalogRepository(conn, DialectSQLite, quietLogger()).LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snap.Trucks, 2)
	assert.Len(t, snap.Ports, 2)
	assert.Len(t, snap.Markets[0].Demand, 2)
	assert.Len(t, snap.Profiles, 1)
}

func TestLoadSnapshotEmptyCatalog(t *testing.T) {
	snap, err := NewSQLCatalogRepository(openTestDB(t), DialectSQLite, quietLogger()).LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Ports)
	assert.Empty(t, snap.Markets)
}

func TestLoadSnapshotNilDB(t *testing.T) {
	_, err := NewSQLCatalogRepository(nil, DialectSQLite, nil).LoadSnapshot(context.Background())
	require.Error(t, err)
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"ports": [{"id": "CHN", "name": "Chennai", "location": {"lat": 13.08, "lng": 80.27}, "active": true}],
		"trucks": [{"id": "T1", "capacity_kg": 2000, "type": "regular", "cost_per_km": 18, "max_distance_km": 500, "available": true}],
		"markets": [{"id": "BLR", "location": {"lat": 12.97, "lng": 77.59}, "demand": [{"fish_type": "pomfret", "quantity_kg": 100, "price_per_kg": 300}]}]
	}`), 0o600))

	require.NoError(t, SeedFromJSON(ctx, conn, DialectSQLite, path))

	snap, err := NewSQLCatalogRepository(conn, DialectSQLite, quietLogger()).LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Ports, 1)
	assert.Len(t, snap.Trucks, 1)
	assert.Empty(t, snap.ColdStorages)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"ports": [], "warehouses": []}`), 0o600))
	require.Error(t, SeedFromJSON(ctx, conn, DialectSQLite, bad), "unknown fields are rejected")

	require.Error(t, SeedFromJSON(ctx, conn, DialectSQLite, filepath.Join(t.TempDir(), "missing.json")))
}

func TestRebind(t *testing.T) {
	q := `SELECT * FROM t WHERE a = ? AND b = ?`
	assert.Equal(t, q, DialectSQLite.rebind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = $1 AND b = $2`, DialectPostgres.rebind(q))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)

	d, err = ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
