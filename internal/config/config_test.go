package config

import (
	"errors"
	"fish-logistics-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "AVERAGE_SPEED_KMH", "CATALOG_CACHE_TTL", "OPTIMIZER_WORKERS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 60.0, cfg.AverageSpeedKmh)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 0, cfg.OptimizerWorkers)
	assert.Equal(t, "data/app.db", cfg.DSN())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://fish@localhost/fish")
	t.Setenv("AVERAGE_SPEED_KMH", "50")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("OPTIMIZER_WORKERS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 50.0, cfg.AverageSpeedKmh)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 0, cfg.OptimizerWorkers, "invalid ints fall back to the default")
	assert.Equal(t, "postgres://fish@localhost/fish", cfg.DSN())
}

func TestParseSpoilageProfiles(t *testing.T) {
	in := `
profiles:
  - fish_type: Tilapia
    regular_rate_per_hour: 0.03
    refrigerated_rate_per_hour: 0.01
`
	profiles, err := ParseSpoilageProfiles(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, domain.FishTilapia, profiles[0].FishType)
	assert.Equal(t, 0.03, profiles[0].RegularRatePerHour)
}

func TestParseSpoilageProfilesRejectsBadEntries(t *testing.T) {
	unknown := "profiles:\n  - fish_type: salmon\n    regular_rate_per_hour: 0.03\n    refrigerated_rate_per_hour: 0.01\n"
	_, err := ParseSpoilageProfiles(strings.NewReader(unknown))
	assert.True(t, errors.Is(err, domain.ErrUnknownFishType), "got %v", err)

	zero := "profiles:\n  - fish_type: tuna\n    regular_rate_per_hour: 0\n    refrigerated_rate_per_hour: 0.01\n"
	_, err = ParseSpoilageProfiles(strings.NewReader(zero))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)

	inverted := "profiles:\n  - fish_type: tilapia\n    regular_rate_per_hour: 0.01\n    refrigerated_rate_per_hour: 0.05\n"
	_, err = ParseSpoilageProfiles(strings.NewReader(inverted))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "refrigerated above regular: got %v", err)

	_, err = ParseSpoilageProfiles(strings.NewReader("profiles:\n  - fish: tuna\n"))
	assert.Error(t, err, "unknown yaml fields are rejected")
}

func TestOptimizerOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"profiles:\n  - fish_type: sardine\n    regular_rate_per_hour: 0.05\n    refrigerated_rate_per_hour: 0.02\n"), 0o600))

	cfg := Config{
		AverageSpeedKmh:      45,
		OptimizerWorkers:     4,
		StorageHours:         8,
		HighProfitThreshold:  75000,
		SpoilageProfilesPath: path,
	}

	opts, err := cfg.OptimizerOptions(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 45.0, opts.AverageSpeedKmh)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 8.0, opts.DefaultStorageHours)
	require.NotNil(t, opts.Annotator)

	last := opts.Profiles[len(opts.Profiles)-1]
	assert.Equal(t, domain.FishSardine, last.FishType)
	assert.Equal(t, 0.05, last.RegularRatePerHour, "file entries come after the defaults and win")

	cfg.SpoilageProfilesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.OptimizerOptions(nil, nil)
	assert.Error(t, err)
}
