package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisURL        string
	CatalogCacheTTL time.Duration

	AverageSpeedKmh      float64
	OptimizerWorkers     int
	StorageHours         float64
	HighProfitThreshold  float64
	SpoilageProfilesPath string

	AssistantBaseURL string
	AssistantAPIKey  string
	AssistantModel   string
}

// LoadDotEnv loads .env when present; a missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}
}

// Load reads Config from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:        Get("PORT", "8080"),
		Environment: Get("ENVIRONMENT", "development"),
		LogLevel:    Get("LOG_LEVEL", "info"),

		DBDriver:    Get("DB_DRIVER", "sqlite"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/catalog.json"),

		RedisURL:        Get("REDIS_URL", ""),
		CatalogCacheTTL: GetDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		AverageSpeedKmh:      GetFloat("AVERAGE_SPEED_KMH", 60),
		OptimizerWorkers:     GetInt("OPTIMIZER_WORKERS", 0),
		StorageHours:         GetFloat("COLD_STORAGE_HOURS", 6),
		HighProfitThreshold:  GetFloat("HIGH_PROFIT_THRESHOLD", 50000),
		SpoilageProfilesPath: Get("SPOILAGE_PROFILES_PATH", ""),

		AssistantBaseURL: Get("ASSISTANT_BASE_URL", "https://api.openai.com/v1"),
		AssistantAPIKey:  Get("ASSISTANT_API_KEY", ""),
		AssistantModel:   Get("ASSISTANT_MODEL", "gpt-4o-mini"),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("config: invalid float, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config: invalid int, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config: invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
