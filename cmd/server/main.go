package main

import (
	"context"
	"database/sql"
	"errors"
	"fish-logistics-service/internal/adapters/assistant"
	"fish-logistics-service/internal/adapters/cache"
	"fish-logistics-service/internal/adapters/repositories"
	"fish-logistics-service/internal/api"
	"fish-logistics-service/internal/config"
	"fish-logistics-service/internal/platform/db"
	"fish-logistics-service/internal/platform/logging"
	"fish-logistics-service/internal/platform/obs"
	"fish-logistics-service/internal/ports"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

const serviceName = "fish-logistics-service"

// main is the application composition root.
// It wires concrete adapters (SQL catalog, Redis cache, assistant) behind
// ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath, logger); err != nil {
		return err
	}

	metrics := obs.NewMetrics("fish_logistics")

	var catalog ports.CatalogRepository = repositories.NewSQLCatalogRepository(conn, dialect, logger)
	if cfg.RedisURL != "" {
		client, err := newRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		cached := cache.NewRedisCatalogCache(client, catalog, cfg.CatalogCacheTTL, logger)
		cached.Metrics = metrics
		catalog = cached
	}

	opts, err := cfg.OptimizerOptions(logger, metrics)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Repo:      catalog,
		Generator: newGenerator(cfg, logger),
		Options:   opts,
		Metrics:   metrics,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "db_driver", cfg.DBDriver, "redis", cfg.RedisURL != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string, logger *slog.Logger) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		logger.Info("seed file not found, skipping seed", "path", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info("catalog seeded", "path", seedPath)

	return nil
}

// newRedisClient parses REDIS_URL. An unreachable server is logged and the
// cache is still wired, since every cache failure falls through to SQL.
func newRedisClient(ctx context.Context, url string, logger *slog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, catalog cache will miss until it recovers", "err", err)
	}
	return client, nil
}

func newGenerator(cfg config.Config, logger *slog.Logger) ports.TextGenerator {
	if cfg.AssistantAPIKey == "" {
		logger.Info("ASSISTANT_API_KEY not set, using rule-based assistant")
		return assistant.RuleBasedGenerator{}
	}

	client, err := assistant.NewChatClient(assistant.Config{
		BaseURL: cfg.AssistantBaseURL,
		APIKey:  cfg.AssistantAPIKey,
		Model:   cfg.AssistantModel,
	}, logger)
	if err != nil {
		logger.Warn("assistant client unavailable, using rule-based assistant", "err", err)
		return assistant.RuleBasedGenerator{}
	}
	client.Fallback = assistant.RuleBasedGenerator{}
	return client
}
