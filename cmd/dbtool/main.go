package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fish-logistics-service/internal/adapters/cache"
	"fish-logistics-service/internal/adapters/repositories"
	"fish-logistics-service/internal/api/dto"
	"fish-logistics-service/internal/config"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/db"
	"fish-logistics-service/internal/platform/logging"
	"fish-logistics-service/internal/services"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func main() {
	config.LoadDotEnv()

	if err := rootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	driver   string
	dsn      string
	logLevel string
}

func rootCmd(cfg config.Config) *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the fish logistics catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.driver, "driver", cfg.DBDriver, "Database driver (sqlite, postgres)")
	cmd.PersistentFlags().StringVar(&g.dsn, "dsn", cfg.DSN(), "SQLite file path or PostgreSQL URL")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(initCmd(g), seedCmd(g, cfg), optimizeCmd(g, cfg))
	return cmd
}

func (g *globalFlags) open() (*sql.DB, repositories.Dialect, *slog.Logger, error) {
	logger := logging.New(logging.Config{Level: g.logLevel, ServiceName: "dbtool", Output: os.Stderr})
	slog.SetDefault(logger)

	dialect, err := repositories.ParseDialect(g.driver)
	if err != nil {
		return nil, "", nil, err
	}
	conn, err := db.Open(g.driver, g.dsn)
	if err != nil {
		return nil, "", nil, err
	}
	return conn, dialect, logger, nil
}

func initCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, logger, err := g.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			logger.Info("initializing database schema", "driver", g.driver)
			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			logger.Info("schema ready")
			return nil
		},
	}
}

func seedCmd(g *globalFlags, cfg config.Config) *cobra.Command {
	var (
		file     string
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and upsert catalog data from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, logger, err := g.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx := cmd.Context()
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			logger.Info("seeding database", "file", file)
			if err := repositories.SeedFromJSON(ctx, conn, dialect, file); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			logger.Info("seeding complete")

			if redisURL != "" {
				invalidateCache(ctx, redisURL, logger)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", cfg.SeedPath, "Catalog seed JSON file")
	cmd.Flags().StringVar(&redisURL, "redis-url", cfg.RedisURL, "Drop the cached catalog snapshot after seeding")
	return cmd
}

// invalidateCache is best effort: a stale entry expires on its own TTL.
func invalidateCache(ctx context.Context, url string, logger *slog.Logger) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis url, cache not invalidated", "err", err)
		return
	}
	client := redis.NewClient(opt)
	defer client.Close()

	c := cache.NewRedisCatalogCache(client, nil, 0, logger)
	if err := c.Invalidate(ctx); err != nil {
		logger.Warn("catalog cache not invalidated", "err", err)
		return
	}
	logger.Info("catalog cache invalidated")
}

func optimizeCmd(g *globalFlags, cfg config.Config) *cobra.Command {
	var (
		requestPath string
		pretty      bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run the route optimizer against the catalog and print the ranked routes as JSON",
		Long: `Reads an optimize request (same JSON body as POST /optimize), loads the
catalog from the configured database and prints the ranked routes.

An empty result is printed with status "no_viable_routes" and is not an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(requestPath)
			if err != nil {
				return err
			}

			conn, dialect, logger, err := g.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			opts, err := cfg.OptimizerOptions(logger, nil)
			if err != nil {
				return err
			}

			repo := repositories.NewSQLCatalogRepository(conn, dialect, logger)
			res, err := services.PlanShipments(cmd.Context(), req.ToService(), repo, opts)
			if err != nil {
				return err
			}
			if res.Status == domain.StatusNoViableRoutes {
				logger.Info("no viable routes", "evaluated", res.Evaluated)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(dto.NewOptimizeResponse(res))
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "Optimize request JSON file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

func readRequest(path string) (dto.OptimizeRequest, error) {
	var req dto.OptimizeRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read request %q: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("parse request %q: %w", path, err)
	}
	return req, nil
}
