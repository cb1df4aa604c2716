package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"easiernav/boreholed/internal/api"
	"easiernav/boreholed/internal/config"
	"easiernav/boreholed/internal/db"
	"easiernav/boreholed/internal/logging"
	"easiernav/boreholed/internal/metrics"
	"easiernav/boreholed/internal/routes"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "boreholed",
		Short:        "Directional drilling borehole record service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Initialize the schema and serve HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the schema if it is missing and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), envFile)
		},
	})

	return root
}

// bootstrap loads configuration, starts logging and opens the store with
// the schema in place.
func bootstrap(ctx context.Context, envFile string) (config.Config, *db.Database, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, nil, err
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return cfg, nil, err
	}

	database, err := db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		logging.Error("Failed to connect to database", "driver", cfg.DBDriver, "error", err.Error())
		return cfg, nil, err
	}

	if err := database.Initialize(ctx, cfg.ExtendedSchema); err != nil {
		logging.Error("Failed to initialize schema", "error", err.Error())
		database.Close()
		return cfg, nil, err
	}

	return cfg, database, nil
}

func runMigrate(ctx context.Context, envFile string) error {
	_, database, err := bootstrap(ctx, envFile)
	if err != nil {
		return err
	}
	defer logging.Close()
	return database.Close()
}

func runServe(parent context.Context, envFile string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, database, err := bootstrap(ctx, envFile)
	if err != nil {
		return err
	}
	defer logging.Close()
	defer database.Close()

	upSince := time.Now()
	logging.Info("boreholed starting up",
		"environment", cfg.AppEnv,
		"driver", cfg.DBDriver,
		"extended_schema", cfg.ExtendedSchema,
		"timestamp", upSince.Format(time.RFC3339),
	)

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	deps := api.InitDependencies(database, metricsReg)
	router := routes.RegisterRoutes(deps, routes.Options{
		UpSince:        upSince,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		return err
	}
	logging.Info("Server stopped")
	return nil
}
