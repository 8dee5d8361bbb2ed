package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/export"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/server"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/telemetry"
)

func main() {
	log := newLogger()
	slog.SetDefault(log)

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	shutdownTracing, err := telemetry.InitProvider(ctx, telemetry.Config{
		ServiceName:  "mealplan-api",
		Environment:  string(config.GetEnvironment()),
		OTLPEndpoint: cfg.OTelEndpoint,
		Enabled:      cfg.OTelEnabled,
		SampleRatio:  1,
	})
	if err != nil {
		log.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	sqlDB, err := database.New(cfg)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	db, err := database.NewGorm(sqlDB, cfg.PlannerDebugDefault)
	if err != nil {
		log.Error("failed to initialize gorm", "error", err)
		os.Exit(1)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	var exporter export.Exporter
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Error("failed to configure S3 exports", "error", err)
			os.Exit(1)
		}
		exporter = export.NewS3Exporter(s3cfg, cfg.ExportURLExpiry)
	} else {
		log.Warn("S3_BUCKET_NAME not set, plan exports disabled")
	}

	// Create and start server
	srv := server.New(cfg, db, rdb, exporter, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("received signal", "signal", sig.String())
	}

	log.Info("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Warn("failed to flush traces", "error", err)
	}
	log.Info("server stopped")
}

// newLogger emits JSON in production and readable text elsewhere.
func newLogger() *slog.Logger {
	if config.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
