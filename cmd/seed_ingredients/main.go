package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/catalog"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
)

func main() {
	csvPath := flag.String("csv", "", "Import ingredients from a CSV file instead of the built-in catalog")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	sqlDB, err := database.New(cfg)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	db, err := database.NewGorm(sqlDB, false)
	if err != nil {
		slog.Error("failed to initialize gorm", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := catalog.NewRepository(db, slog.Default())

	rows := catalog.DefaultSeed()
	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			slog.Error("failed to open CSV", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		rows, err = catalog.ReadCSV(f)
		f.Close()
		if err != nil {
			slog.Error("failed to parse CSV", "path", *csvPath, "error", err)
			os.Exit(1)
		}
	}

	if err := repo.Upsert(ctx, rows); err != nil {
		slog.Error("failed to seed ingredients", "error", err)
		os.Exit(1)
	}
	slog.Info("seeded ingredients", "count", len(rows))

	if *csvPath != "" {
		return
	}
	existing, err := repo.ListPairings(ctx, 0)
	if err != nil {
		slog.Error("failed to list pairings", "error", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		slog.Info("pairings already present, skipping", "count", len(existing))
		return
	}
	for _, p := range catalog.DefaultPairings() {
		if err := repo.AddPairing(ctx, p.A, p.B, p.Score); err != nil {
			slog.Warn("skipping pairing", "a", p.A, "b", p.B, "error", err)
		}
	}
	slog.Info("seeded pairings", "count", len(catalog.DefaultPairings()))
}
