package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migration files")
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

	if *rollback {
		name, err := database.RollbackLast(db, *dir)
		if errors.Is(err, database.ErrNoMigrations) {
			slog.Info("nothing to roll back")
			return
		}
		if err != nil {
			slog.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("rolled back migration", "name", name)
		return
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations complete")
}
