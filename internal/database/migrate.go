package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
)

const rollbackSuffix = "_rollback.sql"

// ErrNoMigrations is returned by RollbackLast when nothing has been applied.
var ErrNoMigrations = errors.New("no migrations to rollback")

// RunMigrations executes all SQL migration files in the migrations directory
// that have not been applied yet. SQLite databases are auto-migrated instead.
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("using GORM auto-migration for SQLite")
		return db.AutoMigrate(
			&models.Ingredient{},
			&models.IngredientPairing{},
			&models.MealPlan{},
		)
	}

	files, err := migrationFiles(migrationsDir)
	if err != nil {
		return err
	}
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	for _, name := range files {
		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			slog.Debug("skipping migration, already applied", "name", name)
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Info("applied migration", "name", name)
	}

	return nil
}

// RollbackLast undoes the most recently applied migration using its
// <name>_rollback.sql companion file.
func RollbackLast(db *gorm.DB, migrationsDir string) (string, error) {
	if err := ensureMigrationsTable(db); err != nil {
		return "", err
	}

	var last struct{ Name string }
	res := db.Table("migrations").Select("name").Order("applied_at DESC, id DESC").Limit(1).Scan(&last)
	if res.Error != nil {
		return "", fmt.Errorf("failed to get last migration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrNoMigrations
	}

	rollbackPath := filepath.Join(migrationsDir, strings.TrimSuffix(last.Name, ".sql")+rollbackSuffix)
	content, err := os.ReadFile(rollbackPath)
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		if err := tx.Exec("DELETE FROM migrations WHERE name = ?", last.Name).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return last.Name, nil
}

func ensureMigrationsTable(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// migrationFiles lists forward migrations in apply order.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
