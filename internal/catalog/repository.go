package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// Source is the read-only view of the catalog the planner needs.
type Source interface {
	ListActive(ctx context.Context) ([]planner.Ingredient, error)
	ListPairings(ctx context.Context, minScore int) ([]planner.Pairing, error)
}

// Repository reads and writes the ingredient catalog with gorm.
type Repository struct {
	db      *gorm.DB
	convert *Converter
	log     *slog.Logger
}

func NewRepository(db *gorm.DB, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{db: db, convert: NewConverter(log), log: log}
}

// ListActive returns a validated snapshot of every active ingredient, ordered
// by name so the planner sees a stable catalog order.
func (r *Repository) ListActive(ctx context.Context) ([]planner.Ingredient, error) {
	var rows []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	out := make([]planner.Ingredient, 0, len(rows))
	for _, row := range rows {
		ing, err := r.convert.ToPlanner(row)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog row %s: %w", row.ID, err)
		}
		out = append(out, ing)
	}
	r.log.Debug("catalog snapshot loaded", "ingredients", len(out))
	return out, nil
}

// ListPairings returns pairings scoring at least minScore, by ingredient name.
func (r *Repository) ListPairings(ctx context.Context, minScore int) ([]planner.Pairing, error) {
	type row struct {
		A string
		B string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("ingredient_pairings AS p").
		Select("a.name AS a, b.name AS b").
		Joins("JOIN ingredients a ON a.id = p.ingredient_a").
		Joins("JOIN ingredients b ON b.id = p.ingredient_b").
		Where("p.pairing_score >= ?", minScore).
		Order("a.name, b.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pairings: %w", err)
	}

	out := make([]planner.Pairing, 0, len(rows))
	for _, p := range rows {
		out = append(out, planner.Pairing{A: strings.ToLower(p.A), B: strings.ToLower(p.B)})
	}
	return out, nil
}

// Upsert inserts or updates ingredients by name. Kcal is always rewritten from
// the macros.
func (r *Repository) Upsert(ctx context.Context, rows []models.Ingredient) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		if rows[i].Status == "" {
			rows[i].Status = models.StatusActive
		}
		if strings.TrimSpace(rows[i].Role) == "" {
			rows[i].Role = string(planner.RoleOther)
		}
		rows[i].MealTypes = lower(rows[i].MealTypes)
		rows[i].Kcal = planner.KcalFor(rows[i].Protein, rows[i].Carbs, rows[i].Fat)
		if _, err := r.convert.ToPlanner(rows[i]); err != nil {
			return err
		}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"role", "category", "protein", "carbs", "fat", "kcal", "cuisine",
			"diet_tags", "allergens", "meal_types", "price_per_serving", "status", "updated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ingredients: %w", err)
	}
	return nil
}

// AddPairing records a pairing between two ingredients identified by name.
func (r *Repository) AddPairing(ctx context.Context, a, b string, score int) error {
	var ids []models.Ingredient
	if err := r.db.WithContext(ctx).Where("name IN ?", []string{a, b}).Find(&ids).Error; err != nil {
		return fmt.Errorf("failed to look up pairing ingredients: %w", err)
	}
	byName := make(map[string]uuid.UUID, len(ids))
	for _, ing := range ids {
		byName[ing.Name] = ing.ID
	}
	idA, okA := byName[a]
	idB, okB := byName[b]
	if !okA || !okB {
		return fmt.Errorf("pairing %s+%s: ingredient not found", a, b)
	}
	p := models.IngredientPairing{ID: uuid.New(), IngredientA: idA, IngredientB: idB, Score: score}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return fmt.Errorf("failed to create pairing: %w", err)
	}
	return nil
}

// Count returns the number of active ingredients.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("status = ?", models.StatusActive).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return n, nil
}
