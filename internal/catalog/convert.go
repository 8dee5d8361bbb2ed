package catalog

import (
	"log/slog"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// kcalTolerance is how far a stored kcal may drift before it is reported.
const kcalTolerance = 0.5

// Converter maps catalog rows onto engine ingredients.
type Converter struct {
	validate *validator.Validate
	log      *slog.Logger
}

func NewConverter(log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{validate: newValidator(), log: log}
}

// ToPlanner validates a row and converts it. Stored kcal is replaced by the
// macro formula; a disagreement is logged.
func (c *Converter) ToPlanner(row models.Ingredient) (planner.Ingredient, error) {
	if strings.TrimSpace(row.Role) == "" {
		row.Role = string(planner.RoleOther)
	}
	if row.Status == "" {
		row.Status = models.StatusActive
	}
	row.MealTypes = lower(row.MealTypes)
	if err := c.validate.Struct(row); err != nil {
		return planner.Ingredient{}, validationError(row.Name, err)
	}

	role, _ := planner.ParseRole(row.Role)
	ing := planner.Ingredient{
		ID:        row.ID.String(),
		Name:      strings.TrimSpace(row.Name),
		Role:      role,
		Category:  row.Category,
		Protein:   row.Protein,
		Carbs:     row.Carbs,
		Fat:       row.Fat,
		Cuisines:  lower(row.Cuisines),
		DietTags:  lower(row.DietTags),
		Allergens: lower(row.Allergens),
		Price:     row.PricePerServing,
		MealTypes: mealTypes(row.MealTypes),
		Active:    row.Status == models.StatusActive,
	}
	if err := ing.Validate(); err != nil {
		return planner.Ingredient{}, err
	}
	if row.Kcal > 0 && math.Abs(ing.Kcal-row.Kcal) > kcalTolerance {
		c.log.Warn("stored kcal disagrees with macros",
			"ingredient", ing.Name,
			"stored", row.Kcal,
			"derived", ing.Kcal)
	}
	return ing, nil
}

// FromPlanner builds a row for persistence, deriving kcal from macros.
func FromPlanner(ing planner.Ingredient) models.Ingredient {
	id, err := uuid.Parse(ing.ID)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(ing.Name)))
	}
	status := models.StatusActive
	if !ing.Active {
		status = models.StatusInactive
	}
	meals := make(models.JSONBStringArray, len(ing.MealTypes))
	for i, m := range ing.MealTypes {
		meals[i] = string(m)
	}
	return models.Ingredient{
		ID:              id,
		Name:            ing.Name,
		Role:            string(ing.Role),
		Category:        ing.Category,
		Protein:         ing.Protein,
		Carbs:           ing.Carbs,
		Fat:             ing.Fat,
		Kcal:            planner.KcalFor(ing.Protein, ing.Carbs, ing.Fat),
		Cuisines:        models.JSONBStringArray(ing.Cuisines),
		DietTags:        models.JSONBStringArray(ing.DietTags),
		Allergens:       models.JSONBStringArray(ing.Allergens),
		MealTypes:       meals,
		PricePerServing: ing.Price,
		Status:          status,
	}
}

// mealTypes expands "universal" or an empty list to every slot.
func mealTypes(raw []string) []planner.MealType {
	var out []planner.MealType
	seen := make(map[planner.MealType]bool)
	for _, s := range raw {
		if strings.EqualFold(strings.TrimSpace(s), planner.Universal) {
			return append([]planner.MealType(nil), planner.Slots...)
		}
		if m, ok := planner.ParseMealType(s); ok && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return append([]planner.MealType(nil), planner.Slots...)
	}
	return out
}

func lower(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
