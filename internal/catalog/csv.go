package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// ReadCSV parses an ingredient export. The header row names the columns;
// only "name" is mandatory. List columns accept a JSON array or a single
// value, and "none" or an empty cell means no entries.
func ReadCSV(r io.Reader) ([]models.Ingredient, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, errors.New("csv has no name column")
	}

	var out []models.Ingredient
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		num := func(name string) (float64, error) {
			s := get(name)
			if s == "" {
				return 0, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("csv line %d: column %s: %w", line, name, err)
			}
			return f, nil
		}

		row := models.Ingredient{
			Name:      get("name"),
			Role:      get("role"),
			Category:  get("category"),
			Cuisines:  parseList(get("cuisine")),
			DietTags:  parseList(get("diet_tags")),
			Allergens: parseList(get("allergens")),
			MealTypes: parseList(get("meal_types")),
			Status:    strings.ToLower(get("status")),
		}
		if row.Name == "" {
			return nil, fmt.Errorf("csv line %d: empty name", line)
		}
		if row.Protein, err = num("protein"); err != nil {
			return nil, err
		}
		if row.Carbs, err = num("carbs"); err != nil {
			return nil, err
		}
		if row.Fat, err = num("fat"); err != nil {
			return nil, err
		}
		if row.Kcal, err = num("kcal"); err != nil {
			return nil, err
		}
		if row.PricePerServing, err = num("price_per_serving"); err != nil {
			return nil, err
		}
		if id, err := uuid.Parse(get("id")); err == nil {
			row.ID = id
		} else {
			row.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(row.Name)))
		}
		out = append(out, row)
	}
	return out, nil
}

// LoadCSV reads and validates a catalog file for the planner.
func LoadCSV(r io.Reader, log *slog.Logger) ([]planner.Ingredient, error) {
	rows, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	conv := NewConverter(log)
	out := make([]planner.Ingredient, 0, len(rows))
	for _, row := range rows {
		ing, err := conv.ToPlanner(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

func parseList(s string) models.JSONBStringArray {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return models.JSONBStringArray{}
	}
	if strings.HasPrefix(s, "[") {
		var v []string
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return models.JSONBStringArray(v)
		}
	}
	return models.JSONBStringArray{s}
}
