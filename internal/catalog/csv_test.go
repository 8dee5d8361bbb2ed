package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

const sampleCSV = `name,role,protein,carbs,fat,cuisine,diet_tags,allergens,meal_types,price_per_serving
Greek Yogurt,secondary_protein,17,6,0,mediterranean,"[""vegetarian""]",dairy,breakfast,1.2
Quinoa,base_carb,8,39,4,none,"[""vegan"",""vegetarian""]",none,"[""lunch"",""dinner""]",0.9
Mystery Leaf,,1,1,0,,,,,
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Greek Yogurt", rows[0].Name)
	assert.Equal(t, models.JSONBStringArray{"vegetarian"}, rows[0].DietTags)
	assert.Equal(t, models.JSONBStringArray{"dairy"}, rows[0].Allergens)
	assert.Equal(t, 1.2, rows[0].PricePerServing)

	assert.Empty(t, rows[1].Cuisines)
	assert.Empty(t, rows[1].Allergens)
	assert.Equal(t, models.JSONBStringArray{"lunch", "dinner"}, rows[1].MealTypes)

	again, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, rows[2].ID, again[2].ID, "ids derive from names")
}

func TestLoadCSV(t *testing.T) {
	ings, err := LoadCSV(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)
	require.Len(t, ings, 3)

	assert.Equal(t, []planner.MealType{planner.Breakfast}, ings[0].MealTypes)
	assert.Equal(t, planner.RoleOther, ings[2].Role)
	assert.Equal(t, planner.Slots, ings[2].MealTypes)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"empty", "", "header"},
		{"no name column", "role,protein\nbase_carb,1\n", "no name column"},
		{"bad number", "name,protein\nRice,lots\n", "line 2: column protein"},
		{"empty name", "name,protein\n,3\n", "empty name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
