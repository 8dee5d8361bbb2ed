package planweek

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateWithBuiltInCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	out, err := run(t, "generate", "--P", "150", "--C", "250", "--F", "60", "--preset", "fast", "--seed", "42", "--out", path)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Weekly plan (preset fast, seed 42)")
	assert.Equal(t, planner.DaysPerWeek, strings.Count(out, "\nDay "))
	assert.Contains(t, out, "breakfast:")
	assert.Contains(t, out, "Saved plan to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var plan planner.WeeklyPlan
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, uint64(42), plan.Seed)
	assert.Len(t, plan.Days, planner.DaysPerWeek)
	assert.Nil(t, plan.Debug)

	again, err := run(t, "generate", "--P", "150", "--C", "250", "--F", "60", "--preset", "fast", "--seed", "42")
	require.NoError(t, err)
	summary := strings.SplitN(out, "\nSaved", 2)[0]
	assert.Equal(t, strings.TrimRight(summary, "\n"), strings.TrimRight(again, "\n"))
}

func TestGenerateFromCSV(t *testing.T) {
	csv := `name,role,protein,carbs,fat,meal_types
Chicken,base_protein,40,0,5,"[""lunch"",""dinner""]"
Tofu,base_protein,24,4,12,"[""lunch"",""dinner""]"
Rice,base_carb,5,45,2,universal
Oats,base_carb,10,54,6,breakfast
Eggs,secondary_protein,19,1,15,breakfast
Yogurt,secondary_protein,17,6,0,breakfast
Broccoli,vegetable,3,7,0,universal
Carrot,vegetable,1,10,0,universal
Bell Pepper,vegetable,1,6,0,universal
Spinach,leafy_green,1,1,0,universal
Parsley,garnish,0,1,0,universal
Olive Oil,fat_source,0,0,14,universal
Vinaigrette,dressing_sauce,0,2,7,"[""lunch"",""dinner""]"
Tahini,dressing_sauce,3,3,8,"[""lunch"",""dinner""]"
Berries,topping,1,11,0,breakfast
Banana,topping,1,23,0,breakfast
`
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := run(t, "generate", "--csv", path, "--P", "120", "--C", "200", "--F", "50", "--preset", "fast", "--seed", "1", "--allow-repeats")
	require.NoError(t, err, out)
	assert.Equal(t, planner.DaysPerWeek, strings.Count(out, "\nDay "))
}

func TestGenerateErrors(t *testing.T) {
	_, err := run(t, "generate", "--P", "150", "--C", "250")
	assert.ErrorContains(t, err, `"F"`)

	_, err = run(t, "generate", "--P", "150", "--C", "250", "--F", "60", "--preset", "turbo")
	assert.ErrorContains(t, err, "preset")

	_, err = run(t, "generate", "--csv", filepath.Join(t.TempDir(), "missing.csv"), "--P", "1", "--C", "1", "--F", "1")
	assert.ErrorContains(t, err, "failed to open catalog")
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "balanced   180 restarts per slot (default)")
	assert.Contains(t, out, "deep")
}
