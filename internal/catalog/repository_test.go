package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/testhelpers"
)

func seededRepository(t *testing.T, db *gorm.DB) *Repository {
	t.Helper()
	repo := NewRepository(db, nil)
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, DefaultSeed()))
	for _, p := range DefaultPairings() {
		require.NoError(t, repo.AddPairing(ctx, p.A, p.B, p.Score))
	}
	return repo
}

func TestRepositoryListActive(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, testhelpers.SetupSQLite(t))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultSeed()), n)

	ings, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, ings, len(DefaultSeed()))
	for i := 1; i < len(ings); i++ {
		assert.Less(t, ings[i-1].Name, ings[i].Name)
	}
	for _, ing := range ings {
		assert.True(t, ing.Active)
		assert.InDelta(t, planner.KcalFor(ing.Protein, ing.Carbs, ing.Fat), ing.Kcal, 1e-9)
		assert.NotEmpty(t, ing.MealTypes)
	}
}

func TestRepositoryUpsertUpdatesByName(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, testhelpers.SetupSQLite(t))

	update := []models.Ingredient{{
		Name:      "Chicken Breast",
		Role:      string(planner.RoleBaseProtein),
		Protein:   42,
		Fat:       4,
		Kcal:      1, // rewritten from macros
		MealTypes: models.JSONBStringArray{"Lunch"},
	}, {
		Name:      "Kale",
		Role:      string(planner.RoleLeafyGreen),
		Protein:   2,
		Carbs:     4,
		Fat:       1,
		MealTypes: models.JSONBStringArray{"universal"},
		Status:    models.StatusInactive,
	}}
	require.NoError(t, repo.Upsert(ctx, update))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultSeed())-1, n)

	ings, err := repo.ListActive(ctx)
	require.NoError(t, err)
	var chicken *planner.Ingredient
	for i := range ings {
		assert.NotEqual(t, "Kale", ings[i].Name)
		if ings[i].Name == "Chicken Breast" {
			chicken = &ings[i]
		}
	}
	require.NotNil(t, chicken)
	assert.Equal(t, 42.0, chicken.Protein)
	assert.InDelta(t, 204, chicken.Kcal, 1e-9)
	assert.Equal(t, []planner.MealType{planner.Lunch}, chicken.MealTypes)
}

func TestRepositoryUpsertRejectsUnknownRole(t *testing.T) {
	repo := NewRepository(testhelpers.SetupSQLite(t), nil)
	err := repo.Upsert(context.Background(), []models.Ingredient{{Name: "Cake", Role: "dessert"}})

	var verr *planner.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "role", verr.Field)
}

func TestRepositoryListPairings(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, testhelpers.SetupSQLite(t))

	pairs, err := repo.ListPairings(ctx, 8)
	require.NoError(t, err)
	require.Len(t, pairs, 5)
	assert.Equal(t, planner.Pairing{A: "black beans", B: "avocado"}, pairs[0])

	all, err := repo.ListPairings(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultPairings()))

	err = repo.AddPairing(ctx, "Salmon Fillet", "Dill", 9)
	assert.ErrorContains(t, err, "not found")
}

func TestRepositoryPostgres(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, testhelpers.SetupTestDatabase(t))

	ings, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, ings, len(DefaultSeed()))

	pairs, err := repo.ListPairings(ctx, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, pairs)
}
