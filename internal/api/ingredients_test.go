package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/mocks"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

func ingredientFixtures(t *testing.T) []planner.Ingredient {
	t.Helper()
	rice, err := planner.NewIngredient("1", "Brown Rice", planner.RoleBaseCarb, 5, 45, 2, 0.5, planner.Lunch, planner.Dinner)
	require.NoError(t, err)
	oats, err := planner.NewIngredient("2", "Rolled Oats", planner.RoleBaseCarb, 10, 54, 6, 0.4, planner.Breakfast)
	require.NoError(t, err)
	tofu, err := planner.NewIngredient("3", "Firm Tofu", planner.RoleBaseProtein, 24, 4, 12, 1.8, planner.Lunch, planner.Dinner)
	require.NoError(t, err)
	return []planner.Ingredient{rice, oats, tofu}
}

func TestListIngredients(t *testing.T) {
	src := new(mocks.MockCatalogSource)
	src.On("ListActive", mock.Anything).Return(ingredientFixtures(t), nil)
	r := gin.New()
	NewIngredientHandler(src).RegisterRoutes(r.Group("/api/v1"))

	tests := []struct {
		query string
		names []string
	}{
		{"", []string{"Brown Rice", "Rolled Oats", "Firm Tofu"}},
		{"?role=base_carb", []string{"Brown Rice", "Rolled Oats"}},
		{"?role=base_carb&mealType=breakfast", []string{"Rolled Oats"}},
		{"?q=TOFU", []string{"Firm Tofu"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doJSON(r, "GET", "/api/v1/ingredients"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Ingredients []planner.Ingredient `json:"ingredients"`
				Count       int                  `json:"count"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, len(tt.names), body.Count)
			var names []string
			for _, ing := range body.Ingredients {
				names = append(names, ing.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	assert.Equal(t, http.StatusBadRequest, doJSON(r, "GET", "/api/v1/ingredients?role=dessert", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, "GET", "/api/v1/ingredients?mealType=brunch", nil).Code)
}

func TestListIngredientsCatalogError(t *testing.T) {
	src := new(mocks.MockCatalogSource)
	src.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))
	r := gin.New()
	NewIngredientHandler(src).RegisterRoutes(r.Group("/api/v1"))

	assert.Equal(t, http.StatusInternalServerError, doJSON(r, "GET", "/api/v1/ingredients", nil).Code)
}

func TestHealth(t *testing.T) {
	r := gin.New()
	ok := func(context.Context) error { return nil }
	r.GET("/health", NewHealthHandler(map[string]Pinger{"database": ok, "redis": ok}).Health)
	w := doJSON(r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok","redis":"ok"}}`, w.Body.String())

	r = gin.New()
	down := func(context.Context) error { return errors.New("connection refused") }
	r.GET("/health", NewHealthHandler(map[string]Pinger{"database": ok, "redis": down}).Health)
	w = doJSON(r, "GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
