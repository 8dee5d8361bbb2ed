package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/catalog"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

type IngredientHandler struct {
	catalog catalog.Source
}

func NewIngredientHandler(src catalog.Source) *IngredientHandler {
	return &IngredientHandler{catalog: src}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ingredients", h.ListIngredients)
}

// ListIngredients returns the active catalog, optionally narrowed by
// ?role=, ?mealType= and a ?q= name search.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	var role planner.Role
	if v := c.Query("role"); v != "" {
		r, ok := planner.ParseRole(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role", "field": "role"})
			return
		}
		role = r
	}
	var slot planner.MealType
	if v := c.Query("mealType"); v != "" {
		m, ok := planner.ParseMealType(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type", "field": "mealType"})
			return
		}
		slot = m
	}

	ings, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ingredients"})
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]planner.Ingredient, 0, len(ings))
	for _, ing := range ings {
		if role != "" && ing.Role != role {
			continue
		}
		if slot != "" && !ing.EligibleFor(slot) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(ing.Name), q) {
			continue
		}
		out = append(out, ing)
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": out, "count": len(out)})
}
