package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// respondPlannerError maps planner failures onto HTTP statuses: bad input is
// 400, a catalog that cannot satisfy the rules is 422, anything else
// (including an unreadable catalog) is 500.
func respondPlannerError(c *gin.Context, err error) {
	var verr *planner.ValidationError
	var infeasible *planner.InfeasibleSlotError
	switch {
	case errors.Is(err, service.ErrCatalogUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrCatalogUnavailable.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, planner.ErrEmptyCatalog):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &infeasible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  infeasible.Error(),
			"day":    infeasible.Day,
			"slot":   infeasible.Slot,
			"role":   infeasible.Role,
			"reason": infeasible.Reason,
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate meal plan"})
	}
}
