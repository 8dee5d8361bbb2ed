package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/api"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	MealPlans   *api.MealPlanHandler
	Ingredients *api.IngredientHandler
	Health      *api.HealthHandler
	// GenerateLimiter guards plan generation. Nil disables rate limiting.
	GenerateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, corsOrigins []string, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		var limit []gin.HandlerFunc
		if h.GenerateLimiter != nil {
			limit = append(limit, h.GenerateLimiter.RateLimitMiddleware())
		}
		h.MealPlans.RegisterRoutes(v1, limit...)
		h.Ingredients.RegisterRoutes(v1)
	}

	return router
}
