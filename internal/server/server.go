package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/api"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/catalog"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/export"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/router"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	catalog *catalog.CachedSource
	log     *slog.Logger
}

// New wires the catalog, plan service and handlers. exporter may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, exporter export.Exporter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	src := catalog.NewCachedSource(catalog.NewRepository(db, log), cfg.CatalogCacheTTL)
	store := service.NewRedisPlanStore(rdb, cfg.PlanCacheTTL)
	mealPlans := service.NewMealPlanService(src, store, db, service.Defaults{
		Preset:          cfg.PlannerDefaultPreset,
		Workers:         cfg.PlannerWorkers,
		Debug:           cfg.PlannerDebugDefault,
		PriceWeight:     cfg.PlannerPriceWeight,
		PairingMinScore: cfg.PairingMinScore,
	}, log)

	checks := map[string]api.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRequests > 0 {
		limiter = middleware.NewPlanGenerationRateLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow, log)
	}

	r := router.SetupRouter(router.Handlers{
		MealPlans:       api.NewMealPlanHandler(mealPlans, exporter),
		Ingredients:     api.NewIngredientHandler(src),
		Health:          api.NewHealthHandler(checks),
		GenerateLimiter: limiter,
	}, cfg.CORSAllowedOrigins, log)

	return &Server{
		router:  r,
		catalog: src,
		log:     log,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// InvalidateCatalog drops cached catalog snapshots.
func (s *Server) InvalidateCatalog() {
	s.catalog.Invalidate()
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
