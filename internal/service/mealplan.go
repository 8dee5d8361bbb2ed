package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/catalog"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/metrics"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

const tracerName = "github.com/pageza/alchemorsel-mealplan/backend/internal/service"

// Defaults are the planner settings applied when a request leaves them out.
type Defaults struct {
	Preset          string
	Workers         int
	Debug           bool
	PriceWeight     float64
	PairingMinScore int
}

// GenerateRequest is one weekly plan request.
type GenerateRequest struct {
	DailyP       float64
	DailyC       float64
	DailyF       float64
	Allergens    []string
	DietTags     []string
	Preset       string
	AllowRepeats bool
	Debug        *bool
	Seed         *uint64
	Save         bool
}

// GenerateResult pairs a plan with the id it can be fetched under.
type GenerateResult struct {
	ID   string              `json:"id"`
	Plan *planner.WeeklyPlan `json:"plan"`
}

// MealPlanService runs the planner against the live catalog.
type MealPlanService struct {
	catalog  catalog.Source
	store    PlanStore
	db       *gorm.DB
	defaults Defaults
	log      *slog.Logger
	tracer   trace.Tracer
}

// NewMealPlanService creates a service. db may be nil, in which case plans
// are only kept in the plan store.
func NewMealPlanService(src catalog.Source, store PlanStore, db *gorm.DB, defaults Defaults, log *slog.Logger) *MealPlanService {
	if log == nil {
		log = slog.Default()
	}
	return &MealPlanService{
		catalog:  src,
		store:    store,
		db:       db,
		defaults: defaults,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

// Generate builds a weekly plan, stores it and optionally persists it.
func (s *MealPlanService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	preset := req.Preset
	if preset == "" {
		preset = s.defaults.Preset
	}
	debug := s.defaults.Debug
	if req.Debug != nil {
		debug = *req.Debug
	}

	ctx, span := s.tracer.Start(ctx, "mealplan.generate", trace.WithAttributes(
		attribute.String("mealplan.preset", preset),
		attribute.Bool("mealplan.allow_repeats", req.AllowRepeats),
		attribute.StringSlice("mealplan.diet_tags", req.DietTags),
	))
	defer span.End()

	start := time.Now()
	plan, err := s.generate(ctx, req, preset, debug)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordPlan(preset, "error", elapsed)
		var infeasible *planner.InfeasibleSlotError
		if errors.As(err, &infeasible) {
			metrics.RecordInfeasible(string(infeasible.Slot), reasonLabel(infeasible))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	metrics.RecordPlan(preset, "ok", elapsed)
	for _, d := range plan.Days {
		metrics.RecordDay(d.Info.RelErr)
	}
	span.SetAttributes(attribute.String("mealplan.seed", strconv.FormatUint(plan.Seed, 10)))

	id := uuid.New().String()
	if err := s.store.Save(ctx, id, plan); err != nil {
		return nil, err
	}
	if req.Save {
		if err := s.persist(ctx, id, plan); err != nil {
			return nil, err
		}
	}
	span.SetAttributes(attribute.String("mealplan.id", id))
	s.log.InfoContext(ctx, "meal plan generated",
		"id", id,
		"preset", preset,
		"seed", plan.Seed,
		"saved", req.Save,
		"duration_ms", int64(elapsed*1000))
	return &GenerateResult{ID: id, Plan: plan}, nil
}

func (s *MealPlanService) generate(ctx context.Context, req GenerateRequest, preset string, debug bool) (*planner.WeeklyPlan, error) {
	ings, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	pairings, err := s.catalog.ListPairings(ctx, s.defaults.PairingMinScore)
	if err != nil {
		// The pairing bonus only refines scoring; plan without it.
		s.log.WarnContext(ctx, "pairings unavailable", "error", err)
		pairings = nil
	}

	return planner.GenerateWeeklyPlan(ctx, ings, planner.Targets{P: req.DailyP, C: req.DailyC, F: req.DailyF}, planner.Options{
		Allergens:    req.Allergens,
		DietTags:     req.DietTags,
		Preset:       preset,
		AllowRepeats: req.AllowRepeats,
		Debug:        debug,
		Seed:         req.Seed,
		Pairings:     pairings,
		PriceWeight:  s.defaults.PriceWeight,
		Workers:      s.defaults.Workers,
		Logger:       s.log,
	})
}

func (s *MealPlanService) persist(ctx context.Context, id string, plan *planner.WeeklyPlan) error {
	if s.db == nil {
		return errors.New("plan persistence is not configured")
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	row := models.MealPlan{
		ID:      uuid.MustParse(id),
		Preset:  plan.Inputs.Preset,
		DailyP:  plan.Inputs.DailyP,
		DailyC:  plan.Inputs.DailyC,
		DailyF:  plan.Inputs.DailyF,
		Seed:    strconv.FormatUint(plan.Seed, 10),
		Payload: models.JSONBDocument(payload),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

// Get returns a plan from the plan store, falling back to saved plans.
func (s *MealPlanService) Get(ctx context.Context, id string) (*planner.WeeklyPlan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPlanNotFound
	}
	plan, err := s.store.Load(ctx, id)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, ErrPlanNotFound) {
		s.log.WarnContext(ctx, "plan store unavailable", "id", id, "error", err)
	}
	if s.db == nil {
		return nil, err
	}

	var row models.MealPlan
	if dbErr := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; dbErr != nil {
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load meal plan: %w", dbErr)
	}
	var saved planner.WeeklyPlan
	if err := json.Unmarshal(row.Payload, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan: %w", err)
	}
	if err := s.store.Save(ctx, id, &saved); err != nil {
		s.log.WarnContext(ctx, "failed to re-cache plan", "id", id, "error", err)
	}
	return &saved, nil
}

// reasonLabel keeps the metric label set small.
func reasonLabel(e *planner.InfeasibleSlotError) string {
	switch {
	case e.Role != "":
		return "role_shortage"
	case strings.HasPrefix(e.Reason, "total_range"):
		return "total_range"
	default:
		return e.Reason
	}
}
