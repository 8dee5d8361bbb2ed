package service

import (
	"context"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// IMealPlanService defines the meal plan operations used by the HTTP layer.
type IMealPlanService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Get(ctx context.Context, id string) (*planner.WeeklyPlan, error)
}

// PlanStore keeps generated plans for later retrieval.
type PlanStore interface {
	Save(ctx context.Context, id string, plan *planner.WeeklyPlan) error
	Load(ctx context.Context, id string) (*planner.WeeklyPlan, error)
}
