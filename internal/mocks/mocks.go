package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/export"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// MockCatalogSource is a mock implementation of catalog.Source
type MockCatalogSource struct {
	mock.Mock
}

// ListActive mocks the ListActive method
func (m *MockCatalogSource) ListActive(ctx context.Context) ([]planner.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planner.Ingredient), args.Error(1)
}

// ListPairings mocks the ListPairings method
func (m *MockCatalogSource) ListPairings(ctx context.Context, minScore int) ([]planner.Pairing, error) {
	args := m.Called(ctx, minScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planner.Pairing), args.Error(1)
}

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockMealPlanService) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

// Get mocks the Get method
func (m *MockMealPlanService) Get(ctx context.Context, id string) (*planner.WeeklyPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.WeeklyPlan), args.Error(1)
}

// MockExporter is a mock implementation of export.Exporter
type MockExporter struct {
	mock.Mock
}

// Export mocks the Export method
func (m *MockExporter) Export(ctx context.Context, id string, plan *planner.WeeklyPlan) (*export.Result, error) {
	args := m.Called(ctx, id, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Result), args.Error(1)
}
