package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/metrics"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// ErrPlanNotFound is returned when no plan exists under an id.
var ErrPlanNotFound = errors.New("meal plan not found")

// ErrCatalogUnavailable is returned when the active catalog cannot be loaded.
// The cause is flattened into the message so a bad stored row never reads as
// a request validation failure.
var ErrCatalogUnavailable = errors.New("ingredient catalog unavailable")

const planKeyPrefix = "mealplan:plan:"

// RedisPlanStore caches plans in Redis as JSON.
type RedisPlanStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisPlanStore(client *redis.Client, ttl time.Duration) *RedisPlanStore {
	return &RedisPlanStore{redis: client, ttl: ttl}
}

func planKey(id string) string {
	return planKeyPrefix + id
}

// Save stores a plan for the configured TTL.
func (s *RedisPlanStore) Save(ctx context.Context, id string, plan *planner.WeeklyPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := s.redis.Set(ctx, planKey(id), data, s.ttl).Err(); err != nil {
		metrics.RecordStoreError("save")
		return fmt.Errorf("failed to save plan to Redis: %w", err)
	}
	return nil
}

// Load returns ErrPlanNotFound when the key is missing or expired.
func (s *RedisPlanStore) Load(ctx context.Context, id string) (*planner.WeeklyPlan, error) {
	data, err := s.redis.Get(ctx, planKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		metrics.RecordStoreError("load")
		return nil, fmt.Errorf("failed to get plan from Redis: %w", err)
	}

	var plan planner.WeeklyPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}
