package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

const cacheSize = 16

// CachedSource keeps recent catalog snapshots in memory for ttl. Snapshots are
// shared between requests and must not be modified by callers.
type CachedSource struct {
	next        Source
	ingredients *expirable.LRU[string, []planner.Ingredient]
	pairings    *expirable.LRU[int, []planner.Pairing]
}

func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:        next,
		ingredients: expirable.NewLRU[string, []planner.Ingredient](cacheSize, nil, ttl),
		pairings:    expirable.NewLRU[int, []planner.Pairing](cacheSize, nil, ttl),
	}
}

const activeKey = "active"

func (c *CachedSource) ListActive(ctx context.Context) ([]planner.Ingredient, error) {
	if v, ok := c.ingredients.Get(activeKey); ok {
		return v, nil
	}
	v, err := c.next.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	c.ingredients.Add(activeKey, v)
	return v, nil
}

func (c *CachedSource) ListPairings(ctx context.Context, minScore int) ([]planner.Pairing, error) {
	if v, ok := c.pairings.Get(minScore); ok {
		return v, nil
	}
	v, err := c.next.ListPairings(ctx, minScore)
	if err != nil {
		return nil, fmt.Errorf("loading pairings: %w", err)
	}
	c.pairings.Add(minScore, v)
	return v, nil
}

// Invalidate drops every cached snapshot, e.g. after a catalog write.
func (c *CachedSource) Invalidate() {
	c.ingredients.Purge()
	c.pairings.Purge()
}
