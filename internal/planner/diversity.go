package planner

import (
	"sort"
	"strings"
)

// DiversityState tracks what a single plan-generation run has already used.
// It is created per run and passed explicitly; it is not safe for concurrent
// writes, but concurrent reads during one slot search are fine.
type DiversityState struct {
	signatures map[MealType]map[string]bool
	usage      map[string]int
	cuisines   map[string]int
}

func NewDiversityState() *DiversityState {
	return &DiversityState{
		signatures: make(map[MealType]map[string]bool),
		usage:      make(map[string]int),
		cuisines:   make(map[string]int),
	}
}

// Signature canonicalises a combination: lower-cased names, sorted, joined by "|".
func Signature(names []string) string {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = strings.ToLower(strings.TrimSpace(n))
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// RecordUsage registers a finalised slot meal.
func (d *DiversityState) RecordUsage(slot MealType, signature string, ingredientIDs []string, cuisine string) {
	seen, ok := d.signatures[slot]
	if !ok {
		seen = make(map[string]bool)
		d.signatures[slot] = seen
	}
	seen[signature] = true
	for _, id := range ingredientIDs {
		d.usage[id]++
	}
	if cuisine == "" {
		cuisine = Universal
	}
	d.cuisines[cuisine]++
}

func (d *DiversityState) HasSignature(slot MealType, signature string) bool {
	return d.signatures[slot][signature]
}

func (d *DiversityState) Usage(ingredientID string) int {
	return d.usage[ingredientID]
}

// UsageWeight is the sampling weight of an ingredient; fresher is heavier.
func (d *DiversityState) UsageWeight(ingredientID string) float64 {
	return 1 / float64(1+d.usage[ingredientID])
}

func (d *DiversityState) CuisineUse(cuisine string) int {
	return d.cuisines[cuisine]
}

// Count pairs a key with how often it was used.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func (d *DiversityState) TopIngredients(n int) []Count {
	return topCounts(d.usage, n)
}

func (d *DiversityState) TopCuisines(n int) []Count {
	return topCounts(d.cuisines, n)
}

func topCounts(m map[string]int, n int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
