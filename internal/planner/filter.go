package planner

import "strings"

// Omnivore is the default diet tag; requesting it disables diet filtering.
const Omnivore = "omnivore"

// FilterOptions are the per-request constraints applied to the catalog.
type FilterOptions struct {
	DietTags  []string
	Allergens []string
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// FilterPool returns the active ingredients eligible for slot under the
// constraints, in catalog order. The result is empty when nothing qualifies.
func FilterPool(catalog []Ingredient, slot MealType, opts FilterOptions) []Ingredient {
	allergens := normalizeTags(opts.Allergens)
	diets := normalizeTags(opts.DietTags)
	if len(diets) == 0 {
		diets = []string{Omnivore}
	}
	anyDiet := hasTag(diets, Omnivore)

	var pool []Ingredient
	for _, ing := range catalog {
		if !ing.Active || ing.isPlaceholder() || !ing.EligibleFor(slot) {
			continue
		}
		if containsAny(ing.Allergens, allergens) {
			continue
		}
		if !anyDiet && len(ing.DietTags) > 0 && !containsAny(ing.DietTags, diets) {
			continue
		}
		pool = append(pool, ing)
	}
	return pool
}

func containsAny(tags, wanted []string) bool {
	for _, w := range wanted {
		if hasTag(tags, w) {
			return true
		}
	}
	return false
}

func countActive(catalog []Ingredient) int {
	n := 0
	for _, ing := range catalog {
		if ing.Active {
			n++
		}
	}
	return n
}
