package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// DaysPerWeek is the length of a plan.
const DaysPerWeek = 7

// Targets are the daily macro goals in grams.
type Targets struct {
	P float64 `json:"P"`
	C float64 `json:"C"`
	F float64 `json:"F"`
}

func (t Targets) validate() error {
	fields := []struct {
		name  string
		value float64
	}{{"dailyP", t.P}, {"dailyC", t.C}, {"dailyF", t.F}}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return validationErrorf(f.name, "must be a positive number, got %v", f.value)
		}
	}
	return nil
}

// Options tune one plan-generation run. The zero value is usable.
type Options struct {
	Allergens    []string
	DietTags     []string
	Preset       string
	AllowRepeats bool
	Debug        bool
	// Seed fixes the randomness; nil draws a fresh seed which is recorded in the plan.
	Seed        *uint64
	Rules       Rules
	Pairings    []Pairing
	BannedPairs []BannedPair
	PriceWeight float64
	Workers     int
	Logger      *slog.Logger
}

// Inputs echo the request that produced a plan.
type Inputs struct {
	DailyP       float64  `json:"dailyP"`
	DailyC       float64  `json:"dailyC"`
	DailyF       float64  `json:"dailyF"`
	Allergens    []string `json:"allergens"`
	DietTags     []string `json:"dietTags"`
	Preset       string   `json:"preset"`
	AllowRepeats bool     `json:"allowRepeats"`
}

type WeeklyPlan struct {
	Inputs       Inputs      `json:"inputs"`
	Seed         uint64      `json:"seed"`
	Days         []MealDay   `json:"days"`
	WeeklyTotals Totals      `json:"weeklyTotals"`
	Debug        *DebugTrace `json:"debug,omitempty"`
}

// DebugSummary describes the run as a whole.
type DebugSummary struct {
	IngredientCount int              `json:"ingredient_count"`
	Preset          string           `json:"preset"`
	Seed            uint64           `json:"seed"`
	Restarts        int              `json:"restarts"`
	PoolSizes       map[MealType]int `json:"pool_sizes"`
}

type DebugTrace struct {
	Summary DebugSummary `json:"summary"`
	Days    []*DayTrace  `json:"days"`
}

// GenerateWeeklyPlan builds a seven day plan from an immutable catalog
// snapshot. Days are generated in order because each one depends on the
// diversity state left by the previous days.
func GenerateWeeklyPlan(ctx context.Context, catalog []Ingredient, targets Targets, opts Options) (*WeeklyPlan, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := targets.validate(); err != nil {
		return nil, err
	}
	preset, err := LookupPreset(opts.Preset)
	if err != nil {
		return nil, err
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	banned := opts.BannedPairs
	if banned == nil {
		banned = DefaultBannedPairs()
	}
	if countActive(catalog) == 0 {
		return nil, &EmptyCatalogError{Total: len(catalog)}
	}

	filter := FilterOptions{DietTags: normalizeTags(opts.DietTags), Allergens: normalizeTags(opts.Allergens)}
	if len(filter.DietTags) == 0 {
		filter.DietTags = []string{Omnivore}
	}
	pools := make(map[MealType][]Ingredient, len(Slots))
	for _, slot := range Slots {
		pools[slot] = FilterPool(catalog, slot, filter)
		if err := checkConstraints(catalog, pools[slot], slot, rules[slot]); err != nil {
			return nil, err
		}
	}

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}

	plan := &WeeklyPlan{
		Inputs: Inputs{
			DailyP:       targets.P,
			DailyC:       targets.C,
			DailyF:       targets.F,
			Allergens:    filter.Allergens,
			DietTags:     filter.DietTags,
			Preset:       preset.Name,
			AllowRepeats: opts.AllowRepeats,
		},
		Seed: seed,
		Days: make([]MealDay, 0, DaysPerWeek),
	}
	if opts.Debug {
		plan.Debug = &DebugTrace{
			Summary: DebugSummary{
				IngredientCount: len(catalog),
				Preset:          preset.Name,
				Seed:            seed,
				Restarts:        preset.Restarts,
				PoolSizes:       make(map[MealType]int, len(Slots)),
			},
		}
		for _, slot := range Slots {
			plan.Debug.Summary.PoolSizes[slot] = len(pools[slot])
		}
	}

	start := time.Now()
	state := NewDiversityState()
	for d := 1; d <= DaysPerWeek; d++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generating day %d: %w", d, err)
		}
		day, trace, err := AssembleDay(ctx, DayRequest{
			Day:          d,
			Daily:        targets,
			Rules:        rules,
			Pools:        pools,
			Preset:       preset,
			Seed:         seed,
			AllowRepeats: opts.AllowRepeats,
			BannedPairs:  banned,
			Pairings:     opts.Pairings,
			PriceWeight:  opts.PriceWeight,
			Workers:      opts.Workers,
			Debug:        opts.Debug,
		}, state)
		if err != nil {
			log.Debug("day generation failed", "day", d, "error", err)
			return nil, err
		}
		plan.Days = append(plan.Days, day)
		plan.WeeklyTotals = plan.WeeklyTotals.Add(day.Totals)
		if plan.Debug != nil {
			plan.Debug.Days = append(plan.Debug.Days, trace)
		}
		log.Debug("day generated", "day", d, "rel_err", day.Info.RelErr, "quality", day.Info.Quality)
	}

	log.Info("weekly plan generated",
		"preset", preset.Name,
		"seed", seed,
		"ingredients", len(catalog),
		"duration", time.Since(start))
	return plan, nil
}

// checkConstraints rejects option combinations that remove every candidate
// for a required role the catalog otherwise supplies for the slot.
func checkConstraints(catalog, pool []Ingredient, slot MealType, rule SlotCompositionRule) error {
	for _, role := range rule.requiredRoles() {
		need := rule.Required[role]
		if countRole(pool, role) >= need {
			continue
		}
		supplied := 0
		for _, ing := range catalog {
			if ing.Active && ing.Role == role && !ing.isPlaceholder() && ing.EligibleFor(slot) {
				supplied++
			}
		}
		if supplied >= need {
			return validationErrorf("constraints", "diet tags and allergens leave fewer than %d %s ingredients for %s", need, role, slot)
		}
	}
	return nil
}

func countRole(pool []Ingredient, role Role) int {
	n := 0
	for _, ing := range pool {
		if ing.Role == role {
			n++
		}
	}
	return n
}
