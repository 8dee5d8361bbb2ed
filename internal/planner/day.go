package planner

import "context"

// Meals holds the three slot meals of a day.
type Meals struct {
	Breakfast SlotMeal `json:"breakfast"`
	Lunch     SlotMeal `json:"lunch"`
	Dinner    SlotMeal `json:"dinner"`
}

// Get returns the meal for slot.
func (m *Meals) Get(slot MealType) *SlotMeal {
	switch slot {
	case Breakfast:
		return &m.Breakfast
	case Lunch:
		return &m.Lunch
	default:
		return &m.Dinner
	}
}

// Totals are summed macros plus price.
type Totals struct {
	Macros
	Price float64 `json:"price"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{Macros: t.Macros.Add(o.Macros), Price: t.Price + o.Price}
}

// DayInfo reports how well a day fits the daily targets.
type DayInfo struct {
	RelErr  float64 `json:"rel_err"`
	Quality float64 `json:"quality"`
}

type MealDay struct {
	Day    int     `json:"day"`
	Meals  Meals   `json:"meals"`
	Totals Totals  `json:"totals"`
	Info   DayInfo `json:"info"`
}

// DayRequest carries the per-day inputs. Pools are pre-filtered per slot.
type DayRequest struct {
	Day          int
	Daily        Targets
	Rules        Rules
	Pools        map[MealType][]Ingredient
	Preset       Preset
	Seed         uint64
	AllowRepeats bool
	BannedPairs  []BannedPair
	Pairings     []Pairing
	PriceWeight  float64
	Workers      int
	Debug        bool
}

// DayTrace is the per-day debug entry.
type DayTrace struct {
	Day       int                     `json:"day"`
	PerSlot   map[MealType]*SlotTrace `json:"perSlot"`
	Selection map[MealType][]string   `json:"selection"`
	Trackers  TrackerSnapshot         `json:"trackers"`
}

// TrackerSnapshot shows the most used ingredients and cuisines so far.
type TrackerSnapshot struct {
	TopIngredients []Count `json:"top_ingredients"`
	TopCuisines    []Count `json:"top_cuisines"`
}

const trackerTop = 10

// AssembleDay composes breakfast, lunch and dinner in order. Slot errors are
// returned unchanged.
func AssembleDay(ctx context.Context, req DayRequest, state *DiversityState) (MealDay, *DayTrace, error) {
	day := MealDay{Day: req.Day}
	var trace *DayTrace
	if req.Debug {
		trace = &DayTrace{
			Day:       req.Day,
			PerSlot:   make(map[MealType]*SlotTrace, len(Slots)),
			Selection: make(map[MealType][]string, len(Slots)),
		}
	}

	for _, slot := range Slots {
		meal, st, err := ComposeSlot(ctx, SlotRequest{
			Day:          req.Day,
			Slot:         slot,
			Rule:         req.Rules[slot],
			Pool:         req.Pools[slot],
			Daily:        req.Daily,
			Restarts:     req.Preset.Restarts,
			Seed:         req.Seed,
			AllowRepeats: req.AllowRepeats,
			BannedPairs:  req.BannedPairs,
			Pairings:     req.Pairings,
			PriceWeight:  req.PriceWeight,
			Workers:      req.Workers,
			Debug:        req.Debug,
		}, state)
		if err != nil {
			return MealDay{}, trace, err
		}
		*day.Meals.Get(slot) = meal
		day.Totals = day.Totals.Add(Totals{Macros: meal.Macros, Price: meal.Price})
		if trace != nil {
			trace.PerSlot[slot] = st
			trace.Selection[slot] = meal.Names
		}
	}

	day.Info.RelErr = RelativeError(day.Totals.Macros, MacrosOf(req.Daily.P, req.Daily.C, req.Daily.F))
	day.Info.Quality = Quality(day.Info.RelErr)
	if trace != nil {
		trace.Trackers = TrackerSnapshot{
			TopIngredients: state.TopIngredients(trackerTop),
			TopCuisines:    state.TopCuisines(trackerTop),
		}
	}
	return day, trace, nil
}
