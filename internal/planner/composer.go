package planner

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	affinityBoost = 3.0
	previewSize   = 5

	// A winner above this relative error is re-ranked without fatigue
	// penalties.
	rescueRelErr = 0.3
)

// SlotRequest is everything the composer needs for one day/slot.
type SlotRequest struct {
	Day          int
	Slot         MealType
	Rule         SlotCompositionRule
	Pool         []Ingredient
	Daily        Targets
	Restarts     int
	Seed         uint64
	AllowRepeats bool
	BannedPairs  []BannedPair
	Pairings     []Pairing
	PriceWeight  float64
	Workers      int
	Debug        bool
}

// CandidatePreview is a debug summary of one scored candidate.
type CandidatePreview struct {
	Restart int        `json:"restart"`
	Names   []string   `json:"names"`
	Macros  Macros     `json:"macros"`
	Score   ScoreParts `json:"score"`
}

// SlotTrace records how a slot was searched. It is only built in debug mode.
type SlotTrace struct {
	Slot       MealType           `json:"slot"`
	PoolSize   int                `json:"pool_size"`
	Target     Macros             `json:"target"`
	Restarts   int                `json:"restarts"`
	Kept       int                `json:"kept"`
	Repeats    int                `json:"repeats"`
	Banned     int                `json:"banned"`
	Rescued    bool               `json:"rescued"`
	Best       ScoreParts         `json:"best"`
	TopPreview []CandidatePreview `json:"top_preview"`
}

type candidateStatus int

const (
	candidateOK candidateStatus = iota
	candidateBanned
	candidateRepeat
)

type candidate struct {
	restart int
	picks   []int
	macros  Macros
	price   float64
	cuisine string
	parts   ScoreParts
	status  candidateStatus
}

// composer holds the per-slot search state shared read-only by all restarts.
type composer struct {
	req        SlotRequest
	state      *DiversityState
	byRole     map[Role][]int
	attainable int
	poolAnchor string
	scorer     scorer
}

// ComposeSlot runs a best-of-N stochastic search for one slot and records the
// winner in state. The trace is nil unless req.Debug is set.
func ComposeSlot(ctx context.Context, req SlotRequest, state *DiversityState) (SlotMeal, *SlotTrace, error) {
	c, err := newComposer(req, state)
	if err != nil {
		return SlotMeal{}, nil, err
	}

	restarts := max(req.Restarts, 1)
	if c.singleCandidate() {
		restarts = 1
	}
	results, err := c.search(ctx, restarts)
	if err != nil {
		return SlotMeal{}, nil, err
	}

	best := -1
	for i := range results {
		if results[i].status != candidateOK {
			continue
		}
		if best < 0 || c.better(&results[i], &results[best]) {
			best = i
		}
	}
	if best < 0 {
		return SlotMeal{}, c.trace(results, restarts, nil), &InfeasibleSlotError{
			Day:    req.Day,
			Slot:   req.Slot,
			Reason: "exhausted",
		}
	}

	rescued := false
	if alt := c.rescue(results, best); alt != best {
		best, rescued = alt, true
	}

	win := &results[best]
	meal := RecomputeSlotMeal(c.ingredients(win.picks))
	state.RecordUsage(req.Slot, meal.Signature(), meal.IDs, meal.Cuisines[0])
	trace := c.trace(results, restarts, win)
	if trace != nil {
		trace.Rescued = rescued
	}
	return meal, trace, nil
}

// rescue re-ranks the kept candidates without usage and cuisine fatigue when
// the winner misses its macro target badly. The alternative is only taken if
// it is closer to the target.
func (c *composer) rescue(results []candidate, best int) int {
	if results[best].parts.RelErr <= rescueRelErr {
		return best
	}
	alt := -1
	for i := range results {
		if results[i].status != candidateOK {
			continue
		}
		if alt < 0 || c.betterRelaxed(&results[i], &results[alt]) {
			alt = i
		}
	}
	if alt < 0 || results[alt].parts.RelErr >= results[best].parts.RelErr {
		return best
	}
	return alt
}

func newComposer(req SlotRequest, state *DiversityState) (*composer, error) {
	c := &composer{
		req:    req,
		state:  state,
		byRole: make(map[Role][]int),
	}
	for i, ing := range req.Pool {
		c.byRole[ing.Role] = append(c.byRole[ing.Role], i)
	}

	for _, role := range req.Rule.requiredRoles() {
		need, have := req.Rule.Required[role], len(c.byRole[role])
		if have < need {
			return nil, &InfeasibleSlotError{
				Day:    req.Day,
				Slot:   req.Slot,
				Role:   role,
				Reason: fmt.Sprintf("need %d eligible, have %d", need, have),
			}
		}
	}
	for _, role := range AllRoles {
		c.attainable += min(req.Rule.Capacity(role), len(c.byRole[role]))
	}
	if c.attainable < req.Rule.TotalMin {
		return nil, &InfeasibleSlotError{
			Day:    req.Day,
			Slot:   req.Slot,
			Reason: fmt.Sprintf("total_range: at most %d ingredients attainable, need %d", c.attainable, req.Rule.TotalMin),
		}
	}

	c.poolAnchor = majorityCuisine(req.Pool)
	maxPrice := 0.0
	for _, ing := range req.Pool {
		maxPrice = math.Max(maxPrice, ing.Price)
	}
	c.scorer = scorer{
		rule:        req.Rule,
		target:      req.Rule.Target(req.Daily),
		state:       state,
		pairings:    req.Pairings,
		priceWeight: req.PriceWeight,
		priceRef:    maxPrice * float64(req.Rule.TotalMax),
	}
	return c, nil
}

// singleCandidate reports whether every sample must take the whole pool.
func (c *composer) singleCandidate() bool {
	return c.attainable == len(c.req.Pool) && c.req.Rule.TotalMin >= c.attainable
}

func (c *composer) search(ctx context.Context, restarts int) ([]candidate, error) {
	results := make([]candidate, restarts)
	workers := c.req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < restarts; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.run(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("day %d %s search: %w", c.req.Day, c.req.Slot, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("day %d %s search: %w", c.req.Day, c.req.Slot, err)
	}
	return results, nil
}

// run samples and scores the candidate of restart i. Its randomness depends
// only on the run seed, day, slot and i.
func (c *composer) run(i int) candidate {
	s1, s2 := restartSeed(c.req.Seed, c.req.Day, c.req.Slot, i)
	rng := rand.New(rand.NewPCG(s1, s2))

	picks := c.sample(rng)
	ings := c.ingredients(picks)
	meal := RecomputeSlotMeal(ings)
	cand := candidate{
		restart: i,
		picks:   picks,
		macros:  meal.Macros,
		price:   meal.Price,
		cuisine: meal.Cuisines[0],
	}
	if isBanned(ings, c.req.BannedPairs) {
		cand.status = candidateBanned
		return cand
	}
	if !c.req.AllowRepeats && c.state.HasSignature(c.req.Slot, meal.Signature()) {
		cand.status = candidateRepeat
		cand.parts.Cost = math.Inf(1)
		return cand
	}
	cand.parts = c.scorer.score(ings, cand.macros, cand.price, cand.cuisine)
	return cand
}

func (c *composer) sample(rng *rand.Rand) []int {
	rule := c.req.Rule
	lo, hi := rule.TotalMin, min(rule.TotalMax, c.attainable)
	size := lo + rng.IntN(hi-lo+1)

	picks := make([]int, 0, hi)
	used := make(map[int]bool, hi)
	counts := make(map[Role]int)
	draw := func(role Role, k int, weight func(int) float64) {
		for ; k > 0; k-- {
			var open []int
			for _, idx := range c.byRole[role] {
				if !used[idx] {
					open = append(open, idx)
				}
			}
			if len(open) == 0 {
				return
			}
			idx := weightedPick(rng, open, weight)
			used[idx] = true
			picks = append(picks, idx)
			counts[role]++
		}
	}

	usageOnly := func(idx int) float64 { return c.state.UsageWeight(c.req.Pool[idx].ID) }
	for _, role := range rule.requiredRoles() {
		draw(role, rule.Required[role], usageOnly)
	}

	anchor := c.poolAnchor
	if len(picks) > 0 {
		anchor = majorityCuisine(c.ingredients(picks))
	}
	affine := func(idx int) float64 {
		ing := c.req.Pool[idx]
		w := c.state.UsageWeight(ing.ID)
		if len(ing.Cuisines) == 0 || hasTag(ing.Cuisines, anchor) || hasTag(ing.Cuisines, Universal) {
			w *= affinityBoost
		}
		return w
	}

	for _, role := range AllRoles {
		limit := min(rule.Capacity(role)-counts[role], size-len(picks), len(c.byRole[role])-counts[role])
		if limit <= 0 {
			continue
		}
		draw(role, rng.IntN(limit+1), affine)
	}

	for len(picks) < size {
		var open []int
		for _, role := range AllRoles {
			if counts[role] >= rule.Capacity(role) {
				continue
			}
			for _, idx := range c.byRole[role] {
				if !used[idx] {
					open = append(open, idx)
				}
			}
		}
		if len(open) == 0 {
			break
		}
		idx := weightedPick(rng, open, affine)
		used[idx] = true
		picks = append(picks, idx)
		counts[c.req.Pool[idx].Role]++
	}
	return picks
}

func (c *composer) ingredients(picks []int) []Ingredient {
	out := make([]Ingredient, len(picks))
	for i, idx := range picks {
		out[i] = c.req.Pool[idx]
	}
	return out
}

// betterRelaxed is better with fatigue penalties removed from the cost.
func (c *composer) betterRelaxed(a, b *candidate) bool {
	ca, cb := a.parts.Cost-a.parts.fatigue(), b.parts.Cost-b.parts.fatigue()
	if ca != cb {
		return ca < cb
	}
	return c.better(a, b)
}

// better orders candidates by cost, then size, then restart index.
func (c *composer) better(a, b *candidate) bool {
	if a.parts.Cost != b.parts.Cost {
		return a.parts.Cost < b.parts.Cost
	}
	if len(a.picks) != len(b.picks) {
		return len(a.picks) < len(b.picks)
	}
	return a.restart < b.restart
}

func (c *composer) trace(results []candidate, restarts int, win *candidate) *SlotTrace {
	if !c.req.Debug {
		return nil
	}
	t := &SlotTrace{
		Slot:     c.req.Slot,
		PoolSize: len(c.req.Pool),
		Target:   c.scorer.target,
		Restarts: restarts,
	}
	kept := make([]*candidate, 0, len(results))
	for i := range results {
		switch results[i].status {
		case candidateBanned:
			t.Banned++
		case candidateRepeat:
			t.Repeats++
		default:
			kept = append(kept, &results[i])
		}
	}
	t.Kept = len(kept)
	if win != nil {
		t.Best = win.parts
	}
	// The winner leads the preview even when the rescue pass picked it.
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i] == win || kept[j] == win {
			return kept[i] == win && kept[j] != win
		}
		return c.better(kept[i], kept[j])
	})
	for _, k := range kept[:min(previewSize, len(kept))] {
		names := make([]string, len(k.picks))
		for i, idx := range k.picks {
			names[i] = c.req.Pool[idx].Name
		}
		t.TopPreview = append(t.TopPreview, CandidatePreview{
			Restart: k.restart,
			Names:   names,
			Macros:  k.macros,
			Score:   k.parts,
		})
	}
	return t
}

func weightedPick(rng *rand.Rand, open []int, weight func(int) float64) int {
	total := 0.0
	for _, idx := range open {
		total += weight(idx)
	}
	r := rng.Float64() * total
	for _, idx := range open {
		r -= weight(idx)
		if r < 0 {
			return idx
		}
	}
	return open[len(open)-1]
}

// restartSeed derives the PCG state for one restart.
func restartSeed(run uint64, day int, slot MealType, restart int) (uint64, uint64) {
	a := splitmix64(run + uint64(day)*0x9e3779b97f4a7c15 + uint64(slotIndex(slot)))
	b := splitmix64(a ^ uint64(restart))
	return a, b
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
