package planner

import (
	"math"
	"strings"
)

const (
	relErrEps          = 1e-6
	usagePenaltyCap    = 0.6
	usagePenaltyRate   = 0.08
	cuisinePenaltyCap  = 0.4
	cuisinePenaltyRate = 0.1
	pairingBonus       = 0.25

	// Composition terms, identical for every preset.
	coverageWeight = 0.2
	focusWeight    = 0.08
	countWeight    = 0.04
	dressingWeight = 0.05

	noDressingPenalty    = 0.2
	extraDressingPenalty = 0.3
	focusEntropyScale    = 1.5
)

// accentRoles reward meals that include greens, vegetables and a fat source.
var accentRoles = []struct {
	role   Role
	weight float64
}{
	{RoleLeafyGreen, 0.15},
	{RoleVegetable, 0.10},
	{RoleFatSource, 0.10},
}

// ScoreParts breaks a candidate's cost into its terms. Lower Cost is better.
type ScoreParts struct {
	Cost    float64 `json:"cost"`
	RelErr  float64 `json:"rel_err"`
	Usage   float64 `json:"usage_penalty"`
	Cuisine float64 `json:"cuisine_penalty"`
	Price   float64 `json:"price_penalty"`
	Pairing float64 `json:"pairing_bonus"`

	Coverage float64 `json:"coverage_penalty"`
	Focus    float64 `json:"focus_penalty"`
	Count    float64 `json:"count_penalty"`
	Dressing float64 `json:"dressing_penalty"`
}

// fatigue is the part of the cost that depends on earlier days.
func (p ScoreParts) fatigue() float64 {
	return p.Usage + p.Cuisine
}

// RelativeError is the mean relative L1 distance over protein, carbs and fat.
func RelativeError(got, target Macros) float64 {
	return (math.Abs(got.P-target.P)/(target.P+relErrEps) +
		math.Abs(got.C-target.C)/(target.C+relErrEps) +
		math.Abs(got.F-target.F)/(target.F+relErrEps)) / 3
}

// Quality maps a relative error onto [0,1].
func Quality(relErr float64) float64 {
	return math.Max(0, 1-relErr)
}

type scorer struct {
	rule        SlotCompositionRule
	target      Macros
	state       *DiversityState
	pairings    []Pairing
	priceWeight float64
	priceRef    float64
}

func (s scorer) score(ings []Ingredient, macros Macros, price float64, cuisine string) ScoreParts {
	parts := ScoreParts{RelErr: RelativeError(macros, s.target)}

	used := 0
	for _, ing := range ings {
		used += s.state.Usage(ing.ID)
	}
	parts.Usage = math.Min(usagePenaltyCap, usagePenaltyRate*math.Sqrt(float64(used)))

	if cuisine != Universal {
		parts.Cuisine = math.Min(cuisinePenaltyCap, cuisinePenaltyRate*math.Sqrt(float64(s.state.CuisineUse(cuisine))))
	}
	if s.priceWeight > 0 && s.priceRef > 0 {
		parts.Price = s.priceWeight * price / s.priceRef
	}
	if containsPairing(ings, s.pairings) {
		parts.Pairing = pairingBonus
	}
	parts.Coverage = coverageWeight * coverageShortfall(ings, s.rule)
	parts.Focus = focusWeight * (1 - cuisineFocus(ings))
	parts.Count = countWeight * (1 - countFit(len(ings), s.rule))
	parts.Dressing = dressingWeight * dressingPenalty(ings, s.rule)

	parts.Cost = parts.RelErr + parts.Usage + parts.Cuisine + parts.Price - parts.Pairing +
		parts.Coverage + parts.Focus + parts.Count + parts.Dressing
	return parts
}

// coverageShortfall is the weighted share of accent roles the rule allows but
// the meal leaves out, in [0,1].
func coverageShortfall(ings []Ingredient, rule SlotCompositionRule) float64 {
	present := make(map[Role]bool, len(ings))
	for _, ing := range ings {
		present[ing.Role] = true
	}
	var allowed, missing float64
	for _, a := range accentRoles {
		if rule.Capacity(a.role) == 0 {
			continue
		}
		allowed += a.weight
		if !present[a.role] {
			missing += a.weight
		}
	}
	if allowed == 0 {
		return 0
	}
	return missing / allowed
}

// cuisineFocus is 1 for a single cuisine and falls with the entropy of the
// non-universal cuisine tags. Meals with only universal tags score 0.5.
func cuisineFocus(ings []Ingredient) float64 {
	counts := make(map[string]int)
	total := 0
	for _, ing := range ings {
		for _, c := range ing.Cuisines {
			c = strings.ToLower(c)
			if c == "" || c == Universal {
				continue
			}
			counts[c]++
			total++
		}
	}
	if total == 0 {
		return 0.5
	}
	h := 0.0
	for _, n := range counts {
		p := float64(n) / float64(total)
		h -= p * math.Log(p)
	}
	return math.Max(0, 1-h/focusEntropyScale)
}

// countFit prefers sizes near the middle of the rule's total range.
func countFit(n int, rule SlotCompositionRule) float64 {
	lo, hi := rule.TotalMin, rule.TotalMax
	if hi <= 0 {
		return 1
	}
	switch {
	case n < lo:
		return math.Max(0, 1-float64(lo-n)*0.3)
	case n > hi:
		return math.Max(0, 1-float64(n-hi)*0.2)
	}
	mid := float64(lo+hi) / 2
	return math.Max(0, 1-math.Abs(float64(n)-mid)/(float64(hi-lo)+relErrEps))
}

// dressingPenalty applies to slots that require a dressing: none or more than
// one is penalized.
func dressingPenalty(ings []Ingredient, rule SlotCompositionRule) float64 {
	if rule.Required[RoleDressingSauce] == 0 {
		return 0
	}
	n := 0
	for _, ing := range ings {
		if ing.Role == RoleDressingSauce {
			n++
		}
	}
	switch {
	case n == 0:
		return noDressingPenalty
	case n > 1:
		return extraDressingPenalty
	}
	return 0
}

func containsPairing(ings []Ingredient, pairings []Pairing) bool {
	if len(pairings) == 0 {
		return false
	}
	names := make(map[string]bool, len(ings))
	for _, ing := range ings {
		names[strings.ToLower(strings.TrimSpace(ing.Name))] = true
	}
	for _, p := range pairings {
		if names[strings.ToLower(p.A)] && names[strings.ToLower(p.B)] {
			return true
		}
	}
	return false
}

// isBanned matches keyword pairs against the joined ingredient names.
func isBanned(ings []Ingredient, banned []BannedPair) bool {
	if len(banned) == 0 {
		return false
	}
	var b strings.Builder
	for _, ing := range ings {
		b.WriteString(strings.ToLower(ing.Name))
		b.WriteByte(' ')
	}
	joined := b.String()
	for _, pair := range banned {
		if strings.Contains(joined, strings.ToLower(pair[0])) && strings.Contains(joined, strings.ToLower(pair[1])) {
			return true
		}
	}
	return false
}
