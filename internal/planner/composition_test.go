package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	lunch := rules[Lunch]
	assert.Equal(t, 1, lunch.Capacity(RoleBaseProtein))
	assert.Equal(t, 3, lunch.Capacity(RoleVegetable))
	assert.Equal(t, 0, lunch.Capacity(RoleOther))
	assert.Equal(t, []Role{RoleBaseProtein, RoleDressingSauce}, lunch.requiredRoles())
	assert.Empty(t, rules[Breakfast].requiredRoles())

	target := lunch.Target(Targets{P: 100, C: 200, F: 50})
	assert.InDelta(t, 40, target.P, 1e-9)
	assert.InDelta(t, 70, target.C, 1e-9)
	assert.InDelta(t, 17.5, target.F, 1e-9)
	assert.InDelta(t, KcalFor(40, 70, 17.5), target.Kcal, 1e-9)
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Rules)
		msg    string
	}{
		{"missing slot", func(r Rules) { delete(r, Dinner) }, "no composition rule"},
		{"negative required", func(r Rules) { r[Lunch].Required[RoleBaseProtein] = -1 }, "negative"},
		{"negative optional", func(r Rules) { r[Lunch].OptionalMax[RoleGarnish] = -2 }, "negative"},
		{"split out of range", func(r Rules) {
			rule := r[Dinner]
			rule.Split[1] = 1.5
			r[Dinner] = rule
		}, "outside"},
		{"required exceeds max", func(r Rules) {
			rule := r[Lunch]
			rule.TotalMin, rule.TotalMax = 1, 1
			r[Lunch] = rule
		}, "required roles need"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(rules)
			var verr *ValidationError
			require.True(t, errors.As(rules.Validate(), &verr))
			assert.Contains(t, verr.Message, tt.msg)
		})
	}
}

func TestPresets(t *testing.T) {
	p, err := LookupPreset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset, p.Name)

	p, err = LookupPreset("Deep")
	require.NoError(t, err)
	assert.Equal(t, 720, p.Restarts)

	_, err = LookupPreset("turbo")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "preset", verr.Field)

	assert.Equal(t, []string{"fast", "balanced", "quality", "deep"}, PresetNames())
}

func TestScoring(t *testing.T) {
	target := MacrosOf(40, 80, 20)
	assert.Zero(t, RelativeError(target, target))
	assert.InDelta(t, 0.5, RelativeError(MacrosOf(20, 40, 10), target), 1e-6)
	assert.Equal(t, 0.0, Quality(1.7))

	salad := []Ingredient{
		{Name: "Soba Noodles"}, {Name: "Blueberries"},
	}
	assert.True(t, isBanned(salad, DefaultBannedPairs()))
	assert.False(t, isBanned(salad[:1], DefaultBannedPairs()))

	pairs := []Pairing{{A: "salmon", B: "dill"}}
	assert.True(t, containsPairing([]Ingredient{{Name: "Salmon"}, {Name: "Dill "}}, pairs))
	assert.False(t, containsPairing([]Ingredient{{Name: "Salmon"}}, pairs))
	assert.Equal(t, "dill+salmon", pairs[0].String())
}

func TestScorerPenalties(t *testing.T) {
	state := NewDiversityState()
	for i := 0; i < 100; i++ {
		state.RecordUsage(Lunch, "x", []string{"a"}, "asian")
	}
	s := scorer{target: MacrosOf(10, 10, 10), state: state, priceWeight: 0.5, priceRef: 10}
	parts := s.score([]Ingredient{{ID: "a", Name: "A"}}, MacrosOf(10, 10, 10), 4, "asian")

	assert.InDelta(t, usagePenaltyCap, parts.Usage, 1e-12)
	assert.InDelta(t, cuisinePenaltyCap, parts.Cuisine, 1e-12)
	assert.InDelta(t, 0.2, parts.Price, 1e-12)
	assert.InDelta(t, focusWeight*0.5, parts.Focus, 1e-12)
	assert.InDelta(t, parts.RelErr+parts.Usage+parts.Cuisine+parts.Price+parts.Focus, parts.Cost, 1e-12)

	fresh := s.score([]Ingredient{{ID: "b", Name: "B"}}, MacrosOf(10, 10, 10), 0, Universal)
	assert.Zero(t, fresh.Usage)
	assert.Zero(t, fresh.Cuisine)
}

func TestScorerCompositionTerms(t *testing.T) {
	lunch := DefaultRules()[Lunch]
	s := scorer{rule: lunch, target: MacrosOf(40, 70, 17.5), state: NewDiversityState()}
	asian := []string{"asian"}

	full := []Ingredient{
		{ID: "p", Name: "Tofu", Role: RoleBaseProtein, Cuisines: asian},
		{ID: "d", Name: "Teriyaki", Role: RoleDressingSauce, Cuisines: asian},
		{ID: "l", Name: "Spinach", Role: RoleLeafyGreen},
		{ID: "v", Name: "Pepper", Role: RoleVegetable},
		{ID: "f", Name: "Avocado", Role: RoleFatSource},
	}
	parts := s.score(full, MacrosOf(40, 70, 17.5), 0, "asian")
	assert.Zero(t, parts.Coverage)
	assert.Zero(t, parts.Focus)
	assert.Zero(t, parts.Dressing)
	assert.InDelta(t, countWeight*(1-0.1), parts.Count, 1e-9)

	bare := []Ingredient{
		{ID: "p", Name: "Tofu", Role: RoleBaseProtein, Cuisines: asian},
		{ID: "d", Name: "Pesto", Role: RoleDressingSauce, Cuisines: []string{"mediterranean"}},
	}
	parts = s.score(bare, MacrosOf(40, 70, 17.5), 0, "asian")
	assert.InDelta(t, coverageWeight, parts.Coverage, 1e-12)
	assert.InDelta(t, focusWeight*math.Log(2)/focusEntropyScale, parts.Focus, 1e-9)
	assert.InDelta(t, parts.Coverage+parts.Focus+parts.Count, parts.Cost, 1e-9)

	noGreens := append([]Ingredient{}, full[:2]...)
	noGreens = append(noGreens, full[3:]...)
	assert.InDelta(t, 0.15/0.35, coverageShortfall(noGreens, lunch), 1e-12)
}

func TestCountFit(t *testing.T) {
	lunch := DefaultRules()[Lunch]
	assert.InDelta(t, 1.0, countFit(9, lunch), 1e-6)
	assert.InDelta(t, 0.5, countFit(8, lunch), 1e-6)
	assert.InDelta(t, 0.5, countFit(10, lunch), 1e-6)
	assert.InDelta(t, 0.8, countFit(11, lunch), 1e-9)
	assert.InDelta(t, 0.1, countFit(5, lunch), 1e-9)
	assert.Equal(t, 1.0, countFit(3, SlotCompositionRule{}))
}

func TestDressingPenalty(t *testing.T) {
	dressing := Ingredient{Name: "Vinaigrette", Role: RoleDressingSauce}
	protein := Ingredient{Name: "Chicken", Role: RoleBaseProtein}
	rules := DefaultRules()

	assert.Zero(t, dressingPenalty([]Ingredient{protein, dressing}, rules[Lunch]))
	assert.Equal(t, noDressingPenalty, dressingPenalty([]Ingredient{protein}, rules[Dinner]))
	assert.Equal(t, extraDressingPenalty, dressingPenalty([]Ingredient{protein, dressing, dressing}, rules[Lunch]))
	assert.Zero(t, dressingPenalty([]Ingredient{protein}, rules[Breakfast]))
}

func TestCuisineFocus(t *testing.T) {
	one := func(c ...string) Ingredient { return Ingredient{Cuisines: c} }
	assert.Equal(t, 0.5, cuisineFocus([]Ingredient{one(Universal), one()}))
	assert.Equal(t, 1.0, cuisineFocus([]Ingredient{one("asian"), one("Asian"), one(Universal)}))
	assert.InDelta(t, 1-math.Log(3)/focusEntropyScale, cuisineFocus([]Ingredient{one("asian"), one("mexican"), one("mediterranean")}), 1e-9)
}
