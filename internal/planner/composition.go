package planner

import (
	"fmt"
	"sort"
)

// SlotCompositionRule describes what a valid meal for one slot looks like.
// Split holds the fractions of the daily protein, carbs and fat that the slot
// aims for; the fractions need not sum to one across slots.
type SlotCompositionRule struct {
	Required    map[Role]int `json:"required"`
	OptionalMax map[Role]int `json:"optional_max"`
	TotalMin    int          `json:"total_min"`
	TotalMax    int          `json:"total_max"`
	Split       [3]float64   `json:"split"`
}

// Capacity is the most ingredients of a role the slot may hold.
func (r SlotCompositionRule) Capacity(role Role) int {
	return max(r.Required[role], r.OptionalMax[role])
}

// Target scales the daily targets by the slot split.
func (r SlotCompositionRule) Target(daily Targets) Macros {
	return MacrosOf(daily.P*r.Split[0], daily.C*r.Split[1], daily.F*r.Split[2])
}

func (r SlotCompositionRule) requiredRoles() []Role {
	var out []Role
	for _, role := range AllRoles {
		if r.Required[role] > 0 {
			out = append(out, role)
		}
	}
	return out
}

func (r SlotCompositionRule) requiredTotal() int {
	n := 0
	for _, c := range r.Required {
		n += c
	}
	return n
}

func (r SlotCompositionRule) validate(slot MealType) error {
	field := "rules." + string(slot)
	for _, role := range sortedRoleCounts(r.Required) {
		if r.Required[role] < 0 {
			return validationErrorf(field, "required count for %s is negative", role)
		}
	}
	for _, role := range sortedRoleCounts(r.OptionalMax) {
		if r.OptionalMax[role] < 0 {
			return validationErrorf(field, "optional max for %s is negative", role)
		}
	}
	if r.TotalMin < 1 || r.TotalMax < r.TotalMin {
		return validationErrorf(field, "total range [%d,%d] is invalid", r.TotalMin, r.TotalMax)
	}
	if n := r.requiredTotal(); n > r.TotalMax {
		return validationErrorf(field, "required roles need %d ingredients but total max is %d", n, r.TotalMax)
	}
	for i, f := range r.Split {
		if f < 0 || f > 1 {
			return validationErrorf(field, "split[%d]=%v outside [0,1]", i, f)
		}
	}
	return nil
}

// Rules maps each slot to its composition rule.
type Rules map[MealType]SlotCompositionRule

func (rs Rules) Validate() error {
	for _, slot := range Slots {
		r, ok := rs[slot]
		if !ok {
			return validationErrorf("rules", "no composition rule for %s", slot)
		}
		if err := r.validate(slot); err != nil {
			return err
		}
	}
	return nil
}

func lunchDinnerOptional() map[Role]int {
	return map[Role]int{
		RoleBaseCarb:         1,
		RoleSecondaryProtein: 1,
		RoleLeafyGreen:       2,
		RoleVegetable:        3,
		RoleFatSource:        1,
		RoleTopping:          2,
		RoleGarnish:          2,
	}
}

// DefaultRules returns the production composition table.
func DefaultRules() Rules {
	return Rules{
		Breakfast: {
			Required: map[Role]int{},
			OptionalMax: map[Role]int{
				RoleBaseCarb:         1,
				RoleSecondaryProtein: 1,
				RoleLeafyGreen:       1,
				RoleVegetable:        2,
				RoleFatSource:        1,
				RoleTopping:          2,
				RoleGarnish:          2,
			},
			TotalMin: 6,
			TotalMax: 8,
			Split:    [3]float64{0.30, 0.35, 0.35},
		},
		Lunch: {
			Required:    map[Role]int{RoleBaseProtein: 1, RoleDressingSauce: 1},
			OptionalMax: lunchDinnerOptional(),
			TotalMin:    8,
			TotalMax:    10,
			Split:       [3]float64{0.40, 0.35, 0.35},
		},
		Dinner: {
			Required:    map[Role]int{RoleBaseProtein: 1, RoleDressingSauce: 1},
			OptionalMax: lunchDinnerOptional(),
			TotalMin:    8,
			TotalMax:    10,
			Split:       [3]float64{0.30, 0.30, 0.30},
		},
	}
}

// BannedPair rejects any meal whose names contain both keywords.
type BannedPair [2]string

// DefaultBannedPairs are combinations that taste wrong together.
func DefaultBannedPairs() []BannedPair {
	return []BannedPair{
		{"whey", "blueberry"},
		{"soba", "blueberry"},
		{"noodle", "blueberry"},
	}
}

// Pairing is a validated ingredient pair that earns a scoring bonus when a
// meal contains both ingredients.
type Pairing struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (p Pairing) String() string {
	a, b := p.A, p.B
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s+%s", a, b)
}

func sortedRoleCounts(m map[Role]int) []Role {
	roles := make([]Role, 0, len(m))
	for r := range m {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
