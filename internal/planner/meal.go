package planner

// SlotMeal is the composed meal for one slot of one day.
type SlotMeal struct {
	IDs      []string `json:"ids"`
	Names    []string `json:"names"`
	Roles    []Role   `json:"roles"`
	Cuisines []string `json:"cuisines"`
	Macros   Macros   `json:"macros"`
	Price    float64  `json:"price"`
}

// Signature identifies the meal's ingredient set regardless of order.
func (m SlotMeal) Signature() string {
	return Signature(m.Names)
}

// Len is the number of ingredients in the meal.
func (m SlotMeal) Len() int {
	return len(m.IDs)
}

// RoleCounts tallies the meal's ingredients per role.
func (m SlotMeal) RoleCounts() map[Role]int {
	out := make(map[Role]int, len(m.Roles))
	for _, r := range m.Roles {
		out[r]++
	}
	return out
}

// RecomputeSlotMeal builds a meal from an edited ingredient list, deriving
// macros, price and the cuisine label from the ingredients alone.
func RecomputeSlotMeal(ings []Ingredient) SlotMeal {
	m := SlotMeal{
		IDs:      make([]string, 0, len(ings)),
		Names:    make([]string, 0, len(ings)),
		Roles:    make([]Role, 0, len(ings)),
		Cuisines: []string{majorityCuisine(ings)},
	}
	var p, c, f float64
	for _, ing := range ings {
		m.IDs = append(m.IDs, ing.ID)
		m.Names = append(m.Names, ing.Name)
		m.Roles = append(m.Roles, ing.Role)
		p += ing.Protein
		c += ing.Carbs
		f += ing.Fat
		m.Price += ing.Price
	}
	m.Macros = MacrosOf(p, c, f)
	return m
}

// majorityCuisine counts non-universal tags in ingredient order. The highest
// count wins and ties go to the tag seen first.
func majorityCuisine(ings []Ingredient) string {
	counts := make(map[string]int)
	var order []string
	for _, ing := range ings {
		for _, c := range ing.Cuisines {
			if c == "" || c == Universal {
				continue
			}
			if _, ok := counts[c]; !ok {
				order = append(order, c)
			}
			counts[c]++
		}
	}
	best, bestN := Universal, 0
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}
