package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allSlots     = []MealType{Breakfast, Lunch, Dinner}
	mainSlots    = []MealType{Lunch, Dinner}
	vegan        = []string{"vegan", "vegetarian"}
	vegetarian   = []string{"vegetarian"}
	omnivoreOnly = []string{"omnivore"}
)

func ing(name string, role Role, p, c, f, price float64, slots []MealType, cuisines, diet, allergens []string) Ingredient {
	i := Ingredient{
		ID:        fmt.Sprintf("ing-%s", Signature([]string{name})),
		Name:      name,
		Role:      role,
		Protein:   p,
		Carbs:     c,
		Fat:       f,
		Price:     price,
		Cuisines:  cuisines,
		DietTags:  diet,
		Allergens: allergens,
		MealTypes: slots,
		Active:    true,
	}
	if err := i.Validate(); err != nil {
		panic(err)
	}
	return i
}

// fortyIngredients covers every role for every slot with a few cuisines.
func fortyIngredients() []Ingredient {
	asian := []string{"asian"}
	med := []string{"mediterranean"}
	uni := []string{Universal}
	return []Ingredient{
		// base proteins
		ing("Chicken Breast", RoleBaseProtein, 40, 0, 5, 3.2, mainSlots, uni, omnivoreOnly, nil),
		ing("Salmon Fillet", RoleBaseProtein, 34, 0, 14, 5.5, mainSlots, med, omnivoreOnly, []string{"fish"}),
		ing("Firm Tofu", RoleBaseProtein, 24, 4, 12, 1.8, mainSlots, asian, vegan, []string{"soy"}),
		ing("Beef Sirloin", RoleBaseProtein, 36, 0, 10, 4.8, mainSlots, uni, omnivoreOnly, nil),
		ing("Shrimp", RoleBaseProtein, 30, 1, 2, 4.1, mainSlots, asian, omnivoreOnly, []string{"shellfish"}),
		ing("Tempeh", RoleBaseProtein, 26, 12, 14, 2.2, mainSlots, asian, vegan, []string{"soy"}),
		// secondary proteins
		ing("Eggs", RoleSecondaryProtein, 19, 1, 15, 0.9, allSlots, uni, vegetarian, []string{"eggs"}),
		ing("Greek Yogurt", RoleSecondaryProtein, 17, 6, 0, 1.2, []MealType{Breakfast}, med, vegetarian, []string{"dairy"}),
		ing("Whey Protein", RoleSecondaryProtein, 25, 3, 1, 1.1, []MealType{Breakfast}, uni, vegetarian, []string{"dairy"}),
		ing("Edamame", RoleSecondaryProtein, 11, 9, 5, 1.0, allSlots, asian, vegan, []string{"soy"}),
		ing("Chickpeas", RoleSecondaryProtein, 7, 22, 2, 0.6, mainSlots, med, vegan, nil),
		// base carbs
		ing("Brown Rice", RoleBaseCarb, 5, 45, 2, 0.5, mainSlots, asian, vegan, nil),
		ing("Quinoa", RoleBaseCarb, 8, 39, 4, 0.9, allSlots, uni, vegan, nil),
		ing("Rolled Oats", RoleBaseCarb, 10, 54, 6, 0.4, []MealType{Breakfast}, uni, vegan, []string{"gluten"}),
		ing("Sweet Potato", RoleBaseCarb, 2, 40, 0, 0.7, allSlots, uni, vegan, nil),
		ing("Whole Wheat Bread", RoleBaseCarb, 8, 40, 2, 0.5, []MealType{Breakfast}, uni, vegan, []string{"gluten"}),
		ing("Soba Noodles", RoleBaseCarb, 8, 42, 0, 1.0, mainSlots, asian, vegan, []string{"gluten"}),
		// vegetables
		ing("Broccoli", RoleVegetable, 3, 7, 0, 0.6, mainSlots, uni, nil, nil),
		ing("Bell Pepper", RoleVegetable, 1, 6, 0, 0.5, allSlots, uni, nil, nil),
		ing("Carrot", RoleVegetable, 1, 10, 0, 0.3, mainSlots, uni, nil, nil),
		ing("Zucchini", RoleVegetable, 1, 4, 0, 0.5, mainSlots, med, nil, nil),
		ing("Tomato", RoleVegetable, 1, 5, 0, 0.4, allSlots, med, nil, nil),
		ing("Cucumber", RoleVegetable, 1, 4, 0, 0.3, allSlots, uni, nil, nil),
		// leafy greens
		ing("Spinach", RoleLeafyGreen, 1, 1, 0, 0.4, allSlots, uni, nil, nil),
		ing("Kale", RoleLeafyGreen, 2, 4, 1, 0.5, mainSlots, uni, nil, nil),
		ing("Arugula", RoleLeafyGreen, 1, 1, 0, 0.6, mainSlots, med, nil, nil),
		ing("Romaine", RoleLeafyGreen, 1, 2, 0, 0.3, allSlots, uni, nil, nil),
		// fats
		ing("Avocado", RoleFatSource, 1, 6, 11, 0.9, allSlots, uni, vegan, nil),
		ing("Olive Oil", RoleFatSource, 0, 0, 14, 0.2, mainSlots, med, vegan, nil),
		ing("Almonds", RoleFatSource, 4, 4, 9, 0.6, allSlots, uni, vegan, []string{"tree_nut"}),
		// dressings
		ing("Tahini Dressing", RoleDressingSauce, 3, 3, 8, 0.4, mainSlots, med, vegan, []string{"sesame"}),
		ing("Teriyaki Sauce", RoleDressingSauce, 1, 8, 0, 0.3, mainSlots, asian, vegan, []string{"soy"}),
		ing("Basil Pesto", RoleDressingSauce, 2, 1, 9, 0.6, mainSlots, med, vegetarian, []string{"dairy", "tree_nut"}),
		ing("Lemon Vinaigrette", RoleDressingSauce, 0, 2, 7, 0.2, mainSlots, uni, vegan, nil),
		// toppings
		ing("Blueberries", RoleTopping, 1, 11, 0, 0.8, []MealType{Breakfast}, uni, vegan, nil),
		ing("Granola", RoleTopping, 3, 18, 4, 0.5, []MealType{Breakfast}, uni, vegan, []string{"gluten"}),
		ing("Sesame Seeds", RoleTopping, 2, 1, 5, 0.1, allSlots, asian, vegan, []string{"sesame"}),
		ing("Feta", RoleTopping, 4, 1, 6, 0.7, allSlots, med, vegetarian, []string{"dairy"}),
		// garnishes
		ing("Cilantro", RoleGarnish, 0, 0, 0, 0.1, allSlots, uni, nil, nil),
		ing("Scallion", RoleGarnish, 0, 2, 0, 0.1, allSlots, asian, nil, nil),
	}
}

func seedPtr(s uint64) *uint64 { return &s }

func defaultTargets() Targets { return Targets{P: 150, C: 250, F: 60} }

// assertPlanInvariants checks the structural properties every plan must hold.
func assertPlanInvariants(t *testing.T, plan *WeeklyPlan, rules Rules, allowRepeats bool) {
	t.Helper()
	require.Len(t, plan.Days, DaysPerWeek)

	var week Totals
	seen := make(map[MealType]map[string]int)
	for _, day := range plan.Days {
		var sum Totals
		for _, slot := range Slots {
			meal := day.Meals.Get(slot)
			rule := rules[slot]

			assert.InDelta(t, KcalFor(meal.Macros.P, meal.Macros.C, meal.Macros.F), meal.Macros.Kcal, 1e-9,
				"day %d %s kcal", day.Day, slot)
			assert.GreaterOrEqual(t, meal.Len(), rule.TotalMin, "day %d %s size", day.Day, slot)
			assert.LessOrEqual(t, meal.Len(), rule.TotalMax, "day %d %s size", day.Day, slot)

			counts := meal.RoleCounts()
			for role, n := range counts {
				assert.LessOrEqual(t, n, rule.Capacity(role), "day %d %s role %s", day.Day, slot, role)
			}
			for _, role := range rule.requiredRoles() {
				assert.GreaterOrEqual(t, counts[role], rule.Required[role], "day %d %s missing %s", day.Day, slot, role)
			}

			if seen[slot] == nil {
				seen[slot] = make(map[string]int)
			}
			if prev, dup := seen[slot][meal.Signature()]; dup && !allowRepeats {
				t.Errorf("day %d %s repeats the meal from day %d", day.Day, slot, prev)
			}
			seen[slot][meal.Signature()] = day.Day

			sum = sum.Add(Totals{Macros: meal.Macros, Price: meal.Price})
		}
		assert.InDelta(t, sum.P, day.Totals.P, 1e-9)
		assert.InDelta(t, sum.C, day.Totals.C, 1e-9)
		assert.InDelta(t, sum.F, day.Totals.F, 1e-9)
		assert.InDelta(t, sum.Kcal, day.Totals.Kcal, 1e-9)
		assert.InDelta(t, sum.Price, day.Totals.Price, 1e-9)
		week = week.Add(day.Totals)
	}
	assert.InDelta(t, week.P, plan.WeeklyTotals.P, 1e-9)
	assert.InDelta(t, week.C, plan.WeeklyTotals.C, 1e-9)
	assert.InDelta(t, week.F, plan.WeeklyTotals.F, 1e-9)
	assert.InDelta(t, week.Kcal, plan.WeeklyTotals.Kcal, 1e-9)
	assert.InDelta(t, week.Price, plan.WeeklyTotals.Price, 1e-9)
}
