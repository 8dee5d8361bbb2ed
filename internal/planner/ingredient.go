package planner

import (
	"math"
	"strings"
)

// Role is the function an ingredient plays inside a meal.
type Role string

const (
	RoleBaseProtein      Role = "base_protein"
	RoleSecondaryProtein Role = "secondary_protein"
	RoleBaseCarb         Role = "base_carb"
	RoleVegetable        Role = "vegetable"
	RoleLeafyGreen       Role = "leafy_green"
	RoleFatSource        Role = "fat_source"
	RoleDressingSauce    Role = "dressing_sauce"
	RoleTopping          Role = "topping"
	RoleGarnish          Role = "garnish"
	RoleOther            Role = "other"
)

// AllRoles is the canonical role order. Every scan over roles uses it so that
// sampling is reproducible for a fixed seed.
var AllRoles = []Role{
	RoleBaseProtein,
	RoleSecondaryProtein,
	RoleBaseCarb,
	RoleVegetable,
	RoleLeafyGreen,
	RoleFatSource,
	RoleDressingSauce,
	RoleTopping,
	RoleGarnish,
	RoleOther,
}

// ParseRole maps a catalog role string onto a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// MealType is one of the three daily slots.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// Slots lists the meal types in the order a day is assembled.
var Slots = []MealType{Breakfast, Lunch, Dinner}

func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Slots {
		if m == known {
			return m, true
		}
	}
	return "", false
}

func slotIndex(m MealType) int {
	for i, s := range Slots {
		if s == m {
			return i
		}
	}
	return len(Slots)
}

// Universal is the cuisine tag of ingredients that fit any cuisine.
const Universal = "universal"

// KcalFor derives energy from macros. It is the only source of kcal values.
func KcalFor(p, c, f float64) float64 {
	return p*4 + c*4 + f*9
}

// Macros holds grams of protein, carbs and fat plus the derived kcal.
type Macros struct {
	P    float64 `json:"P"`
	C    float64 `json:"C"`
	F    float64 `json:"F"`
	Kcal float64 `json:"kcal"`
}

func MacrosOf(p, c, f float64) Macros {
	return Macros{P: p, C: c, F: f, Kcal: KcalFor(p, c, f)}
}

func (m Macros) Add(o Macros) Macros {
	return Macros{P: m.P + o.P, C: m.C + o.C, F: m.F + o.F, Kcal: m.Kcal + o.Kcal}
}

// Ingredient is one catalog entry with nutrition per serving.
type Ingredient struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Category  string     `json:"category,omitempty"`
	Protein   float64    `json:"protein"`
	Carbs     float64    `json:"carbs"`
	Fat       float64    `json:"fat"`
	Kcal      float64    `json:"kcal"`
	Cuisines  []string   `json:"cuisine"`
	DietTags  []string   `json:"dietTags"`
	Allergens []string   `json:"allergens"`
	Price     float64    `json:"price"`
	MealTypes []MealType `json:"mealTypes"`
	Active    bool       `json:"active"`
}

// NewIngredient builds an active, validated ingredient with no tags.
func NewIngredient(id, name string, role Role, protein, carbs, fat, price float64, mealTypes ...MealType) (Ingredient, error) {
	ing := Ingredient{
		ID:        id,
		Name:      name,
		Role:      role,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		Price:     price,
		MealTypes: mealTypes,
		Active:    true,
	}
	if err := ing.Validate(); err != nil {
		return Ingredient{}, err
	}
	return ing, nil
}

// Validate checks the record and reconciles Kcal with the macro formula.
func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return validationErrorf("id", "ingredient %q has no id", i.Name)
	}
	if strings.TrimSpace(i.Name) == "" {
		return validationErrorf("name", "ingredient %s has no name", i.ID)
	}
	if _, ok := ParseRole(string(i.Role)); !ok {
		return validationErrorf("role", "ingredient %s has unknown role %q", i.Name, i.Role)
	}
	fields := []struct {
		name  string
		value float64
	}{{"protein", i.Protein}, {"carbs", i.Carbs}, {"fat", i.Fat}, {"price", i.Price}}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return validationErrorf(f.name, "ingredient %s has invalid %s %v", i.Name, f.name, f.value)
		}
	}
	if len(i.MealTypes) == 0 {
		return validationErrorf("mealTypes", "ingredient %s is not eligible for any meal", i.Name)
	}
	for _, m := range i.MealTypes {
		if _, ok := ParseMealType(string(m)); !ok {
			return validationErrorf("mealTypes", "ingredient %s has unknown meal type %q", i.Name, m)
		}
	}
	i.Kcal = KcalFor(i.Protein, i.Carbs, i.Fat)
	return nil
}

func (i Ingredient) Macros() Macros {
	return MacrosOf(i.Protein, i.Carbs, i.Fat)
}

// EligibleFor reports whether the ingredient may appear in the slot.
func (i Ingredient) EligibleFor(slot MealType) bool {
	for _, m := range i.MealTypes {
		if m == slot {
			return true
		}
	}
	return false
}

// isPlaceholder matches the "None" choice that catalog UIs use for an empty option.
func (i Ingredient) isPlaceholder() bool {
	n := strings.ToLower(strings.TrimSpace(i.Name))
	return n == "" || n == "none"
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
