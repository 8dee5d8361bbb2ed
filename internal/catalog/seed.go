package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

type seedRow struct {
	name      string
	role      planner.Role
	category  string
	p, c, f   float64
	price     float64
	meals     string
	cuisine   string
	diet      string
	allergens string
}

const (
	all   = "universal"
	mains = "lunch,dinner"
	bfast = "breakfast"

	omni   = "omnivore"
	veg    = "vegetarian"
	vegan  = "vegan,vegetarian"
	noDiet = ""
)

var seedRows = []seedRow{
	{"Chicken Breast", planner.RoleBaseProtein, "protein", 40, 0, 5, 3.2, mains, "universal", omni, ""},
	{"Salmon Fillet", planner.RoleBaseProtein, "protein", 34, 0, 14, 5.5, mains, "mediterranean", omni, "fish"},
	{"Beef Sirloin", planner.RoleBaseProtein, "protein", 36, 0, 10, 4.8, mains, "universal", omni, ""},
	{"Shrimp", planner.RoleBaseProtein, "protein", 30, 1, 2, 4.1, mains, "asian", omni, "shellfish"},
	{"Turkey Mince", planner.RoleBaseProtein, "protein", 33, 0, 8, 3.0, mains, "mexican", omni, ""},
	{"Firm Tofu", planner.RoleBaseProtein, "protein", 24, 4, 12, 1.8, mains, "asian", vegan, "soy"},
	{"Tempeh", planner.RoleBaseProtein, "protein", 26, 12, 14, 2.2, mains, "asian", vegan, "soy"},
	{"Black Beans", planner.RoleBaseProtein, "protein", 15, 40, 1, 0.7, mains, "mexican", vegan, ""},

	{"Eggs", planner.RoleSecondaryProtein, "protein", 19, 1, 15, 0.9, all, "universal", veg, "eggs"},
	{"Greek Yogurt", planner.RoleSecondaryProtein, "protein", 17, 6, 0, 1.2, bfast, "mediterranean", veg, "dairy"},
	{"Whey Protein", planner.RoleSecondaryProtein, "protein", 25, 3, 1, 1.1, bfast, "universal", veg, "dairy"},
	{"Edamame", planner.RoleSecondaryProtein, "protein", 11, 9, 5, 1.0, all, "asian", vegan, "soy"},
	{"Chickpeas", planner.RoleSecondaryProtein, "protein", 7, 22, 2, 0.6, mains, "mediterranean", vegan, ""},
	{"Cottage Cheese", planner.RoleSecondaryProtein, "protein", 14, 4, 2, 0.9, bfast, "universal", veg, "dairy"},

	{"Brown Rice", planner.RoleBaseCarb, "carb", 5, 45, 2, 0.5, mains, "asian", vegan, ""},
	{"Quinoa", planner.RoleBaseCarb, "carb", 8, 39, 4, 0.9, all, "universal", vegan, ""},
	{"Rolled Oats", planner.RoleBaseCarb, "carb", 10, 54, 6, 0.4, bfast, "universal", vegan, "gluten"},
	{"Sweet Potato", planner.RoleBaseCarb, "carb", 2, 40, 0, 0.7, all, "universal", vegan, ""},
	{"Whole Wheat Bread", planner.RoleBaseCarb, "carb", 8, 40, 2, 0.5, bfast, "universal", vegan, "gluten"},
	{"Soba Noodles", planner.RoleBaseCarb, "carb", 8, 42, 0, 1.0, mains, "asian", vegan, "gluten"},
	{"Corn Tortillas", planner.RoleBaseCarb, "carb", 4, 36, 2, 0.4, mains, "mexican", vegan, ""},

	{"Broccoli", planner.RoleVegetable, "vegetable", 3, 7, 0, 0.6, mains, "universal", noDiet, ""},
	{"Bell Pepper", planner.RoleVegetable, "vegetable", 1, 6, 0, 0.5, all, "universal", noDiet, ""},
	{"Carrot", planner.RoleVegetable, "vegetable", 1, 10, 0, 0.3, mains, "universal", noDiet, ""},
	{"Zucchini", planner.RoleVegetable, "vegetable", 1, 4, 0, 0.5, mains, "mediterranean", noDiet, ""},
	{"Cherry Tomatoes", planner.RoleVegetable, "vegetable", 1, 5, 0, 0.4, all, "mediterranean", noDiet, ""},
	{"Cucumber", planner.RoleVegetable, "vegetable", 1, 4, 0, 0.3, all, "universal", noDiet, ""},
	{"Red Onion", planner.RoleVegetable, "vegetable", 1, 9, 0, 0.2, mains, "mexican", noDiet, ""},

	{"Spinach", planner.RoleLeafyGreen, "vegetable", 1, 1, 0, 0.4, all, "universal", noDiet, ""},
	{"Kale", planner.RoleLeafyGreen, "vegetable", 2, 4, 1, 0.5, mains, "universal", noDiet, ""},
	{"Arugula", planner.RoleLeafyGreen, "vegetable", 1, 1, 0, 0.6, mains, "mediterranean", noDiet, ""},
	{"Romaine", planner.RoleLeafyGreen, "vegetable", 1, 2, 0, 0.3, all, "universal", noDiet, ""},

	{"Avocado", planner.RoleFatSource, "fat", 1, 6, 11, 0.9, all, "mexican", vegan, ""},
	{"Olive Oil", planner.RoleFatSource, "fat", 0, 0, 14, 0.2, mains, "mediterranean", vegan, ""},
	{"Almonds", planner.RoleFatSource, "fat", 4, 4, 9, 0.6, all, "universal", vegan, "tree_nut"},
	{"Peanut Butter", planner.RoleFatSource, "fat", 7, 6, 16, 0.3, bfast, "universal", vegan, "peanut"},

	{"Tahini Dressing", planner.RoleDressingSauce, "sauce", 3, 3, 8, 0.4, mains, "mediterranean", vegan, "sesame"},
	{"Teriyaki Sauce", planner.RoleDressingSauce, "sauce", 1, 8, 0, 0.3, mains, "asian", vegan, "soy"},
	{"Basil Pesto", planner.RoleDressingSauce, "sauce", 2, 1, 9, 0.6, mains, "mediterranean", veg, "dairy,tree_nut"},
	{"Lemon Vinaigrette", planner.RoleDressingSauce, "sauce", 0, 2, 7, 0.2, mains, "universal", vegan, ""},
	{"Salsa Verde", planner.RoleDressingSauce, "sauce", 1, 4, 0, 0.3, mains, "mexican", vegan, ""},

	{"Blueberries", planner.RoleTopping, "fruit", 1, 11, 0, 0.8, bfast, "universal", vegan, ""},
	{"Granola", planner.RoleTopping, "carb", 3, 18, 4, 0.5, bfast, "universal", vegan, "gluten"},
	{"Banana", planner.RoleTopping, "fruit", 1, 23, 0, 0.2, bfast, "universal", vegan, ""},
	{"Sesame Seeds", planner.RoleTopping, "fat", 2, 1, 5, 0.1, all, "asian", vegan, "sesame"},
	{"Feta", planner.RoleTopping, "dairy", 4, 1, 6, 0.7, all, "mediterranean", veg, "dairy"},
	{"Pumpkin Seeds", planner.RoleTopping, "fat", 5, 2, 7, 0.4, all, "mexican", vegan, ""},

	{"Cilantro", planner.RoleGarnish, "herb", 0, 0, 0, 0.1, all, "mexican", noDiet, ""},
	{"Scallion", planner.RoleGarnish, "herb", 0, 2, 0, 0.1, all, "asian", noDiet, ""},
	{"Parsley", planner.RoleGarnish, "herb", 0, 1, 0, 0.1, all, "mediterranean", noDiet, ""},
	{"Lime Wedge", planner.RoleGarnish, "fruit", 0, 1, 0, 0.1, all, "universal", noDiet, ""},
}

// SeedPairing is a known-good combination by ingredient name.
type SeedPairing struct {
	A, B  string
	Score int
}

var seedPairings = []SeedPairing{
	{"Salmon Fillet", "Lemon Vinaigrette", 9},
	{"Firm Tofu", "Teriyaki Sauce", 9},
	{"Turkey Mince", "Salsa Verde", 8},
	{"Greek Yogurt", "Blueberries", 8},
	{"Chicken Breast", "Basil Pesto", 7},
	{"Black Beans", "Avocado", 8},
	{"Beef Sirloin", "Broccoli", 6},
}

// DefaultSeed is the starter catalog loaded by the seeder and used in tests.
func DefaultSeed() []models.Ingredient {
	out := make([]models.Ingredient, 0, len(seedRows))
	for _, r := range seedRows {
		out = append(out, models.Ingredient{
			ID:              uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(r.name))),
			Name:            r.name,
			Role:            string(r.role),
			Category:        r.category,
			Protein:         r.p,
			Carbs:           r.c,
			Fat:             r.f,
			Kcal:            planner.KcalFor(r.p, r.c, r.f),
			Cuisines:        splitList(r.cuisine),
			DietTags:        splitList(r.diet),
			Allergens:       splitList(r.allergens),
			MealTypes:       splitList(r.meals),
			PricePerServing: r.price,
			Status:          models.StatusActive,
		})
	}
	return out
}

// DefaultPairings returns the pairings that go with DefaultSeed.
func DefaultPairings() []SeedPairing {
	return append([]SeedPairing(nil), seedPairings...)
}

func splitList(s string) models.JSONBStringArray {
	out := models.JSONBStringArray{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
