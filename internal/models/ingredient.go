package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Ingredient is a catalog row. Nutrition is per serving.
type Ingredient struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id" validate:"required"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Name            string           `gorm:"size:255;not null;uniqueIndex" json:"name" validate:"required,max=255"`
	Role            string           `gorm:"size:50;not null;index" json:"role" validate:"required,role"`
	Category        string           `gorm:"size:50" json:"category"`
	Protein         float64          `gorm:"type:float;not null;default:0" json:"protein" validate:"gte=0"`
	Carbs           float64          `gorm:"type:float;not null;default:0" json:"carbs" validate:"gte=0"`
	Fat             float64          `gorm:"type:float;not null;default:0" json:"fat" validate:"gte=0"`
	Kcal            float64          `gorm:"type:float;not null;default:0" json:"kcal" validate:"gte=0"`
	Cuisines        JSONBStringArray `gorm:"column:cuisine;type:jsonb;not null;default:'[]'" json:"cuisine"`
	DietTags        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diet_tags"`
	Allergens       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	MealTypes       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"meal_types" validate:"dive,oneof=breakfast lunch dinner universal"`
	PricePerServing float64          `gorm:"column:price_per_serving;type:float;not null;default:0" json:"price_per_serving" validate:"gte=0"`
	Status          string           `gorm:"size:20;not null;default:'active';index" json:"status" validate:"oneof=active inactive"`
}

// IngredientPairing scores how well two ingredients go together, 0-10.
type IngredientPairing struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	IngredientA uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_a"`
	IngredientB uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_b"`
	Score       int       `gorm:"column:pairing_score;not null;check:pairing_score >= 0 AND pairing_score <= 10" json:"pairing_score"`
	CreatedAt   time.Time `json:"created_at"`
}
