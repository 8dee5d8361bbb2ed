package models

import (
	"time"

	"github.com/google/uuid"
)

// MealPlan is a saved weekly plan. The plan itself lives in Payload.
type MealPlan struct {
	ID        uuid.UUID     `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Preset    string        `gorm:"size:20;not null" json:"preset"`
	DailyP    float64       `gorm:"type:float;not null" json:"daily_p"`
	DailyC    float64       `gorm:"type:float;not null" json:"daily_c"`
	DailyF    float64       `gorm:"type:float;not null" json:"daily_f"`
	Seed      string        `gorm:"size:20;not null" json:"seed"`
	Payload   JSONBDocument `gorm:"type:jsonb;not null" json:"payload"`
}
