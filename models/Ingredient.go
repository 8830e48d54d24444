package models

import (
	"gorm.io/gorm"
)

// Ingredient belongs to exactly one Recipe and has no independent lifecycle.
// Amount is free-form text so entries like "1/2" or "大さじ1" survive intact.
type Ingredient struct {
	gorm.Model
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	Amount   string `gorm:"size:20;not null" json:"amount"`
	Unit     string `gorm:"size:10;not null;default:''" json:"unit"`
}
