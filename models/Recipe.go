package models

import (
	"gorm.io/gorm"
)

// Recipe is the root catalog entity. Preparation steps are stored as a
// JSON-encoded list in the Instructions text column, while ingredients are
// normalized child rows. Detail rendering depends on this asymmetry.
type Recipe struct {
	gorm.Model
	Title              string       `gorm:"size:50;not null" json:"title"`
	Description        string       `gorm:"size:500" json:"description"`
	CookingTimeMinutes int          `gorm:"not null" json:"cooking_time_minutes"`
	Servings           int          `gorm:"not null" json:"servings"`
	Instructions       string       `gorm:"type:text;not null" json:"instructions"`
	Ingredients        []Ingredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}
