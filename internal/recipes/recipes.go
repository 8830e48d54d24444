package recipes

import "time"

// Ingredient is a named quantity belonging to exactly one recipe. Amount is
// free-form text so values like "1/2" or "大さじ1" pass through unchanged.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Recipe is the gateway's read shape: instructions already decoded into an
// ordered list and ingredients in insertion order.
type Recipe struct {
	ID                 uint         `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	CookingTimeMinutes int          `json:"cooking_time_minutes"`
	Servings           int          `json:"servings"`
	Instructions       []string     `json:"instructions"`
	Ingredients        []Ingredient `json:"ingredients"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// CreatePayload is a fully validated, normalized recipe submission. Unit is
// always present (possibly empty), never missing.
type CreatePayload struct {
	Title              string
	Description        string
	CookingTimeMinutes int
	Servings           int
	Ingredients        []Ingredient
	Instructions       []string
}

// UpdateParams carries a full scalar set plus optional replacements for the
// child collections. A nil Ingredients or Instructions leaves the stored
// collection untouched; a non-nil value replaces it wholesale.
type UpdateParams struct {
	Title              string
	Description        string
	CookingTimeMinutes int
	Servings           int
	Ingredients        []Ingredient
	Instructions       []string
}
