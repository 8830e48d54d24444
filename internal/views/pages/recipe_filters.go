package pages

import (
	"net/http"
	"strings"

	"kondate/internal/recipes"
)

// MatchMode selects how multiple ingredient keywords combine.
type MatchMode string

const (
	// MatchAll requires every keyword to match some ingredient name.
	MatchAll MatchMode = "AND"
	// MatchAny requires at least one keyword to match.
	MatchAny MatchMode = "OR"
)

// RecipeFilters capture the client-driven state for recipe lookups.
type RecipeFilters struct {
	Title       string
	Ingredients string
	Mode        MatchMode
}

// RecipeFiltersFromRequest extracts filter inputs from an HTTP request.
func RecipeFiltersFromRequest(r *http.Request) RecipeFilters {
	filters := RecipeFilters{Mode: MatchAny}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Title = strings.TrimSpace(r.FormValue("title"))
	filters.Ingredients = strings.TrimSpace(r.FormValue("ingredient"))
	if strings.EqualFold(r.FormValue("mode"), string(MatchAll)) {
		filters.Mode = MatchAll
	}
	return filters
}

// IngredientKeywords splits a comma-separated query into trimmed, non-empty
// keywords.
func IngredientKeywords(query string) []string {
	parts := strings.Split(query, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// FilterRecipes applies the provided filters to a recipe list. It is a pure
// function of its inputs; result order follows the input order. Title
// matching is case-insensitive, ingredient keyword matching is an exact
// substring match on ingredient names.
func FilterRecipes(all []recipes.Recipe, filters RecipeFilters) []recipes.Recipe {
	keywords := IngredientKeywords(filters.Ingredients)
	titleQuery := strings.ToLower(filters.Title)

	filtered := make([]recipes.Recipe, 0, len(all))
	for _, recipe := range all {
		if !containsFold(recipe.Title, titleQuery) {
			continue
		}
		if !matchesIngredients(recipe.Ingredients, keywords, filters.Mode) {
			continue
		}
		filtered = append(filtered, recipe)
	}
	return filtered
}

func matchesIngredients(ingredients []recipes.Ingredient, keywords []string, mode MatchMode) bool {
	if len(keywords) == 0 {
		return true
	}
	if mode == MatchAll {
		for _, keyword := range keywords {
			if !anyNameContains(ingredients, keyword) {
				return false
			}
		}
		return true
	}
	for _, keyword := range keywords {
		if anyNameContains(ingredients, keyword) {
			return true
		}
	}
	return false
}

func anyNameContains(ingredients []recipes.Ingredient, keyword string) bool {
	for _, ing := range ingredients {
		if strings.Contains(ing.Name, keyword) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
