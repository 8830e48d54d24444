package recipes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation messages shown to users. These surface verbatim in forms, so
// they stay in Japanese like the rest of the UI.
const (
	msgTitleRequired          = "タイトルは必須です"
	msgTitleTooLong           = "タイトルは50文字以内で入力してください"
	msgDescriptionTooLong     = "説明は500文字以内で入力してください"
	msgCookingTimeRequired    = "調理時間は必須です"
	msgServingsRequired       = "人数は必須です"
	msgIngredientsRequired    = "材料は必須です"
	msgInstructionsRequired   = "手順は必須です"
	msgIngredientNameRequired = "材料名は必須です"
	msgIngredientNameTooLong  = "材料名は50文字以内で入力してください"
	msgAmountRequired         = "分量は必須です"
	msgAmountTooLong          = "分量は20文字以内で入力してください"
	msgUnitTooLong            = "単位は10文字以内で入力してください"
	msgInstructionRequired    = "手順を入力してください"
)

const (
	maxTitleLen          = 50
	maxDescriptionLen    = 500
	maxIngredientNameLen = 50
	maxAmountLen         = 20
	maxUnitLen           = 10
)

// Violation is a single field-rule failure. Field addresses the offending
// input, using bracket paths for array elements ("ingredients[2].name").
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RawIngredient is one candidate ingredient entry before validation. Unit is
// a pointer so an absent unit can be told apart from an empty one; both
// normalize to "".
type RawIngredient struct {
	Name   string  `json:"name"`
	Amount string  `json:"amount"`
	Unit   *string `json:"unit"`
}

// RawRecipe is the untyped bag of candidate field values handed to the
// schema. Numeric fields arrive as text and are coerced before range checks.
type RawRecipe struct {
	Title              string
	Description        string
	CookingTimeMinutes string
	Servings           string
	Ingredients        []RawIngredient
	Instructions       []string
}

// ValidateCreate checks every rule and collects every violation in one pass,
// so callers can report all problems at once. On success it returns the
// typed, normalized payload; otherwise the payload is the zero value and the
// violation list is non-empty.
func ValidateCreate(raw RawRecipe) (CreatePayload, []Violation) {
	var violations []Violation

	title := strings.TrimSpace(raw.Title)
	switch {
	case title == "":
		violations = append(violations, Violation{Field: "title", Message: msgTitleRequired})
	case utf8.RuneCountInString(title) > maxTitleLen:
		violations = append(violations, Violation{Field: "title", Message: msgTitleTooLong})
	}

	description := raw.Description
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		violations = append(violations, Violation{Field: "description", Message: msgDescriptionTooLong})
	}

	minutes, ok := coercePositiveInt(raw.CookingTimeMinutes)
	if !ok {
		violations = append(violations, Violation{Field: "cookingTimeMinutes", Message: msgCookingTimeRequired})
	}

	servings, ok := coercePositiveInt(raw.Servings)
	if !ok {
		violations = append(violations, Violation{Field: "servings", Message: msgServingsRequired})
	}

	ingredients := make([]Ingredient, 0, len(raw.Ingredients))
	if len(raw.Ingredients) == 0 {
		violations = append(violations, Violation{Field: "ingredients", Message: msgIngredientsRequired})
	}
	for i, entry := range raw.Ingredients {
		normalized, itemViolations := validateIngredient(entry, fmt.Sprintf("ingredients[%d]", i))
		violations = append(violations, itemViolations...)
		ingredients = append(ingredients, normalized)
	}

	if len(raw.Instructions) == 0 {
		violations = append(violations, Violation{Field: "instructions", Message: msgInstructionsRequired})
	}
	for i, step := range raw.Instructions {
		if strings.TrimSpace(step) == "" {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("instructions[%d]", i),
				Message: msgInstructionRequired,
			})
		}
	}

	if len(violations) > 0 {
		return CreatePayload{}, violations
	}

	return CreatePayload{
		Title:              title,
		Description:        description,
		CookingTimeMinutes: minutes,
		Servings:           servings,
		Ingredients:        ingredients,
		Instructions:       raw.Instructions,
	}, nil
}

// validateIngredient applies the per-ingredient rules and normalizes a
// missing unit to the empty string. Absence of unit is never an error.
func validateIngredient(raw RawIngredient, path string) (Ingredient, []Violation) {
	var violations []Violation

	name := strings.TrimSpace(raw.Name)
	switch {
	case name == "":
		violations = append(violations, Violation{Field: path + ".name", Message: msgIngredientNameRequired})
	case utf8.RuneCountInString(name) > maxIngredientNameLen:
		violations = append(violations, Violation{Field: path + ".name", Message: msgIngredientNameTooLong})
	}

	amount := strings.TrimSpace(raw.Amount)
	switch {
	case amount == "":
		violations = append(violations, Violation{Field: path + ".amount", Message: msgAmountRequired})
	case utf8.RuneCountInString(amount) > maxAmountLen:
		violations = append(violations, Violation{Field: path + ".amount", Message: msgAmountTooLong})
	}

	unit := ""
	if raw.Unit != nil {
		unit = strings.TrimSpace(*raw.Unit)
	}
	if utf8.RuneCountInString(unit) > maxUnitLen {
		violations = append(violations, Violation{Field: path + ".unit", Message: msgUnitTooLong})
	}

	return Ingredient{Name: name, Amount: amount, Unit: unit}, violations
}

// coercePositiveInt converts numeric-looking text to an integer >= 1.
func coercePositiveInt(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 1 {
		return 0, false
	}
	return parsed, true
}

// FieldErrors maps each top-level field to its first violation message, for
// inline form display. The full violation list keeps every entry; only this
// convenience view collapses to one per field.
func FieldErrors(violations []Violation) map[string]string {
	if len(violations) == 0 {
		return nil
	}
	errs := make(map[string]string, len(violations))
	for _, v := range violations {
		field := topLevelField(v.Field)
		if _, exists := errs[field]; !exists {
			errs[field] = v.Message
		}
	}
	return errs
}

func topLevelField(path string) string {
	if idx := strings.IndexAny(path, "[."); idx > 0 {
		return path[:idx]
	}
	return path
}
