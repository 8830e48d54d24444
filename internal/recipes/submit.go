package recipes

import (
	"context"
	"encoding/json"
	"fmt"

	applog "kondate/internal/log"
)

// Top-level submission failure messages. The generic message deliberately
// carries no internal detail; the cause is logged for operators instead.
const (
	SubmitErrValidation = "バリデーションエラー"
	SubmitErrGeneric    = "レシピの作成に失敗しました"
)

// RawSubmission is the flat set of named text fields a submitting form
// provides. Ingredients and Instructions are JSON-encoded arrays.
type RawSubmission struct {
	Title              string
	Description        string
	CookingTimeMinutes string
	Servings           string
	Ingredients        string
	Instructions       string
}

// FailureKind classifies a failed submission stage.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureDecode
	FailureValidation
	FailurePersistence
)

// SubmitResult is the typed outcome of a submission. A successful result
// carries the stored recipe and the redirect target; a failed one carries a
// top-level error, the full ordered violation list, and the per-field
// convenience mapping.
type SubmitResult struct {
	Recipe      *Recipe           `json:"-"`
	Kind        FailureKind       `json:"-"`
	Location    string            `json:"location,omitempty"`
	Error       string            `json:"error,omitempty"`
	Details     []Violation       `json:"details,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// OK reports whether the submission succeeded.
func (r SubmitResult) OK() bool {
	return r.Error == ""
}

// Submit runs the end-to-end creation pipeline: decode the serialized
// ingredient and instruction fields, normalize, validate, persist. Decode
// failures are classified separately from validation failures and surface
// only the generic message. On success the caller is expected to navigate to
// Location; listings are rendered fresh from the store, so there is no
// cached list to invalidate.
func Submit(ctx context.Context, store *Store, raw RawSubmission) SubmitResult {
	payload, failure := ValidateSubmission(ctx, raw)
	if failure != nil {
		return *failure
	}

	created, err := store.Create(ctx, payload)
	if err != nil {
		applog.Error(ctx, "failed to persist submitted recipe", "error", err)
		return SubmitResult{Kind: FailurePersistence, Error: SubmitErrGeneric}
	}

	applog.Info(ctx, "recipe created", "id", created.ID, "title", created.Title)
	return SubmitResult{
		Recipe:   created,
		Location: fmt.Sprintf("/recipes/%d", created.ID),
	}
}

// ValidateSubmission runs the decode and validation stages of the pipeline
// without persisting. A nil failure means the payload is ready to store.
func ValidateSubmission(ctx context.Context, raw RawSubmission) (CreatePayload, *SubmitResult) {
	ingredients, err := decodeIngredientsField(raw.Ingredients)
	if err != nil {
		applog.Debug(ctx, "recipe submission with malformed ingredients field", "error", err)
		return CreatePayload{}, &SubmitResult{Kind: FailureDecode, Error: SubmitErrGeneric}
	}

	instructions, err := decodeInstructionsField(raw.Instructions)
	if err != nil {
		applog.Debug(ctx, "recipe submission with malformed instructions field", "error", err)
		return CreatePayload{}, &SubmitResult{Kind: FailureDecode, Error: SubmitErrGeneric}
	}

	payload, violations := ValidateCreate(RawRecipe{
		Title:              raw.Title,
		Description:        raw.Description,
		CookingTimeMinutes: raw.CookingTimeMinutes,
		Servings:           raw.Servings,
		Ingredients:        ingredients,
		Instructions:       instructions,
	})
	if len(violations) > 0 {
		applog.Debug(ctx, "recipe submission rejected", "violations", len(violations))
		return CreatePayload{}, &SubmitResult{
			Kind:        FailureValidation,
			Error:       SubmitErrValidation,
			Details:     violations,
			FieldErrors: FieldErrors(violations),
		}
	}

	return payload, nil
}

func decodeIngredientsField(encoded string) ([]RawIngredient, error) {
	var ingredients []RawIngredient
	if err := json.Unmarshal([]byte(encoded), &ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return ingredients, nil
}

func decodeInstructionsField(encoded string) ([]string, error) {
	var instructions []string
	if err := json.Unmarshal([]byte(encoded), &instructions); err != nil {
		return nil, fmt.Errorf("decode instructions: %w", err)
	}
	return instructions, nil
}
