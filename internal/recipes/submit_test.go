package recipes

import (
	"context"
	"fmt"
	"testing"
)

func validSubmission() RawSubmission {
	return RawSubmission{
		Title:              "チャーハン",
		Description:        "基本的なチャーハンです",
		CookingTimeMinutes: "15",
		Servings:           "2",
		Ingredients:        `[{"name":"ご飯","amount":"300","unit":"g"},{"name":"醤油","amount":"大さじ1"}]`,
		Instructions:       `["卵を溶く","ご飯を炒める"]`,
	}
}

func TestSubmitCreatesRecipe(t *testing.T) {
	store := newTestStore(t)

	result := Submit(context.Background(), store, validSubmission())
	if !result.OK() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Recipe == nil || result.Recipe.ID == 0 {
		t.Fatalf("expected stored recipe in result, got %+v", result.Recipe)
	}
	if want := fmt.Sprintf("/recipes/%d", result.Recipe.ID); result.Location != want {
		t.Fatalf("Location = %q, want %q", result.Location, want)
	}
	if result.Recipe.Ingredients[1].Unit != "" {
		t.Fatalf("missing unit must reach persistence as empty string, got %q", result.Recipe.Ingredients[1].Unit)
	}
}

func TestSubmitMalformedIngredientsIsDecodeFailure(t *testing.T) {
	store := newTestStore(t)

	raw := validSubmission()
	raw.Ingredients = `{"name": "broken"`

	result := Submit(context.Background(), store, raw)
	if result.OK() {
		t.Fatal("expected failure for malformed ingredients JSON")
	}
	if result.Error != SubmitErrGeneric {
		t.Fatalf("decode failures must use the generic message, got %q", result.Error)
	}
	if result.Kind != FailureDecode {
		t.Fatalf("expected decode failure classification, got %v", result.Kind)
	}
	if len(result.Details) != 0 {
		t.Fatalf("decode failures carry no field violations, got %+v", result.Details)
	}

	recipes, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("failed submission must not persist, found %d recipes", len(recipes))
	}
}

func TestSubmitMalformedInstructionsIsDecodeFailure(t *testing.T) {
	store := newTestStore(t)

	raw := validSubmission()
	raw.Instructions = `"not an array`

	result := Submit(context.Background(), store, raw)
	if result.Error != SubmitErrGeneric {
		t.Fatalf("expected generic message, got %q", result.Error)
	}
}

func TestSubmitValidationFailureReportsEveryViolation(t *testing.T) {
	store := newTestStore(t)

	raw := validSubmission()
	raw.Title = ""
	raw.Servings = "0"
	raw.Ingredients = `[{"name":"","amount":""}]`

	result := Submit(context.Background(), store, raw)
	if result.Error != SubmitErrValidation {
		t.Fatalf("expected validation error, got %q", result.Error)
	}
	if result.Kind != FailureValidation {
		t.Fatalf("expected validation failure classification, got %v", result.Kind)
	}

	// both violations on the same ingredient survive in the full list
	var nameSeen, amountSeen bool
	for _, v := range result.Details {
		switch v.Field {
		case "ingredients[0].name":
			nameSeen = true
		case "ingredients[0].amount":
			amountSeen = true
		}
	}
	if !nameSeen || !amountSeen {
		t.Fatalf("expected every ingredient violation in details, got %+v", result.Details)
	}

	if result.FieldErrors["title"] == "" {
		t.Fatalf("expected inline title error, got %+v", result.FieldErrors)
	}
	if result.FieldErrors["servings"] == "" {
		t.Fatalf("expected inline servings error, got %+v", result.FieldErrors)
	}
	if result.FieldErrors["ingredients"] != msgIngredientNameRequired {
		t.Fatalf("inline ingredient error must be the first violation, got %q", result.FieldErrors["ingredients"])
	}
}
