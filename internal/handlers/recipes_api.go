package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	applog "kondate/internal/log"
	"kondate/internal/recipes"
)

type ingredientResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type recipeResponse struct {
	ID                 uint                 `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	CookingTimeMinutes int                  `json:"cooking_time_minutes"`
	Servings           int                  `json:"servings"`
	Instructions       []string             `json:"instructions"`
	Ingredients        []ingredientResponse `json:"ingredients"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func projectRecipe(recipe recipes.Recipe) recipeResponse {
	ingredients := make([]ingredientResponse, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, ingredientResponse{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return recipeResponse{
		ID:                 recipe.ID,
		Title:              recipe.Title,
		Description:        recipe.Description,
		CookingTimeMinutes: recipe.CookingTimeMinutes,
		Servings:           recipe.Servings,
		Instructions:       recipe.Instructions,
		Ingredients:        ingredients,
		CreatedAt:          recipe.CreatedAt,
		UpdatedAt:          recipe.UpdatedAt,
	}
}

func recipeIDFromRequest(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	idValue, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", raw, "error", err)
		return 0, false
	}
	return uint(idValue), true
}

// ListRecipes returns every recipe, newest first, with ingredients included
// and instructions already decoded.
func ListRecipes(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	all, err := store.ListAll(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(all))
	for _, recipe := range all {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

// ShowRecipe returns one recipe by id.
func ShowRecipe(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	recipe, err := store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	writeJSON(w, http.StatusOK, projectRecipe(*recipe))
}

// CreateRecipe runs the submission pipeline over the flat text fields of the
// request body and reports either the created recipe's location or the
// structured failure result.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "unparseable recipe submission", "error", err)
		writeJSONError(w, http.StatusBadRequest, recipes.SubmitErrGeneric)
		return
	}

	result := recipes.Submit(r.Context(), store, rawSubmissionFromForm(r))
	if !result.OK() {
		writeJSON(w, submitFailureStatus(result), result)
		return
	}

	w.Header().Set("Location", result.Location)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       result.Recipe.ID,
		"location": result.Location,
	})
}

func rawSubmissionFromForm(r *http.Request) recipes.RawSubmission {
	return recipes.RawSubmission{
		Title:              r.FormValue("title"),
		Description:        r.FormValue("description"),
		CookingTimeMinutes: r.FormValue("cookingTimeMinutes"),
		Servings:           r.FormValue("servings"),
		Ingredients:        r.FormValue("ingredients"),
		Instructions:       r.FormValue("instructions"),
	}
}

func submitFailureStatus(result recipes.SubmitResult) int {
	switch result.Kind {
	case recipes.FailureValidation:
		return http.StatusUnprocessableEntity
	case recipes.FailureDecode:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type recipeUpdateRequest struct {
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	CookingTimeMinutes json.Number             `json:"cookingTimeMinutes"`
	Servings           json.Number             `json:"servings"`
	Ingredients        []recipes.RawIngredient `json:"ingredients"`
	Instructions       []string                `json:"instructions"`
}

// UpdateRecipe replaces a recipe's scalar fields and, when the request
// carries them, its ingredient set and instruction list. Omitted collections
// keep their stored values; the merged entity is validated as a whole before
// anything is written.
func UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	existing, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	var payload recipeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	raw := recipes.RawRecipe{
		Title:              payload.Title,
		Description:        payload.Description,
		CookingTimeMinutes: payload.CookingTimeMinutes.String(),
		Servings:           payload.Servings.String(),
		Ingredients:        payload.Ingredients,
		Instructions:       payload.Instructions,
	}
	// omitted collections validate against the stored entity
	if raw.Ingredients == nil {
		raw.Ingredients = rawIngredientsFrom(existing.Ingredients)
	}
	if raw.Instructions == nil {
		raw.Instructions = existing.Instructions
	}

	validated, violations := recipes.ValidateCreate(raw)
	if len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, recipes.SubmitResult{
			Kind:        recipes.FailureValidation,
			Error:       recipes.SubmitErrValidation,
			Details:     violations,
			FieldErrors: recipes.FieldErrors(violations),
		})
		return
	}

	params := recipes.UpdateParams{
		Title:              validated.Title,
		Description:        validated.Description,
		CookingTimeMinutes: validated.CookingTimeMinutes,
		Servings:           validated.Servings,
	}
	if payload.Ingredients != nil {
		params.Ingredients = validated.Ingredients
	}
	if payload.Instructions != nil {
		params.Instructions = validated.Instructions
	}

	updated, err := store.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to update recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
		return
	}

	writeJSON(w, http.StatusOK, projectRecipe(*updated))
}

func rawIngredientsFrom(ingredients []recipes.Ingredient) []recipes.RawIngredient {
	raw := make([]recipes.RawIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		unit := ing.Unit
		raw = append(raw, recipes.RawIngredient{Name: ing.Name, Amount: ing.Amount, Unit: &unit})
	}
	return raw
}

// DeleteRecipe removes a recipe and its ingredient rows. A missing id is a
// 404, never a silent success.
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to delete recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
