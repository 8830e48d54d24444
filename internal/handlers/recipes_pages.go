package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	applog "kondate/internal/log"
	"kondate/internal/recipes"
	"kondate/internal/views/pages"
)

// HomePage renders the landing page.
func HomePage(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, pages.Home(takeFlash(r)))
}

// RecipeListPage renders the listing with the search form applied. HTMX
// requests receive only the result fragment so the search box can refresh in
// place.
func RecipeListPage(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	all, err := store.ListAll(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to list recipes", "error", err)
		http.Error(w, "unable to load recipes", http.StatusInternalServerError)
		return
	}

	filters := pages.RecipeFiltersFromRequest(r)

	if isHTMX(r) {
		renderComponent(w, r, pages.RecipeList(all, filters))
		return
	}
	renderComponent(w, r, pages.RecipeListPage(all, filters, takeFlash(r)))
}

// RecipeDetailPage renders a single recipe or the not-found page.
func RecipeDetailPage(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
		return
	}

	recipe, err := store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
			return
		}
		applog.Error(r.Context(), "failed to load recipe", "error", err, "id", id)
		http.Error(w, "unable to load recipe", http.StatusInternalServerError)
		return
	}

	renderComponent(w, r, pages.RecipeDetailPage(*recipe, takeFlash(r)))
}

// NewRecipePage renders the empty creation form.
func NewRecipePage(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, pages.RecipeFormPage("レシピを作成", "/recipes", pages.RecipeFormValues{}, nil))
}

// CreateRecipeForm handles the creation form post. On success it redirects to
// the new recipe's detail page with a flash; on failure it re-renders the
// form with the submitted values and inline errors.
func CreateRecipeForm(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "unparseable form submission", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	raw := rawSubmissionFromForm(r)
	result := recipes.Submit(r.Context(), store, raw)
	if !result.OK() {
		values := formValuesFromSubmission(raw)
		renderComponentStatus(w, r, submitFailureStatus(result),
			pages.RecipeFormPage("レシピを作成", "/recipes", values, &result))
		return
	}

	setFlash(r, "レシピを作成しました")
	http.Redirect(w, r, result.Location, http.StatusSeeOther)
}

// EditRecipePage renders the form prefilled with the stored recipe.
func EditRecipePage(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
		return
	}

	recipe, err := store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
			return
		}
		applog.Error(r.Context(), "failed to load recipe for editing", "error", err, "id", id)
		http.Error(w, "unable to load recipe", http.StatusInternalServerError)
		return
	}

	renderComponent(w, r, pages.RecipeFormPage(
		"レシピを編集",
		fmt.Sprintf("/recipes/%d", recipe.ID),
		formValuesFromRecipe(*recipe),
		nil,
	))
}

// UpdateRecipeForm handles the edit form post. The whole entity is validated
// and, on success, the ingredient set and instruction list are replaced along
// with the scalar fields.
func UpdateRecipeForm(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "unparseable form submission", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	raw := rawSubmissionFromForm(r)
	action := fmt.Sprintf("/recipes/%d", id)

	validated, result := recipes.ValidateSubmission(r.Context(), raw)
	if result != nil {
		renderComponentStatus(w, r, submitFailureStatus(*result),
			pages.RecipeFormPage("レシピを編集", action, formValuesFromSubmission(raw), result))
		return
	}

	_, err := store.Update(r.Context(), id, recipes.UpdateParams{
		Title:              validated.Title,
		Description:        validated.Description,
		CookingTimeMinutes: validated.CookingTimeMinutes,
		Servings:           validated.Servings,
		Ingredients:        validated.Ingredients,
		Instructions:       validated.Instructions,
	})
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
			return
		}
		applog.Error(r.Context(), "failed to update recipe", "error", err, "id", id)
		failure := recipes.SubmitResult{Kind: recipes.FailurePersistence, Error: recipes.SubmitErrGeneric}
		renderComponentStatus(w, r, http.StatusInternalServerError,
			pages.RecipeFormPage("レシピを編集", action, formValuesFromSubmission(raw), &failure))
		return
	}

	setFlash(r, "レシピを更新しました")
	http.Redirect(w, r, action, http.StatusSeeOther)
}

// DeleteRecipeForm handles the delete button post and redirects back to the
// listing.
func DeleteRecipeForm(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, ok := recipeIDFromRequest(r)
	if !ok {
		renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
		return
	}

	if err := store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			renderComponentStatus(w, r, http.StatusNotFound, pages.NotFoundPage())
			return
		}
		applog.Error(r.Context(), "failed to delete recipe", "error", err, "id", id)
		http.Error(w, "unable to delete recipe", http.StatusInternalServerError)
		return
	}

	setFlash(r, "レシピを削除しました")
	http.Redirect(w, r, "/recipes", http.StatusSeeOther)
}

func formValuesFromSubmission(raw recipes.RawSubmission) pages.RecipeFormValues {
	return pages.RecipeFormValues{
		Title:              raw.Title,
		Description:        raw.Description,
		CookingTimeMinutes: raw.CookingTimeMinutes,
		Servings:           raw.Servings,
		Ingredients:        raw.Ingredients,
		Instructions:       raw.Instructions,
	}
}

func formValuesFromRecipe(recipe recipes.Recipe) pages.RecipeFormValues {
	rawIngredients := make([]recipes.RawIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		unit := ing.Unit
		rawIngredients = append(rawIngredients, recipes.RawIngredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   &unit,
		})
	}
	ingredientsJSON, _ := json.Marshal(rawIngredients)
	instructionsJSON, _ := json.Marshal(recipe.Instructions)

	return pages.RecipeFormValues{
		Title:              recipe.Title,
		Description:        recipe.Description,
		CookingTimeMinutes: fmt.Sprint(recipe.CookingTimeMinutes),
		Servings:           fmt.Sprint(recipe.Servings),
		Ingredients:        string(ingredientsJSON),
		Instructions:       string(instructionsJSON),
	}
}
