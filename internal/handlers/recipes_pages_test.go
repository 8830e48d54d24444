package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kondate/internal/recipes"
)

func TestRecipeListPageRendersMatches(t *testing.T) {
	withTestDatabase(t)
	seedRecipe(t, samplePayload())

	chahan := samplePayload()
	chahan.Title = "チャーハン"
	seedRecipe(t, chahan)

	req := withSession(t, httptest.NewRequest(http.MethodGet, "/recipes?title=チャーハン", nil))
	rec := httptest.NewRecorder()
	RecipeListPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "チャーハン") {
		t.Fatal("expected matching recipe in page")
	}
	if !strings.Contains(body, "検索結果: 1 件") {
		t.Fatal("expected filtered result count")
	}
	if !strings.Contains(body, "<nav>") {
		t.Fatal("expected full document chrome for a plain request")
	}
}

func TestRecipeListPageHTMXReturnsFragment(t *testing.T) {
	withTestDatabase(t)
	seedRecipe(t, samplePayload())

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	RecipeListPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<nav>") {
		t.Fatal("fragment response must not carry document chrome")
	}
	if !strings.Contains(body, "親子丼") {
		t.Fatal("expected recipe entry in fragment")
	}
}

func TestRecipeDetailPageUnknownIDRenders404(t *testing.T) {
	withTestDatabase(t)

	req := withSession(t, withRouteParam(httptest.NewRequest(http.MethodGet, "/recipes/99", nil), "id", "99"))
	rec := httptest.NewRecorder()
	RecipeDetailPage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "レシピが見つかりません") {
		t.Fatal("expected not-found page body")
	}
}

func TestCreateRecipeFormRedirectsWithFlash(t *testing.T) {
	withTestDatabase(t)

	req := withSession(t, postForm("/recipes", createForm()))
	rec := httptest.NewRecorder()
	CreateRecipeForm(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/recipes/") {
		t.Fatalf("Location = %q, want /recipes/{id}", location)
	}

	// the flash set during creation shows on the next rendered page
	if got := takeFlash(req); got != "レシピを作成しました" {
		t.Fatalf("flash = %q, want creation message", got)
	}
}

func TestCreateRecipeFormValidationRedisplaysValues(t *testing.T) {
	withTestDatabase(t)

	form := createForm()
	form.Set("title", "")
	req := withSession(t, postForm("/recipes", form))
	rec := httptest.NewRecorder()
	CreateRecipeForm(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	body := rec.Body.String()
	if !strings.Contains(body, recipes.SubmitErrValidation) {
		t.Fatal("expected top-level validation message")
	}
	if !strings.Contains(body, "タイトルは必須です") {
		t.Fatal("expected inline title error")
	}
	if !strings.Contains(body, "基本的なチャーハンです") {
		t.Fatal("expected submitted description to be redisplayed")
	}

	all, err := store.ListAll(req.Context())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected submission must not persist, found %d recipes", len(all))
	}
}

func TestUpdateRecipeFormReplacesChildren(t *testing.T) {
	withTestDatabase(t)
	created := seedRecipe(t, samplePayload())

	form := url.Values{
		"title":              {"改訂親子丼"},
		"description":        {created.Description},
		"cookingTimeMinutes": {"20"},
		"servings":           {"3"},
		"ingredients":        {`[{"name":"鶏むね肉","amount":"200","unit":"g"}]`},
		"instructions":       {`["新しい手順"]`},
	}
	target := fmt.Sprintf("/recipes/%d", created.ID)
	req := withSession(t, withRouteParam(postForm(target, form), "id", fmt.Sprint(created.ID)))
	rec := httptest.NewRecorder()
	UpdateRecipeForm(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if location := rec.Header().Get("Location"); location != target {
		t.Fatalf("Location = %q, want %q", location, target)
	}

	updated, err := store.GetByID(req.Context(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Title != "改訂親子丼" || len(updated.Ingredients) != 1 {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestDeleteRecipeFormRedirectsToListing(t *testing.T) {
	withTestDatabase(t)
	created := seedRecipe(t, samplePayload())

	req := withSession(t, withRouteParam(
		httptest.NewRequest(http.MethodPost, fmt.Sprintf("/recipes/%d/delete", created.ID), nil),
		"id", fmt.Sprint(created.ID),
	))
	rec := httptest.NewRecorder()
	DeleteRecipeForm(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if location := rec.Header().Get("Location"); location != "/recipes" {
		t.Fatalf("Location = %q, want /recipes", location)
	}

	if _, err := store.GetByID(req.Context(), created.ID); err != recipes.ErrNotFound {
		t.Fatalf("expected recipe to be gone, got err %v", err)
	}
}

func TestEditRecipePagePrefillsForm(t *testing.T) {
	withTestDatabase(t)
	created := seedRecipe(t, samplePayload())

	req := withRouteParam(
		httptest.NewRequest(http.MethodGet, fmt.Sprintf("/recipes/%d/edit", created.ID), nil),
		"id", fmt.Sprint(created.ID),
	)
	rec := httptest.NewRecorder()
	EditRecipePage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "親子丼") {
		t.Fatal("expected stored title in form")
	}
	if !strings.Contains(body, "鶏もも肉") {
		t.Fatal("expected serialized ingredients in form")
	}
	if !strings.Contains(body, fmt.Sprintf(`action="/recipes/%d"`, created.ID)) {
		t.Fatal("expected form to post back to the recipe")
	}
}
