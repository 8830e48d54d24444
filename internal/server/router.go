package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kondate/internal/handlers"
)

func newRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", handlers.Health)
	r.Get("/", handlers.HomePage)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", handlers.RecipeListPage)
		r.Post("/", handlers.CreateRecipeForm)
		r.Get("/new", handlers.NewRecipePage)
		r.Get("/import", handlers.ImportRecipePage)
		r.Post("/import", handlers.ImportRecipeCard)
		r.Get("/{id}", handlers.RecipeDetailPage)
		r.Post("/{id}", handlers.UpdateRecipeForm)
		r.Get("/{id}/edit", handlers.EditRecipePage)
		r.Post("/{id}/delete", handlers.DeleteRecipeForm)
	})

	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/", handlers.ListRecipes)
		r.Post("/", handlers.CreateRecipe)
		r.Get("/{id}", handlers.ShowRecipe)
		r.Put("/{id}", handlers.UpdateRecipe)
		r.Delete("/{id}", handlers.DeleteRecipe)
	})

	return r
}
