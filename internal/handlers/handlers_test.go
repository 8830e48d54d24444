package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kondate/internal/recipes"
	"kondate/models"
)

// withTestDatabase wires the package-level handler dependencies to a fresh
// in-memory database and restores the previous wiring on cleanup.
func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.Recipe{}, &models.Ingredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sm := scs.New()
	sm.Lifetime = time.Hour
	Configure(sm, db)

	t.Cleanup(func() {
		Configure(nil, nil)
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// withSession attaches a loadable session context so flash helpers work
// outside the LoadAndSave middleware.
func withSession(t *testing.T, r *http.Request) *http.Request {
	t.Helper()
	if sessionManager == nil {
		t.Fatal("session manager is not configured")
	}
	ctx, err := sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return r.WithContext(ctx)
}

// withRouteParam injects a chi URL parameter the way the router would.
func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func seedRecipe(t *testing.T, payload recipes.CreatePayload) *recipes.Recipe {
	t.Helper()
	created, err := store.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return created
}

func samplePayload() recipes.CreatePayload {
	return recipes.CreatePayload{
		Title:              "親子丼",
		Description:        "鶏肉と卵の定番丼もの。",
		CookingTimeMinutes: 15,
		Servings:           2,
		Ingredients: []recipes.Ingredient{
			{Name: "鶏もも肉", Amount: "150", Unit: "g"},
			{Name: "卵", Amount: "2", Unit: "個"},
		},
		Instructions: []string{"鶏肉を炒める", "卵でとじる"},
	}
}
