package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	templpkg "github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	applog "kondate/internal/log"
	"kondate/internal/recipes"
)

const sessionFlashKey = "flash:message"

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	store          *recipes.Store
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
	store = nil
	if db != nil {
		store = recipes.NewStore(db)
	}
}

func setFlash(r *http.Request, message string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashKey, message)
}

// takeFlash returns the pending flash message and clears it.
func takeFlash(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderComponentStatus(w http.ResponseWriter, r *http.Request, status int, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err)
	}
}
