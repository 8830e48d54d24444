package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/gorm"

	"kondate/internal/db/mock"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	database, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("failed to open mock database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	srv, err := New(Config{Addr: ":0", Session: SessionConfig{CookieSecure: true}, Database: database})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv, database
}

func TestServerServesSeededListing(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, title := range []string{"チャーハン", "トマトパスタ", "親子丼"} {
		if !strings.Contains(body, title) {
			t.Fatalf("expected seeded recipe %q in listing", title)
		}
	}
}

func TestServerServesRecipeAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestServerCreateSetsFlashCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{
		"title":              {"カレー"},
		"description":        {"家庭のカレーです"},
		"cookingTimeMinutes": {"40"},
		"servings":           {"4"},
		"ingredients":        {`[{"name":"じゃがいも","amount":"2","unit":"個"}]`},
		"instructions":       {`["野菜を切る","煮込む"]`},
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d, body %s", rr.Code, rr.Body.String())
	}
	cookie := rr.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "kondate_session") {
		t.Fatalf("expected default session cookie on the flash write, got %q", cookie)
	}
	if !strings.Contains(cookie, "Secure") {
		t.Fatalf("expected secure cookie, got %q", cookie)
	}
}
