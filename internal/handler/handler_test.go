package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockStore struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func TestCORS_SetsHeadersForFrontendOrigin(t *testing.T) {
	h := New(&mockStore{}, "http://localhost:3000")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/admin/contacts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin http://localhost:3000, got %q", got)
	}
}

func TestCORS_OtherOriginGetsNoHeaders(t *testing.T) {
	h := New(&mockStore{}, "http://localhost:3000")

	req := httptest.NewRequest("GET", "/api/admin/contacts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.CORS(http.NotFoundHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	h := New(&mockStore{}, "http://localhost:3000")

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if called {
		t.Error("inner handler should not be called for OPTIONS preflight")
	}
}

// TestCORS_BareOptionsReachesRoute verifies a non-preflight OPTIONS is left
// for the route to answer.
func TestCORS_BareOptionsReachesRoute(t *testing.T) {
	for _, frontend := range []string{"", "http://localhost:3000"} {
		h := New(&mockStore{}, frontend)

		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest("OPTIONS", "/api/contact", nil)
		rec := httptest.NewRecorder()
		h.CORS(inner).ServeHTTP(rec, req)

		if !called {
			t.Errorf("frontend=%q: expected OPTIONS to reach the route", frontend)
		}
	}
}
