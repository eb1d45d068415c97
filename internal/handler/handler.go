package handler

import (
	"context"
	"net/http"
)

// Pinger reports whether a backing resource is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries the cross-cutting HTTP concerns: health and CORS.
type Handler struct {
	store       Pinger
	frontendURL string
}

// New creates a Handler. An empty frontendURL disables CORS headers.
func New(store Pinger, frontendURL string) *Handler {
	return &Handler{store: store, frontendURL: frontendURL}
}

// CORS allows the configured frontend origin to call the API. Only real
// preflight requests are answered here; a bare OPTIONS falls through to the
// route so it can refuse the method.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.frontendURL == "" || r.Header.Get("Origin") != h.frontendURL {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
