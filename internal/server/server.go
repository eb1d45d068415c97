// Package server assembles the contact application's HTTP stack and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/yhteys/backend/internal/config"
	"github.com/yhteys/backend/internal/handler"
	"github.com/yhteys/backend/internal/metrics"
	"github.com/yhteys/backend/internal/repository"
	"github.com/yhteys/backend/internal/service"
	"github.com/yhteys/backend/internal/storage"
	"github.com/yhteys/backend/internal/web"
)

const shutdownTimeout = 5 * time.Second

// noopPinger reports the in-memory store as always usable.
type noopPinger struct{}

func (noopPinger) Ping(context.Context) error { return nil }

// NewRepository returns the contact store selected by cfg.StoreBackend,
// together with something health checks can ping.
func NewRepository(cfg *config.Config) (repository.ContactRepository, handler.Pinger) {
	if cfg.StoreBackend == config.StoreMemory {
		return repository.NewMemoryContactRepository(), noopPinger{}
	}
	store := storage.NewLocalStorage(filepath.Dir(cfg.DataFile))
	return repository.NewJSONFileContactRepository(store, filepath.Base(cfg.DataFile)), store
}

// NewHandler builds the routed and wrapped HTTP handler. Background work
// started for it (rate limiter cleanup) stops when ctx is cancelled.
func NewHandler(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	contactRepo, pinger := NewRepository(cfg)
	contactService := service.NewContactService(contactRepo)

	h := handler.New(pinger, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService, m)
	pageHandler := handler.NewPageHandler(renderer, contactHandler, contactService, loc)

	// Submissions are rate limited per client; reads are not.
	limit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitPerMinute > 0 {
		limit = handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute).Middleware
	}

	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", pageHandler.Home)
	mux.HandleFunc("GET /contact", pageHandler.ContactForm)
	mux.Handle("POST /contact", limit(http.HandlerFunc(pageHandler.ContactSubmit)))
	mux.HandleFunc("GET /admin", pageHandler.Admin)
	mux.Handle("GET /static/", web.Static())

	// API
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /api/contact", limit(http.HandlerFunc(contactHandler.Submit)))
	mux.HandleFunc("/api/contact", contactHandler.MethodNotAllowed)
	mux.HandleFunc("GET /api/admin/contacts", contactHandler.AdminList)

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	return handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))), nil
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h, err := NewHandler(ctx, cfg)
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", ln.Addr().String(), "store", cfg.StoreBackend)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Run listens on cfg.Addr and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	return Serve(ctx, ln, cfg)
}
