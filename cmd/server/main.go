package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/yhteys/backend/internal/config"
	"github.com/yhteys/backend/internal/logging"
	"github.com/yhteys/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting contact server",
		"addr", cfg.Addr,
		"store", cfg.StoreBackend,
		"data_file", cfg.DataFile,
		"metrics", cfg.MetricsEnabled,
	)
	if err := server.Run(ctx, cfg); err != nil {
		stop()
		logging.Fatal("server error", "error", err)
	}
	slog.Info("server stopped")
}
