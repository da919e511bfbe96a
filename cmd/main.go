// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/activity-signup/internal/config"
	"github.com/Shivanand-hulikatti/activity-signup/internal/handler"
	"github.com/Shivanand-hulikatti/activity-signup/internal/logger"
	"github.com/Shivanand-hulikatti/activity-signup/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/Shivanand-hulikatti/activity-signup/internal/service"
	"github.com/Shivanand-hulikatti/activity-signup/web"
	"go.uber.org/zap"
)

func main() {
	// ── 1. Load configuration and logger ─────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	activityRepo := repository.NewActivityRepository(
		repository.DefaultActivities(),
		repository.Options{EnforceCapacity: cfg.Registry.EnforceCapacity},
	)
	activitySvc := service.NewActivityService(activityRepo, log, m)
	activityHandler := handler.NewActivityHandler(activitySvc, log)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := handler.NewRouter(handler.RouterDeps{
		Activities: activityHandler,
		Log:        log,
		Metrics:    m,
		Static:     web.Static(),
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.Bool("enforce_capacity", cfg.Registry.EnforceCapacity))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
