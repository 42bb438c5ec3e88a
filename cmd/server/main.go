package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gazetteer-service/internal/api"
	"gazetteer-service/internal/bootstrap"
	"gazetteer-service/internal/config"
	"gazetteer-service/internal/platform/obs"
)

// main is the application composition root.
// It loads the catalog once, wires the optional Redis cache and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	obs.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := bootstrap.LoadGazetteer(ctx, cfg)
	if err != nil {
		return err
	}

	nearestCache, closeCache, err := bootstrap.OpenCache(ctx, cfg)
	if err != nil {
		// The cache is optional; serve uncached rather than refuse to start.
		slog.Warn("nearest cache disabled", "addr", cfg.RedisAddr, "err", err)
	}
	defer func() { _ = closeCache() }()

	router := api.NewRouter(g, nearestCache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "settlements", g.Len(), "cache", nearestCache != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
