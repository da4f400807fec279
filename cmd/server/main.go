// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("catalog", cfg.Data.CatalogPath).
		Str("similarity", cfg.Data.SimilarityPath).
		Msg("Starting ReelMatch server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if code := run(ctx, cancel, cfg); code != 0 {
		os.Exit(code)
	}
}

// run owns every resource that needs closing, so deferred cleanup runs
// before main exits.
//
//nolint:gocyclo // sequential setup steps
func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) int {
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Data.DownloadTimeout)
	engine, err := app.LoadEngine(loadCtx, cfg)
	loadCancel()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load dataset")
		return 1
	}

	posters, err := app.NewPosterStack(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize poster lookup")
		return 1
	}
	defer func() {
		if err := posters.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	perf := middleware.NewPerformanceMonitor(1000, time.Second)

	handlerOpts := []api.HandlerOption{api.WithPerformanceMonitor(perf)}
	if posters.Breaker != nil {
		handlerOpts = append(handlerOpts, api.WithBreakerState(posters.BreakerState))
	}
	handler := api.NewHandler(engine, posters.Resolver, api.HandlerConfig{
		MaxK:           cfg.Recommend.MaxK,
		PostersEnabled: posters.Enabled,
		Version:        version,
	}, handlerOpts...)

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg), perf)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	tasks := []services.MaintenanceTask{{
		Name: "recommendation-cache",
		Cleaner: services.CleanerFunc(func(context.Context) (int, error) {
			return engine.CleanupCache(), nil
		}),
	}}
	if posters.Cleaner != nil {
		tasks = append(tasks, services.MaintenanceTask{
			Name:    "poster-cache",
			Cleaner: services.CleanerFunc(posters.Cleaner),
		})
	}
	tree.AddDataService(services.NewMaintenanceService(services.MaintenanceServiceConfig{
		Interval: cfg.Poster.CleanupInterval,
	}, logging.WithComponent("maintenance"), tasks...))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().
		Int("movies", engine.Size()).
		Bool("posters_enabled", posters.Enabled).
		Str("poster_cache", cfg.Poster.Cache).
		Msg("Starting supervisor tree")

	// ServeBackground delivers exactly one value and never closes the channel.
	errCh := tree.ServeBackground(ctx)
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped")
	return 0
}
