package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halleloo/fantasy-league/internal/adapters/http/api"
	"github.com/halleloo/fantasy-league/internal/adapters/http/swagger"
	app "github.com/halleloo/fantasy-league/internal/app"
	"github.com/halleloo/fantasy-league/internal/config"
	"github.com/halleloo/fantasy-league/internal/season"
	"github.com/halleloo/fantasy-league/pkg/logger"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		// Logger isn't available yet, write straight to stderr
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithRefreshQueueCapacity(cfg.RefreshQueueSize),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Load the season snapshot when one is configured; otherwise the
	// service waits for a POST /refresh.
	if cfg.SeasonFile != "" {
		snap, err := season.Load(ctx, cfg.SeasonFile)
		if err != nil {
			log.Error(ctx, "failed to load season file", logger.String("path", cfg.SeasonFile), logger.Error(err))
			return
		}
		if err := svc.ApplySnapshot(ctx, snap); err != nil {
			log.Error(ctx, "failed to apply season snapshot", logger.Error(err))
			return
		}
		log.Info(ctx, "season loaded", logger.String("path", cfg.SeasonFile))
	}

	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API documentation under /api-docs.
	swagger.Register(ctx, mux)

	// Business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	// Prometheus metrics endpoint.
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater periodically refreshes the gauges derived
// from service state.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics pushes current service stats into the gauges.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.Stats()

	if queueLen, ok := stats["refreshQueueLength"].(int); ok {
		metrics.UpdateRefreshQueueSize(queueLen)
	}
	if teams, ok := stats["teams"].(int); ok {
		metrics.UpdateTotalTeams(teams)
	}
	if contestants, ok := stats["contestants"].(int); ok {
		metrics.UpdateTotalContestants(contestants)
	}
	if aired, ok := stats["airedEpisodes"].(int); ok {
		metrics.UpdateAiredEpisodes(aired)
	}
}
