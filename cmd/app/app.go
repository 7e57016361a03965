// Package main is the entry point for the rate chart service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ratechart/internal/config"
	"ratechart/internal/provider"
	"ratechart/internal/service"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg         *config.Config
	logger      *zap.SugaredLogger
	registry    *prometheus.Registry
	rateService service.RateServiceInterface
	httpServer  *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	if err := app.initMetrics(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *App) initMetrics() error {
	err := errors.Join(
		app.registry.Register(collectors.NewGoCollector()),
		app.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	if err != nil {
		return fmt.Errorf("register runtime collectors: %w", err)
	}
	return nil
}

func (app *App) initServices() error {
	fetcher, err := newRatesFetcher(app.cfg, app.registry)
	if err != nil {
		return err
	}

	series := service.NewSeriesBuilder(fetcher, app.logger,
		service.WithWorkers(app.cfg.Series.Workers))
	app.rateService = service.NewRateService(fetcher, series, app.logger, app.cfg.Series)

	app.logger.Infow("Rate fetcher configured",
		"provider", "frankfurter",
		"base_url", app.cfg.Frankfurter.BaseURL,
		"timeout_sec", app.cfg.Frankfurter.Timeout)
	return nil
}

func newRatesFetcher(cfg *config.Config, reg prometheus.Registerer) (provider.RatesFetcher, error) {
	f := provider.NewFrankfurterFetcher(cfg.Frankfurter.BaseURL, cfg.Frankfurter.Timeout)

	instrumented, err := provider.NewInstrumentedFetcher(f, reg, "frankfurter")
	if err != nil {
		return nil, fmt.Errorf("instrument rate fetcher: %w", err)
	}
	return instrumented, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or server failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		return fmt.Errorf("http shutdown: %w", err)
	}

	app.logger.Infow("Shutdown complete")
	return nil
}
