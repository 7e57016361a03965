package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ratechart/internal/api"
	"ratechart/internal/api/middleware"
)

func (app *App) initHTTP() error {
	metrics, err := middleware.MetricsMiddleware(app.registry)
	if err != nil {
		return fmt.Errorf("register HTTP metrics: %w", err)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           app.routes(metrics),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(app.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return nil
}

func (app *App) routes(metrics func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(metrics)
	r.Use(chimiddleware.Recoverer)

	r.Group(func(r chi.Router) {
		// must expire before WriteTimeout so the error still reaches the client
		r.Use(chimiddleware.Timeout(time.Duration(app.cfg.Server.RequestTimeout) * time.Second))
		r.Get("/rates", api.HandleGetRate(app.rateService))
		r.Get("/rates/history", api.HandleGetHistory(app.rateService))
	})
	r.Get("/currencies", api.HandleGetCurrencies(app.rateService))
	r.Get("/healthz", api.HandleHealthz())

	if app.cfg.Server.ServeMetrics {
		r.Method(http.MethodGet, "/metrics", api.HandleMetrics(app.registry))
	}

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	return r
}
