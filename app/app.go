package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/review-board/app/modules/review"
	"github.com/Black-And-White-Club/review-board/app/observability"
	"github.com/Black-And-White-Club/review-board/app/server"
	"github.com/Black-And-White-Club/review-board/config"
	"github.com/Black-And-White-Club/review-board/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
)

// App wires config, observability, the shared pool, the review module and
// the HTTP listeners together.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	ReviewModule  *review.Module

	router        chi.Router
	server        *http.Server
	metricsServer *http.Server
}

// NewApp opens the pool described by cfg and builds the application on it.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	db, err := bundb.NewBunDB(ctx, cfg.Postgres, obs.Logger)
	if err != nil {
		return nil, err
	}

	app, err := NewAppWithDB(ctx, cfg, obs, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// NewAppWithDB builds the application on an existing pool. The pool is
// closed by Close.
func NewAppWithDB(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB) (*App, error) {
	if err := obs.Registry.Register(collectors.NewDBStatsCollector(db.DB, "review")); err != nil {
		return nil, fmt.Errorf("failed to register pool metrics: %w", err)
	}

	router, err := server.NewRouter(cfg.HTTP, obs.Logger, obs.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build router: %w", err)
	}

	reviewModule, err := review.NewReviewModule(ctx, cfg.Postgres, obs, db, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize review module: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		ReviewModule:  reviewModule,
		router:        router,
		server:        server.NewHTTPServer(cfg.HTTP, router, obs.Logger),
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		app.metricsServer = server.NewMetricsServer(addr, server.NewMetricsHandler(obs.Registry, db), obs.Logger)
	}

	return app, nil
}

// Handler returns the public HTTP handler.
func (app *App) Handler() http.Handler {
	return app.router
}

// Close releases the module and the pool.
func (app *App) Close() error {
	logger := app.Observability.Logger

	if app.ReviewModule != nil {
		if err := app.ReviewModule.Close(); err != nil {
			logger.Error("Error closing review module", "error", err)
		}
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	logger.Info("Application closed")
	return nil
}
