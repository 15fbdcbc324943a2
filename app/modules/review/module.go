package review

import (
	"context"
	"fmt"

	reviewservice "github.com/Black-And-White-Club/review-board/app/modules/review/application"
	reviewhandlers "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/handlers"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	reviewrouter "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/router"
	"github.com/Black-And-White-Club/review-board/app/observability"
	"github.com/Black-And-White-Club/review-board/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the review module.
type Module struct {
	ReviewService reviewservice.Service
	ReviewRouter  *reviewrouter.ReviewRouter
	observability observability.Observability
}

// NewReviewModule creates the review module on the shared pool and registers
// its routes on httpRouter.
func NewReviewModule(
	ctx context.Context,
	cfg config.PostgresConfig,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "review.NewReviewModule initializing")

	// 1. Initialize Repository
	repo := reviewdb.NewRepository(db)

	// 2. Initialize Metrics
	metrics, err := reviewservice.NewPrometheusMetrics(obs.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register review metrics: %w", err)
	}

	// 3. Initialize Service
	service := reviewservice.NewReviewService(repo, logger, metrics, tracer, cfg.QueryTimeout)

	// 4. Initialize Handlers
	handlers, err := reviewhandlers.NewReviewHandlers(service, logger, tracer, obs.Registry)
	if err != nil {
		return nil, err
	}

	// 5. Initialize Router and register routes
	router := reviewrouter.NewReviewRouter(logger, httpRouter)
	if err := router.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure review router: %w", err)
	}

	return &Module{
		ReviewService: service,
		ReviewRouter:  router,
		observability: obs,
	}, nil
}

// Close releases module resources. The pool belongs to the caller.
func (m *Module) Close() error {
	m.observability.Logger.Info("Review module stopped")
	return nil
}
