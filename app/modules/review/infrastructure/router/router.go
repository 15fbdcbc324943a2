package reviewrouter

import (
	"context"
	"log/slog"

	reviewhandlers "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Route patterns served by the review module. Both name segments must be
// non-empty, so /categories//world matches nothing.
const (
	CategoriesPattern = "/categories"
	ReviewsPattern    = "/categories/{" + reviewhandlers.ParamCategory + ":[^/]+}/{" + reviewhandlers.ParamLeaderboard + ":[^/]+}"
)

// ReviewRouter registers the review module's HTTP routes.
type ReviewRouter struct {
	logger *slog.Logger
	router chi.Router
}

// NewReviewRouter creates a new ReviewRouter.
func NewReviewRouter(logger *slog.Logger, router chi.Router) *ReviewRouter {
	return &ReviewRouter{
		logger: logger,
		router: router,
	}
}

// Configure sets up the router with handlers.
func (r *ReviewRouter) Configure(_ context.Context, handlers reviewhandlers.Handlers) error {
	r.logger.Info("Registering review module routes",
		slog.String("categories", CategoriesPattern),
		slog.String("reviews", ReviewsPattern),
	)

	r.router.Get(CategoriesPattern, handlers.HandleListCategories)
	r.router.Get(ReviewsPattern, handlers.HandleListReviews)

	r.logger.Info("Review module routes registered successfully")
	return nil
}
