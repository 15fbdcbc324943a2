package reviewhandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	reviewservice "github.com/Black-And-White-Club/review-board/app/modules/review/application"
	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Path parameter names shared with the router.
const (
	ParamCategory    = "category"
	ParamLeaderboard = "leaderboard"
)

// ReviewHandlers implements the Handlers interface.
type ReviewHandlers struct {
	service reviewservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	errors  *serverErrors
}

// NewReviewHandlers creates a new ReviewHandlers instance. A nil reg leaves the
// error counter unregistered.
func NewReviewHandlers(
	service reviewservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	reg prometheus.Registerer,
) (*ReviewHandlers, error) {
	errs, err := newServerErrors(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register handler metrics: %w", err)
	}
	return &ReviewHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		errors:  errs,
	}, nil
}

func (h *ReviewHandlers) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleListCategories")
	defer span.End()

	names, err := h.service.ListCategories(ctx)
	if err != nil {
		h.serverError(ctx, w, "ListCategories", err)
		return
	}
	if names == nil {
		names = []string{}
	}

	h.writeJSON(w, r.WithContext(ctx), "ListCategories", names)
}

func (h *ReviewHandlers) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	categoryName := pathParam(r, ParamCategory)
	leaderboardName := pathParam(r, ParamLeaderboard)

	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleListReviews", trace.WithAttributes(
		attribute.String("category", categoryName),
		attribute.String("leaderboard", leaderboardName),
	))
	defer span.End()

	reviews, err := h.service.ListReviews(ctx, categoryName, leaderboardName)
	if err != nil {
		h.serverError(ctx, w, "ListReviews", err)
		return
	}
	if reviews == nil {
		reviews = []reviewdomain.Review{}
	}

	h.writeJSON(w, r.WithContext(ctx), "ListReviews", reviews)
}

// pathParam returns a route segment exactly as it appears in the escaped
// request path. Names are looked up as sent, percent escapes included.
func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// writeJSON encodes v before touching the response so an encoding failure can
// still be answered with a 500.
func (h *ReviewHandlers) writeJSON(w http.ResponseWriter, r *http.Request, operation string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.serverError(r.Context(), w, operation, fmt.Errorf("failed to encode response: %w", err))
		return
	}
	body = append(body, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write response",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}

var _ Handlers = (*ReviewHandlers)(nil)
