package reviewservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ReviewService"

// ReviewService implements the Service interface.
type ReviewService struct {
	repo         reviewdb.Repository
	logger       *slog.Logger
	metrics      Metrics
	tracer       trace.Tracer
	queryTimeout time.Duration
}

// NewReviewService creates a new ReviewService. A positive queryTimeout bounds
// each operation, including the wait for a pooled connection.
func NewReviewService(
	repo reviewdb.Repository,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	queryTimeout time.Duration,
) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{
		repo:         repo,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		queryTimeout: queryTimeout,
	}
}

// ListCategories retrieves every category name.
func (s *ReviewService) ListCategories(ctx context.Context) ([]string, error) {
	return withTelemetry(s, ctx, "ListCategories", "", func(ctx context.Context) ([]string, error) {
		return s.repo.ListCategoryNames(ctx, nil)
	})
}

// ListReviews retrieves the reviews of one category+leaderboard pair.
func (s *ReviewService) ListReviews(ctx context.Context, categoryName, leaderboardName string) ([]reviewdomain.Review, error) {
	identifier := categoryName + "/" + leaderboardName
	return withTelemetry(s, ctx, "ListReviews", identifier, func(ctx context.Context) ([]reviewdomain.Review, error) {
		return s.repo.ListReviews(ctx, nil, categoryName, leaderboardName)
	})
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, a deadline
// and panic recovery. Every failure leaves as a *QueryError.
func withTelemetry[T any](
	s *ReviewService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[T],
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, serviceName+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.DebugContext(ctx, "Operation triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = &QueryError{Op: operationName, Err: fmt.Errorf("panic: %v", r)}
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
		}
	}()

	result, err = op(ctx)
	if err != nil {
		var zero T
		qErr := &QueryError{Op: operationName, Err: err}
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(qErr)
		span.SetStatus(codes.Error, "query failed")
		return zero, qErr
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	s.logger.DebugContext(ctx, "Operation completed successfully",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	return result, nil
}
