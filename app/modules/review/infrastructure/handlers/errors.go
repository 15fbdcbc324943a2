package reviewhandlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// serverErrors counts requests answered by serverError, by operation.
type serverErrors struct {
	counter *prometheus.CounterVec
}

func newServerErrors(reg prometheus.Registerer) (*serverErrors, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_http_server_errors_total",
		Help: "Requests that failed with an internal server error.",
	}, []string{"operation"})
	if reg != nil {
		if err := reg.Register(counter); err != nil {
			return nil, err
		}
	}
	return &serverErrors{counter: counter}, nil
}

// serverError logs err and answers 500 with an empty body. Nothing about err
// reaches the client.
func (h *ReviewHandlers) serverError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	h.logger.ErrorContext(ctx, "Request failed",
		slog.String("operation", operation),
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.Any("error", err),
	)
	h.errors.counter.WithLabelValues(operation).Inc()
	w.WriteHeader(http.StatusInternalServerError)
}
