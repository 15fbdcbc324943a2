package reviewservice

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records service operation outcomes.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the service collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (Metrics, error) {
	labels := []string{"operation", "service"}
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_operation_attempts_total",
			Help: "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_operation_successes_total",
			Help: "Service operations that completed without error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_operation_failures_total",
			Help: "Service operations that failed.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "review_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

type noopMetrics struct{}

// NewNoop returns Metrics that record nothing.
func NewNoop() Metrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
