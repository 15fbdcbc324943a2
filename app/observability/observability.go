package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName labels logs and names the tracer.
const ServiceName = "review-board"

// Observability bundles the logger, tracer and metrics registry shared by
// every component.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds the process-wide observability stack from config.
// The tracer comes from the global otel provider, which is a no-op unless
// an SDK has been installed.
func New(cfg config.ObservabilityConfig, out io.Writer) Observability {
	logger := NewLogger(cfg, out).With(slog.String("service", ServiceName))
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(ServiceName),
		Registry: registry,
	}
}

// NewNoop returns an Observability that discards logs and spans and uses a
// fresh, empty registry.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
		Registry: prometheus.NewRegistry(),
	}
}

// NewLogger creates a slog logger writing JSON or text at the configured level.
func NewLogger(cfg config.ObservabilityConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// ParseLevel maps a config level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
