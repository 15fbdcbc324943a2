package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// healthTimeout bounds the pool ping behind /healthz.
const healthTimeout = 2 * time.Second

// NewRouter returns the root router with the full middleware chain installed.
// Modules register their routes on it afterwards. Anything that matches no
// route, including a known path with the wrong method, answers 404.
func NewRouter(cfg config.HTTPConfig, logger *slog.Logger, reg prometheus.Registerer) (chi.Router, error) {
	metrics, err := NewHTTPMetrics(reg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(CORS())
	if cfg.RateLimit > 0 {
		r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))
	}
	r.Use(EscapedPathRouting)

	r.NotFound(http.NotFound)
	r.MethodNotAllowed(http.NotFound)

	return r, nil
}

// NewHTTPServer builds the public listener on 0.0.0.0:<port>.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewMetricsHandler serves /metrics from gatherer and /healthz from db.
func NewMetricsHandler(gatherer prometheus.Gatherer, db Pinger) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// NewMetricsServer builds the internal listener for metrics and health.
func NewMetricsServer(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}
