package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Run serves until ctx is cancelled or a listener fails, then shuts the
// listeners down within the configured shutdown timeout. In-flight requests
// are allowed to finish.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	servers := []*http.Server{app.server}
	if app.metricsServer != nil {
		servers = append(servers, app.metricsServer)
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.InfoContext(ctx, "Starting HTTP server", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listener %s failed: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		logger.Error("HTTP server failed", "error", runErr)
	}

	shutdownErr := app.shutdown(servers)
	return errors.Join(runErr, shutdownErr)
}

func (app *App) shutdown(servers []*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down %s: %w", srv.Addr, err))
		}
	}

	app.Observability.Logger.Info("HTTP servers stopped")
	return errors.Join(errs...)
}
