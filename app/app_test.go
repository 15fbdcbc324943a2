package app

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Black-And-White-Club/review-board/app/observability"
	"github.com/Black-And-White-Club/review-board/config"
	"github.com/Black-And-White-Club/review-board/db/bundb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// unreachableDB returns a pool pointed at a closed port. Every query fails.
func unreachableDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://u:p@127.0.0.1:1/reviews?sslmode=disable")))
	return bundb.BunDB(sqldb)
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Postgres.DSN = "postgres://u:p@127.0.0.1:1/reviews?sslmode=disable"
	cfg.Postgres.QueryTimeout = 2 * time.Second
	cfg.HTTP.Port = 0
	cfg.HTTP.ShutdownTimeout = time.Second
	return &cfg
}

func TestNewAppWithDBStoreDown(t *testing.T) {
	application, err := NewAppWithDB(context.Background(), testConfig(), observability.NewNoop(), unreachableDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	for _, target := range []string{"/categories", "/categories/speed/world"} {
		t.Run(target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/speed", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewAppWithDBMetricsListener(t *testing.T) {
	cfg := testConfig()
	cfg.Observability.MetricsAddress = "127.0.0.1:0"

	application, err := NewAppWithDB(context.Background(), cfg, observability.NewNoop(), unreachableDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	require.NotNil(t, application.metricsServer)
	assert.Equal(t, "127.0.0.1:0", application.metricsServer.Addr)
	assert.Equal(t, "0.0.0.0:0", application.server.Addr)
}

func TestNewAppDuplicateRegistry(t *testing.T) {
	obs := observability.NewNoop()

	first, err := NewAppWithDB(context.Background(), testConfig(), obs, unreachableDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	_, err = NewAppWithDB(context.Background(), testConfig(), obs, unreachableDB(t))
	assert.Error(t, err)
}

func TestNewAppPoolError(t *testing.T) {
	cfg := testConfig()

	_, err := NewApp(context.Background(), cfg, observability.NewNoop())

	var poolErr *bundb.PoolError
	assert.ErrorAs(t, err, &poolErr)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Port = 0

	application, err := NewAppWithDB(context.Background(), cfg, observability.NewNoop(), unreachableDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
