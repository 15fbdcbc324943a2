package bundb

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLDB(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.PostgresConfig
		wantErr bool
	}{
		{
			name: "pgdriver",
			cfg:  config.PostgresConfig{Driver: config.DriverPgdriver, DSN: "postgres://u:p@localhost:5432/reviews?sslmode=disable"},
		},
		{
			name: "pgx",
			cfg:  config.PostgresConfig{Driver: config.DriverPgx, DSN: "postgres://u:p@localhost:5432/reviews?sslmode=disable"},
		},
		{
			name:    "pgx malformed dsn",
			cfg:     config.PostgresConfig{Driver: config.DriverPgx, DSN: "postgres://u:p@localhost:notaport/reviews"},
			wantErr: true,
		},
		{
			name:    "unsupported driver",
			cfg:     config.PostgresConfig{Driver: "sqlite", DSN: "file::memory:"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqldb, err := openSQLDB(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sqldb)
			assert.NoError(t, sqldb.Close())
		})
	}
}

func TestApplyPoolLimits(t *testing.T) {
	cfg := config.PostgresConfig{
		Driver:          config.DriverPgdriver,
		DSN:             "postgres://u:p@localhost:5432/reviews?sslmode=disable",
		MaxConnections:  3,
		ConnMaxLifetime: time.Minute,
	}
	sqldb, err := openSQLDB(cfg)
	require.NoError(t, err)
	defer sqldb.Close()

	ApplyPoolLimits(sqldb, cfg)

	assert.Equal(t, 3, sqldb.Stats().MaxOpenConnections)
}

func TestNewBunDB_UnreachableIsPoolError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.PostgresConfig{
		Driver:         config.DriverPgx,
		DSN:            "postgres://u:p@127.0.0.1:1/reviews?sslmode=disable&connect_timeout=1",
		MaxConnections: 1,
	}

	db, err := NewBunDB(context.Background(), cfg, logger)
	assert.Nil(t, db)

	var poolErr *PoolError
	require.ErrorAs(t, err, &poolErr)
	assert.Contains(t, poolErr.Error(), "failed to establish connection pool")
}
