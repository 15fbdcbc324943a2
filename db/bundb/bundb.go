// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// PoolError reports that the connection pool could not be established.
// It is fatal at startup.
type PoolError struct {
	Err error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("failed to establish connection pool: %v", e.Err)
}

func (e *PoolError) Unwrap() error { return e.Err }

// NewBunDB opens the shared pool described by cfg, applies its limits and
// verifies connectivity.
func NewBunDB(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*bun.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sqldb, err := openSQLDB(cfg)
	if err != nil {
		return nil, &PoolError{Err: err}
	}
	ApplyPoolLimits(sqldb, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		sqldb.Close()
		return nil, &PoolError{Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	logger.InfoContext(ctx, "Connected to PostgreSQL",
		slog.String("driver", cfg.Driver),
		slog.Int("max_connections", cfg.MaxConnections),
	)

	return BunDB(sqldb), nil
}

// BunDB returns a new bun.DB for given sql.DB connection pool.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// ApplyPoolLimits bounds the pool. Callers past the limit wait for a free
// connection until their context is done.
func ApplyPoolLimits(sqldb *sql.DB, cfg config.PostgresConfig) {
	sqldb.SetMaxOpenConns(cfg.MaxConnections)
	sqldb.SetMaxIdleConns(cfg.MaxConnections)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

func openSQLDB(cfg config.PostgresConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverPgx:
		connConfig, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DSN: %w", err)
		}
		return stdlib.OpenDB(*connConfig), nil
	case config.DriverPgdriver, "":
		connector, err := pgdriverConnector(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return sql.OpenDB(connector), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// pgdriverConnector builds a pgdriver connector. pgdriver.WithDSN panics on a
// malformed DSN, so the panic is turned back into an error here.
func pgdriverConnector(dsn string) (c driver.Connector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse DSN: %v", r)
		}
	}()
	return pgdriver.NewConnector(pgdriver.WithDSN(dsn)), nil
}
