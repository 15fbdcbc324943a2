package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/Black-And-White-Club/review-board/db/bundb"
	"github.com/Black-And-White-Club/review-board/integration_tests/containers"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	Config        *config.Config
}

// SkipUnlessIntegration skips t under -short or when no container runtime
// is reachable.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// NewTestEnvironment starts Postgres, migrates the review schema and opens a
// pool through the pgx driver.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	cfg := config.Defaults()
	cfg.Postgres.DSN = pgConnStr
	cfg.Postgres.Driver = config.DriverPgx
	cfg.Postgres.MaxConnections = 4
	cfg.Postgres.QueryTimeout = 10 * time.Second
	bundb.ApplyPoolLimits(sqlDB, cfg.Postgres)

	db := bundb.BunDB(sqlDB)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		DB:            db,
		Config:        &cfg,
	}, nil
}

// Reset empties every review table.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanReviewTables(ctx, env.DB)
}

// Cleanup tears down all resources created for testing
func (env *TestEnvironment) Cleanup() {
	log.Println("Cleaning up test environment...")
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.DB != nil {
		env.DB.Close()
		log.Println("DB connection closed.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		} else {
			log.Println("PostgreSQL container terminated.")
		}
	}
	log.Println("Cleanup complete.")
}

// OpenPool opens a second pool on the test database through the same path
// the service uses at startup. It is closed when t finishes.
func OpenPool(t *testing.T, env *TestEnvironment) *bun.DB {
	t.Helper()
	db, err := bundb.NewBunDB(context.Background(), env.Config.Postgres, nil)
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
