package reviewintegrationtests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	reviewservice "github.com/Black-And-White-Club/review-board/app/modules/review/application"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/review-board/integration_tests/testutils"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

type TestDeps struct {
	Ctx     context.Context
	Repo    reviewdb.Repository
	BunDB   *bun.DB
	Service reviewservice.Service
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing review test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
		} else {
			log.Println("Review test environment initialized successfully.")
			testEnv = env
		}
	})

	if testEnvErr != nil {
		t.Fatalf("Review test environment initialization failed: %v", testEnvErr)
	}

	if testEnv == nil {
		t.Fatalf("Review test environment not initialized")
	}

	return testEnv
}

func SetupTestReviewService(t *testing.T) TestDeps {
	t.Helper()
	testutils.SkipUnlessIntegration(t)

	env := GetTestEnv(t)

	// Reset environment for clean state
	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	repo := reviewdb.NewRepository(env.DB)
	service := reviewservice.NewReviewService(
		repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		reviewservice.NewNoop(),
		noop.NewTracerProvider().Tracer("test_review_service"),
		env.Config.Postgres.QueryTimeout,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		BunDB:   env.DB,
		Service: service,
	}
}

func seed(t *testing.T, db bun.IDB, f reviewdb.Fixture) {
	t.Helper()
	if err := reviewdb.Seed(context.Background(), db, f); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
