package reviewhandlerintegrationtests

import (
	"context"
	"log"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/review-board/app"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/review-board/app/observability"
	"github.com/Black-And-White-Club/review-board/integration_tests/testutils"
	"github.com/uptrace/bun"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

type TestDeps struct {
	App    *app.App
	Server *httptest.Server
	DB     *bun.DB
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing review handler test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
		} else {
			testEnv = env
		}
	})

	if testEnvErr != nil {
		t.Fatalf("Review handler test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Review handler test environment not initialized")
	}
	return testEnv
}

// SetupTestServer builds the full application on its own pool and serves it
// over a local listener. Tables are emptied first.
func SetupTestServer(t *testing.T) TestDeps {
	t.Helper()
	testutils.SkipUnlessIntegration(t)

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	db := testutils.OpenPool(t, env)
	application, err := app.NewAppWithDB(context.Background(), env.Config, observability.NewNoop(), db)
	if err != nil {
		t.Fatalf("Failed to build application: %v", err)
	}

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Close()
	})

	return TestDeps{App: application, Server: srv, DB: db}
}

func seed(t *testing.T, db bun.IDB, f reviewdb.Fixture) {
	t.Helper()
	if err := reviewdb.Seed(context.Background(), db, f); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
