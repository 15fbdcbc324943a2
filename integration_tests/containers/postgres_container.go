package containers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	reviewsDatabase  = "reviews"
	reviewsUser      = "reviews"
	reviewsPassword  = "reviews"
	readinessTimeout = 45 * time.Second
)

// SetupPostgresContainer starts an empty reviews database and returns the
// container with a DSN that disables TLS. The database accepts queries by the
// time it returns.
func SetupPostgresContainer(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	pg, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(reviewsDatabase),
		postgres.WithUsername(reviewsUser),
		postgres.WithPassword(reviewsPassword),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx", readinessDSN).WithStartupTimeout(readinessTimeout),
		),
	)
	if err != nil {
		if pg != nil {
			_ = pg.Terminate(ctx)
		}
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx)
	if err == nil {
		dsn, err = withSSLDisabled(dsn)
	}
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to build postgres DSN: %w", err)
	}
	return pg, dsn, nil
}

func readinessDSN(host string, port nat.Port) string {
	return withHostPort(host, port.Port())
}

func withHostPort(host, port string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(reviewsUser, reviewsPassword),
		Host:     host + ":" + port,
		Path:     "/" + reviewsDatabase,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func withSSLDisabled(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
