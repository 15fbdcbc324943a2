package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	reviewmigrations "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories/migrations"
)

// runMigrations creates the migration tables and applies the review schema.
func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, reviewmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run review migrations: %w", err)
	}
	if group.ID == 0 {
		log.Printf("No review migrations to run")
	} else {
		log.Printf("Ran review migrations group #%d", group.ID)
	}
	return nil
}

// TruncateTables truncates the named tables
func TruncateTables(ctx context.Context, db bun.IDB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf(`"%s"`, table)
	}

	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CleanReviewTables truncates reviews and both name tables.
func CleanReviewTables(ctx context.Context, db bun.IDB) error {
	return TruncateTables(ctx, db, "reviews", "leaderboards", "categories")
}
