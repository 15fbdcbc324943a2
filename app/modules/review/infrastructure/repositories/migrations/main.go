package reviewmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema used by local tooling and integration tests.
// The service itself never migrates.
var Migrations = migrate.NewMigrations()
