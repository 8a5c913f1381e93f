// Package migrations embeds the schema of the device-local vault database.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies pending migrations to the SQLite database and returns how
// many were applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	// the provider must not be closed, it would close db
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}
	return len(results), nil
}
