package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Up applies every pending migration. dialect is a goose dialect name such
// as "postgres" or "sqlite3".
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect %q: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Version returns the version of the most recently applied migration.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("migration error setting dialect %q: %w", dialect, err)
	}

	return goose.GetDBVersionContext(ctx, db)
}
