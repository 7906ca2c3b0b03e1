// Package migrations embeds the SQL schema for every supported database
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

var dialects = map[string]struct {
	dir     string
	dialect goose.Dialect
}{
	"pgx":    {dir: "postgres", dialect: goose.DialectPostgres},
	"sqlite": {dir: "sqlite", dialect: goose.DialectSQLite3},
}

// Up applies all pending migrations for driver ("pgx" or "sqlite").
func Up(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(Migrations, d.dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(d.dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
