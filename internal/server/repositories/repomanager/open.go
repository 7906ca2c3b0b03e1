package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/bucketlist/internal/filex"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
)

// Open connects to the database described by driver and dsn, applies
// pending migrations and returns the handle with its manager.
//
// SQLite is limited to one open connection and always has foreign keys
// enabled so that ON DELETE CASCADE is honoured.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	m, err := New(driver)
	if err != nil {
		return nil, nil, err
	}

	if driver == config.DriverSQLite {
		if dir := sqliteDir(dsn); dir != "" {
			if err := filex.EnsureDir(dir); err != nil {
				return nil, nil, err
			}
		}
		dsn = withForeignKeys(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migrations: %w", err)
	}

	return db, m, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// sqliteDir returns the directory of a file-backed SQLite DSN, or "" for
// in-memory databases and bare file names.
func sqliteDir(dsn string) string {
	if strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, ":memory:") {
		return ""
	}
	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}
