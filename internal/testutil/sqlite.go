// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bucketlist/internal/server/migrations"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDSN returns a DSN for a fresh, private in-memory database with
// foreign keys enforced.
func SQLiteDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
}

// NewSQLiteDB opens a migrated in-memory database that is closed when the
// test ends. A single connection is used, matching the production setup.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", SQLiteDSN())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, "sqlite"); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
