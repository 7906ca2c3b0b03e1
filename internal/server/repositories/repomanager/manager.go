// Package repomanager vends repository implementations for the configured
// database and runs its schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/migrations"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/bucketlists"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so callers can
// use the same code with a plain *sql.DB or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Bucketlists(db dbx.DBTX) bucketlists.Repository
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// New returns the manager for driver ("pgx" or "sqlite").
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case config.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
