package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/bucketlists"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Bucketlists(db dbx.DBTX) bucketlists.Repository {
	return bucketlists.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded SQLite schema with goose.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, config.DriverSQLite)
}
