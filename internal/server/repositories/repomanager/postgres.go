package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/bucketlists"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Bucketlists(db dbx.DBTX) bucketlists.Repository {
	return bucketlists.NewPostgresRepository(db)
}

// RunMigrations applies the embedded PostgreSQL schema with goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, config.DriverPostgres)
}
