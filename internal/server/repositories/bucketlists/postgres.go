package bucketlists

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// date_modified is maintained by a trigger on update.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Bucketlist) (*models.Bucketlist, error) {
	query :=
		`INSERT INTO bucketlists (name, created_by)
		 VALUES ($1, $2)
		 RETURNING id, date_created, date_modified`

	err := r.db.QueryRowContext(ctx, query, b.Name, b.CreatedBy).Scan(&b.ID, &b.DateCreated, &b.DateModified)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("owner %d: %w", b.CreatedBy, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, ownerID int64) ([]*models.Bucketlist, error) {
	query :=
		`SELECT id, name, date_created, date_modified, created_by FROM bucketlists
		 WHERE created_by = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select bucketlists: %w", err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*models.Bucketlist, error) {
	query :=
		`SELECT id, name, date_created, date_modified, created_by FROM bucketlists
		 WHERE id = $1 AND created_by = $2`

	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) UpdateName(ctx context.Context, ownerID, id int64, name string) (*models.Bucketlist, error) {
	query :=
		`UPDATE bucketlists SET name = $1
		 WHERE id = $2 AND created_by = $3
		 RETURNING id, name, date_created, date_modified, created_by`

	return scanOne(r.db.QueryRowContext(ctx, query, name, id, ownerID))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	n, err := affected(r.db.ExecContext(ctx,
		`DELETE FROM bucketlists WHERE id = $1 AND created_by = $2`, id, ownerID))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM bucketlists WHERE created_by = $1`, ownerID))
}
