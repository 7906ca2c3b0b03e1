package bucketlists

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// date_modified is maintained by a trigger on update of name.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteColumns = `id, name, date_created, date_modified, created_by`

func (r *SQLiteRepository) Create(ctx context.Context, b *models.Bucketlist) (*models.Bucketlist, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO bucketlists (name, created_by) VALUES (?, ?)`, b.Name, b.CreatedBy)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("owner %d: %w", b.CreatedBy, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("failed to insert bucketlist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return r.Get(ctx, b.CreatedBy, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context, ownerID int64) ([]*models.Bucketlist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteColumns+` FROM bucketlists WHERE created_by = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select bucketlists: %w", err)
	}
	return scanAll(rows)
}

func (r *SQLiteRepository) Get(ctx context.Context, ownerID, id int64) (*models.Bucketlist, error) {
	return scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM bucketlists WHERE id = ? AND created_by = ?`, id, ownerID))
}

func (r *SQLiteRepository) UpdateName(ctx context.Context, ownerID, id int64, name string) (*models.Bucketlist, error) {
	n, err := affected(r.db.ExecContext(ctx,
		`UPDATE bucketlists SET name = ? WHERE id = ? AND created_by = ?`, name, id, ownerID))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}
	return r.Get(ctx, ownerID, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id int64) error {
	n, err := affected(r.db.ExecContext(ctx,
		`DELETE FROM bucketlists WHERE id = ? AND created_by = ?`, id, ownerID))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM bucketlists WHERE created_by = ?`, ownerID))
}
