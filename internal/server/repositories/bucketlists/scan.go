package bucketlists

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (*models.Bucketlist, error) {
	b := &models.Bucketlist{}
	err := row.Scan(&b.ID, &b.Name, &b.DateCreated, &b.DateModified, &b.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func scanAll(rows *sql.Rows) ([]*models.Bucketlist, error) {
	defer rows.Close()

	result := make([]*models.Bucketlist, 0)
	for rows.Next() {
		b, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
