// Package bucketlists provides ownership-scoped storage for bucketlists.
package bucketlists

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// Repository persists bucketlists. Every read and write other than Create
// is scoped to the owner; a record owned by someone else is reported as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, b *models.Bucketlist) (*models.Bucketlist, error)
	GetAll(ctx context.Context, ownerID int64) ([]*models.Bucketlist, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Bucketlist, error)
	UpdateName(ctx context.Context, ownerID, id int64, name string) (*models.Bucketlist, error)
	Delete(ctx context.Context, ownerID, id int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
