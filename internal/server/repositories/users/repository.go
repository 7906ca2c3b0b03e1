// Package users provides storage for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// Repository persists users. Create reports common.ErrDuplicateEmail when
// the email is taken; lookups and Delete report common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
