package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository_Lifecycle(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "alice@example.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "h1", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, repo.Delete(ctx, u.ID), common.ErrorNotFound)
}

func TestSQLiteRepository_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "a"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "b"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	still, err := repo.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, still.ID)
	assert.Equal(t, "a", still.PasswordHash)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
