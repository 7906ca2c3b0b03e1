package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketlists_CreateGetAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "owner@example.com")

	empty, err := f.bucketlists.GetAll(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := f.bucketlists.Create(ctx, u.ID, " Travel ")
	require.NoError(t, err)
	b, err := f.bucketlists.Create(ctx, u.ID, "Books")
	require.NoError(t, err)

	assert.Equal(t, "Travel", a.Name)
	assert.Equal(t, u.ID, a.CreatedBy)
	assert.False(t, a.DateCreated.IsZero())

	all, err := f.bucketlists.GetAll(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)
}

func TestBucketlists_EmptyName(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "owner@example.com")

	_, err := f.bucketlists.Create(context.Background(), u.ID, "   ")
	require.ErrorIs(t, err, common.ErrValidation)

	b, err := f.bucketlists.Create(context.Background(), u.ID, "x")
	require.NoError(t, err)
	_, err = f.bucketlists.Rename(context.Background(), u.ID, b.ID, "")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestBucketlists_UnknownOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.bucketlists.Create(context.Background(), 404, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestBucketlists_RenameRefreshesModified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "owner@example.com")

	b, err := f.bucketlists.Create(ctx, u.ID, "old")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	renamed, err := f.bucketlists.Rename(ctx, u.ID, b.ID, "new")
	require.NoError(t, err)

	assert.Equal(t, "new", renamed.Name)
	assert.True(t, renamed.DateCreated.Equal(b.DateCreated))
	assert.True(t, renamed.DateModified.After(b.DateModified))
}

func TestBucketlists_OtherOwnerSeesNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com")
	bob := f.register(t, "bob@example.com")

	b, err := f.bucketlists.Create(ctx, alice.ID, "private")
	require.NoError(t, err)

	_, err = f.bucketlists.Get(ctx, bob.ID, b.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = f.bucketlists.Rename(ctx, bob.ID, b.ID, "mine")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.bucketlists.Delete(ctx, bob.ID, b.ID), common.ErrorNotFound)

	got, err := f.bucketlists.Get(ctx, alice.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Name)
}

func TestBucketlists_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "owner@example.com")

	b, err := f.bucketlists.Create(ctx, u.ID, "gone")
	require.NoError(t, err)

	require.NoError(t, f.bucketlists.Delete(ctx, u.ID, b.ID))
	_, err = f.bucketlists.Get(ctx, u.ID, b.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.bucketlists.Delete(ctx, u.ID, b.ID), common.ErrorNotFound)
}
