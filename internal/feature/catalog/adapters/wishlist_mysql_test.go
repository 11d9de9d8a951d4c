package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistMySQL_AddAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistMySQL(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "user1", "prod1")
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Add(ctx, "user1", "prod1"))

	exists, err = repo.Exists(ctx, "user1", "prod1")
	assert.NoError(t, err)
	assert.True(t, exists)

	// Wishlists are per artisan
	exists, err = repo.Exists(ctx, "user2", "prod1")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestWishlistMySQL_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "user1", "prod1"))
	require.NoError(t, repo.Remove(ctx, "user1", "prod1"))

	exists, err := repo.Exists(ctx, "user1", "prod1")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Removing an absent entry is not an error
	assert.NoError(t, repo.Remove(ctx, "user1", "prod1"))
}

func TestWishlistMySQL_ProductIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "user1", "prod1"))
	require.NoError(t, repo.Add(ctx, "user1", "prod2"))
	require.NoError(t, repo.Add(ctx, "user2", "prod3"))

	ids, err := repo.ProductIDs(ctx, "user1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"prod1", "prod2"}, ids)

	ids, err = repo.ProductIDs(ctx, "ghost")
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
