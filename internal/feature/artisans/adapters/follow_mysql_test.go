package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan_backend/internal/feature/artisans/domain/entity"
)

func TestFollowMySQL_CreateAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowMySQL(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "user1", "user2")
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, &entity.Follow{FollowerID: "user1", FollowedID: "user2"}))

	exists, err = repo.Exists(ctx, "user1", "user2")
	assert.NoError(t, err)
	assert.True(t, exists)

	// The edge is directed
	exists, err = repo.Exists(ctx, "user2", "user1")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowMySQL_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Follow{FollowerID: "user1", FollowedID: "user2"}))
	require.NoError(t, repo.Delete(ctx, "user1", "user2"))

	exists, err := repo.Exists(ctx, "user1", "user2")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting an absent edge is not an error
	assert.NoError(t, repo.Delete(ctx, "user1", "user2"))
}

func TestFollowMySQL_FollowingAndFollowers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Follow{FollowerID: "user1", FollowedID: "user2"}))
	require.NoError(t, repo.Create(ctx, &entity.Follow{FollowerID: "user1", FollowedID: "user3"}))
	require.NoError(t, repo.Create(ctx, &entity.Follow{FollowerID: "user3", FollowedID: "user2"}))

	following, err := repo.Following(ctx, "user1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"user2", "user3"}, following)

	followers, err := repo.Followers(ctx, "user2")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"user1", "user3"}, followers)

	following, err = repo.Following(ctx, "ghost")
	assert.NoError(t, err)
	assert.Empty(t, following)
}
