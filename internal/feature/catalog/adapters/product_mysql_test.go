package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"artisan_backend/internal/feature/catalog/domain/entity"
	"artisan_backend/internal/feature/catalog/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Product{}, &WishlistModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// newTestProduct builds a product entity for testing.
func newTestProduct(id, artisanID, name string) *entity.Product {
	return &entity.Product{
		ID:        id,
		ArtisanID: artisanID,
		Name:      name,
		Category:  "Ceramics",
		Price:     32,
		ImageURL:  "https://example.com/" + id + ".jpg",
	}
}

func TestProductMySQL_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductMySQL(db)
	ctx := context.Background()

	product := newTestProduct("prod1", "user1", "Azure Glazed Vase")
	require.NoError(t, repo.Create(ctx, product))

	found, err := repo.FindByID(ctx, "prod1")
	assert.NoError(t, err)
	assert.Equal(t, "Azure Glazed Vase", found.Name)
	assert.Equal(t, "user1", found.ArtisanID)
	assert.False(t, found.CreatedAt.IsZero(), "CreatedAt is not set")
}

func TestProductMySQL_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductMySQL(db)

	found, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	assert.Nil(t, found)
}

func TestProductMySQL_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductMySQL(db)
	ctx := context.Background()

	product := newTestProduct("prod1", "user1", "Azure Glazed Vase")
	require.NoError(t, repo.Create(ctx, product))

	product.Name = "Cobalt Glazed Vase"
	product.Price = 38
	require.NoError(t, repo.Update(ctx, product))

	found, err := repo.FindByID(ctx, "prod1")
	assert.NoError(t, err)
	assert.Equal(t, "Cobalt Glazed Vase", found.Name)
	assert.Equal(t, float64(38), found.Price)
}

func TestProductMySQL_Delete(t *testing.T) {
	t.Run("existing product", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductMySQL(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, newTestProduct("prod1", "user1", "Vase")))
		require.NoError(t, repo.Delete(ctx, "prod1"))

		_, err := repo.FindByID(ctx, "prod1")
		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductMySQL(db)

		err := repo.Delete(context.Background(), "ghost")
		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	})
}

func TestProductMySQL_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductMySQL(db)
	ctx := context.Background()

	older := newTestProduct("prod1", "user1", "Vase")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newTestProduct("prod2", "user2", "Board")
	newer.CreatedAt = time.Now()

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	products, err := repo.List(ctx)
	assert.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod2", products[0].ID, "newest listing first")
	assert.Equal(t, "prod1", products[1].ID)
}

func TestProductMySQL_ListByArtisan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestProduct("prod1", "user1", "Vase")))
	require.NoError(t, repo.Create(ctx, newTestProduct("prod2", "user1", "Bowl")))
	require.NoError(t, repo.Create(ctx, newTestProduct("prod3", "user2", "Board")))

	products, err := repo.ListByArtisan(ctx, "user1")
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.ListByArtisan(ctx, "ghost")
	assert.NoError(t, err)
	assert.Len(t, products, 0)
}
