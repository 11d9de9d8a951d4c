package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"artisan_backend/internal/feature/orders/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&CartItemModel{}, &OrderModel{}, &OrderItemModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestCartMySQL_UpsertAndItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartMySQL(db)
	ctx := context.Background()

	item := entity.CartItem{
		ProductID: "prod1",
		Name:      "Azure Glazed Vase",
		Price:     32,
		ImageURL:  "https://example.com/prod1.jpg",
		Quantity:  2,
	}
	require.NoError(t, repo.Upsert(ctx, "user1", item))

	items, err := repo.Items(ctx, "user1")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, items[0])

	// Carts are per artisan
	items, err = repo.Items(ctx, "user2")
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestCartMySQL_Upsert_ReplacesExistingLine(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{
		ProductID: "prod1", Name: "Vase", Price: 32, Quantity: 1,
	}))
	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{
		ProductID: "prod1", Name: "Vase", Price: 35, Quantity: 4,
	}))

	items, err := repo.Items(ctx, "user1")
	assert.NoError(t, err)
	require.Len(t, items, 1, "upsert must not duplicate the line")
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, float64(35), items[0].Price, "snapshot is refreshed on upsert")
}

func TestCartMySQL_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{ProductID: "prod1", Name: "Vase", Price: 32, Quantity: 1}))
	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{ProductID: "prod2", Name: "Bowl", Price: 18, Quantity: 1}))

	require.NoError(t, repo.Remove(ctx, "user1", "prod1"))

	items, err := repo.Items(ctx, "user1")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod2", items[0].ProductID)

	// Removing an absent line is not an error
	assert.NoError(t, repo.Remove(ctx, "user1", "ghost"))
}

func TestCartMySQL_Clear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{ProductID: "prod1", Name: "Vase", Price: 32, Quantity: 1}))
	require.NoError(t, repo.Upsert(ctx, "user1", entity.CartItem{ProductID: "prod2", Name: "Bowl", Price: 18, Quantity: 1}))
	require.NoError(t, repo.Upsert(ctx, "user2", entity.CartItem{ProductID: "prod3", Name: "Board", Price: 68, Quantity: 1}))

	require.NoError(t, repo.Clear(ctx, "user1"))

	items, err := repo.Items(ctx, "user1")
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	// Other carts are untouched
	items, err = repo.Items(ctx, "user2")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
