package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan_backend/internal/feature/orders/domain/entity"
	"artisan_backend/internal/feature/orders/usecase"
)

// newTestOrder builds a placed order for testing.
func newTestOrder(id, artisanID string, placedAt time.Time) *entity.Order {
	return &entity.Order{
		ID:        id,
		ArtisanID: artisanID,
		Items: []entity.OrderItem{
			{ProductID: "prod1", Name: "Azure Glazed Vase", Price: 32, Quantity: 2},
			{ProductID: "prod2", Name: "Oak Serving Board", Price: 68, Quantity: 1},
		},
		Total:  132,
		Status: entity.StatusPlaced,
		Delivery: entity.DeliveryDetails{
			Name:          "Elena Vance",
			Email:         "elena@example.com",
			Phone:         "555-0101",
			Address:       "12 Kiln Lane, Willow Creek",
			PaymentMethod: entity.PaymentCreditCard,
		},
		Origin:           "Warehouse, Willow Creek",
		PlacedAt:         placedAt,
		ExpectedDelivery: placedAt.AddDate(0, 0, 5),
	}
}

func TestOrderMySQL_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderMySQL(db)
	ctx := context.Background()

	placed := time.Now().Truncate(time.Second)
	order := newTestOrder("ORD-1001", "user1", placed)
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, "ORD-1001")
	assert.NoError(t, err)
	assert.Equal(t, "user1", found.ArtisanID)
	assert.Equal(t, entity.StatusPlaced, found.Status)
	assert.Equal(t, float64(132), found.Total)
	assert.Equal(t, "Elena Vance", found.Delivery.Name)
	assert.Equal(t, "elena@example.com", found.Delivery.Email)
	assert.Equal(t, entity.PaymentCreditCard, found.Delivery.PaymentMethod)
	require.Len(t, found.Items, 2, "order lines round-trip with the order")
	assert.Equal(t, "prod1", found.Items[0].ProductID)
	assert.Equal(t, 2, found.Items[0].Quantity)
}

func TestOrderMySQL_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderMySQL(db)

	found, err := repo.FindByID(context.Background(), "ORD-ghost")
	assert.ErrorIs(t, err, usecase.ErrOrderNotFound)
	assert.Nil(t, found)
}

func TestOrderMySQL_ListByArtisan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderMySQL(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newTestOrder("ORD-1", "user1", now.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, newTestOrder("ORD-2", "user1", now)))
	require.NoError(t, repo.Create(ctx, newTestOrder("ORD-3", "user2", now)))

	orders, err := repo.ListByArtisan(ctx, "user1")
	assert.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-2", orders[0].ID, "newest order first")
	assert.Equal(t, "ORD-1", orders[1].ID)

	orders, err = repo.ListByArtisan(ctx, "ghost")
	assert.NoError(t, err)
	assert.Len(t, orders, 0)
}

func TestOrderMySQL_UpdateStatus(t *testing.T) {
	t.Run("existing order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderMySQL(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, newTestOrder("ORD-1", "user1", time.Now())))
		require.NoError(t, repo.UpdateStatus(ctx, "ORD-1", entity.StatusShipped))

		found, err := repo.FindByID(ctx, "ORD-1")
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusShipped, found.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderMySQL(db)

		err := repo.UpdateStatus(context.Background(), "ORD-ghost", entity.StatusShipped)
		assert.ErrorIs(t, err, usecase.ErrOrderNotFound)
	})
}
