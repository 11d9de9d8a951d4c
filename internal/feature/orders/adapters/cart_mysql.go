package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artisan_backend/internal/feature/orders/domain/entity"
	"artisan_backend/internal/feature/orders/usecase"
)

// CartItemModel is the GORM model for cart lines. Name, price and image
// are snapshots taken when the product was added.
type CartItemModel struct {
	ArtisanID string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	ImageURL  string
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name used by GORM.
func (CartItemModel) TableName() string { return "cart_items" }

// cartMySQL stores cart lines with GORM.
type cartMySQL struct {
	db *gorm.DB
}

// NewCartMySQL creates a MySQL-backed CartRepository.
func NewCartMySQL(db *gorm.DB) usecase.CartRepository {
	return &cartMySQL{db: db}
}

var _ usecase.CartRepository = (*cartMySQL)(nil)

func (r *cartMySQL) Items(ctx context.Context, artisanID string) ([]entity.CartItem, error) {
	var models []CartItemModel
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	items := make([]entity.CartItem, 0, len(models))
	for _, m := range models {
		items = append(items, entity.CartItem{
			ProductID: m.ProductID,
			Name:      m.Name,
			Price:     m.Price,
			ImageURL:  m.ImageURL,
			Quantity:  m.Quantity,
		})
	}
	return items, nil
}

// Upsert inserts the line or replaces its snapshot and quantity when the
// product is already in the cart.
func (r *cartMySQL) Upsert(ctx context.Context, artisanID string, item entity.CartItem) error {
	model := CartItemModel{
		ArtisanID: artisanID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		ImageURL:  item.ImageURL,
		Quantity:  item.Quantity,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "artisan_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "image_url", "quantity", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *cartMySQL) Remove(ctx context.Context, artisanID, productID string) error {
	err := r.db.WithContext(ctx).
		Where("artisan_id = ? AND product_id = ?", artisanID, productID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (r *cartMySQL) Clear(ctx context.Context, artisanID string) error {
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
