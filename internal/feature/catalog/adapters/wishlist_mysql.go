package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"artisan_backend/internal/feature/catalog/usecase"
)

// WishlistModel is the GORM model for wishlist entries.
type WishlistModel struct {
	ArtisanID string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name used by GORM.
func (WishlistModel) TableName() string { return "wishlist_items" }

// wishlistMySQL stores wishlist entries with GORM.
type wishlistMySQL struct {
	db *gorm.DB
}

// NewWishlistMySQL creates a MySQL-backed WishlistRepository.
func NewWishlistMySQL(db *gorm.DB) usecase.WishlistRepository {
	return &wishlistMySQL{db: db}
}

var _ usecase.WishlistRepository = (*wishlistMySQL)(nil)

func (r *wishlistMySQL) Exists(ctx context.Context, artisanID, productID string) (bool, error) {
	var item WishlistModel
	err := r.db.WithContext(ctx).
		First(&item, "artisan_id = ? AND product_id = ?", artisanID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return true, nil
}

func (r *wishlistMySQL) Add(ctx context.Context, artisanID, productID string) error {
	item := WishlistModel{ArtisanID: artisanID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (r *wishlistMySQL) Remove(ctx context.Context, artisanID, productID string) error {
	err := r.db.WithContext(ctx).
		Where("artisan_id = ? AND product_id = ?", artisanID, productID).
		Delete(&WishlistModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

func (r *wishlistMySQL) ProductIDs(ctx context.Context, artisanID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&WishlistModel{}).
		Where("artisan_id = ?", artisanID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return ids, nil
}
