package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/artisans/usecase"
)

// artisanMySQL persists artisan profiles with GORM.
type artisanMySQL struct {
	db *gorm.DB
}

// NewArtisanMySQL creates a MySQL-backed ArtisanRepository.
func NewArtisanMySQL(db *gorm.DB) usecase.ArtisanRepository {
	return &artisanMySQL{db: db}
}

var _ usecase.ArtisanRepository = (*artisanMySQL)(nil)

func (r *artisanMySQL) Create(ctx context.Context, profile *entity.ArtisanProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create artisan: %w", err)
	}
	return nil
}

// Update replaces the profile row and rewrites the portfolio wholesale so
// removed items disappear and the stored order matches the incoming slice.
func (r *artisanMySQL) Update(ctx context.Context, profile *entity.ArtisanProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artisan_id = ?", profile.ID).Delete(&entity.PortfolioItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear portfolio: %w", err)
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save artisan: %w", err)
		}
		return nil
	})
}

func (r *artisanMySQL) FindByID(ctx context.Context, id string) (*entity.ArtisanProfile, error) {
	var profile entity.ArtisanProfile
	err := r.db.WithContext(ctx).
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrArtisanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find artisan: %w", err)
	}
	return &profile, nil
}

func (r *artisanMySQL) List(ctx context.Context) ([]*entity.ArtisanProfile, error) {
	var profiles []*entity.ArtisanProfile
	err := r.db.WithContext(ctx).
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list artisans: %w", err)
	}
	return profiles, nil
}
