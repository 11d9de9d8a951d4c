package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/artisans/usecase"
)

// followMySQL stores follow edges with GORM.
type followMySQL struct {
	db *gorm.DB
}

// NewFollowMySQL creates a MySQL-backed FollowRepository.
func NewFollowMySQL(db *gorm.DB) usecase.FollowRepository {
	return &followMySQL{db: db}
}

var _ usecase.FollowRepository = (*followMySQL)(nil)

func (r *followMySQL) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var follow entity.Follow
	err := r.db.WithContext(ctx).
		First(&follow, "follower_id = ? AND followed_id = ?", followerID, followedID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return true, nil
}

func (r *followMySQL) Create(ctx context.Context, follow *entity.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (r *followMySQL) Delete(ctx context.Context, followerID, followedID string) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&entity.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *followMySQL) Following(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return ids, nil
}

func (r *followMySQL) Followers(ctx context.Context, followedID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.Follow{}).
		Where("followed_id = ?", followedID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return ids, nil
}
