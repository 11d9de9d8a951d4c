package di

import (
	"time"

	catalogadapters "artisan_backend/internal/feature/catalog/adapters"
	"artisan_backend/internal/feature/catalog/usecase"
	"artisan_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewProductRepository creates the product store, wrapped in a Redis
// cache when available. The decorator tolerates rdb == nil, so the same
// wiring works without Redis.
func NewProductRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ProductRepository {
	inner := catalogadapters.NewProductMySQL(db)
	return cache.NewCachingProductRepository(rdb, ttl, inner, "catalog")
}
