// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"artisan_backend/internal/feature/catalog/domain/entity"
	"artisan_backend/internal/feature/catalog/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads go through the cache; every
// write invalidates the affected entries.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "catalog".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "catalog"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// Create inserts a product and invalidates the list entries.
func (c *CachingProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := c.inner.Create(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product)
	return nil
}

// Update replaces a product and invalidates its entries.
func (c *CachingProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if err := c.inner.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product)
	return nil
}

// Delete removes a product and invalidates its entries. The owning artisan
// is read before deletion so the per-artisan list can be dropped too.
func (c *CachingProductRepository) Delete(ctx context.Context, id string) error {
	var owner string
	if p, err := c.inner.FindByID(ctx, id); err == nil {
		owner = p.ArtisanID
	}
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, &entity.Product{ID: id, ArtisanID: owner})
	return nil
}

// FindByID retrieves a product, checking cache first then falling back to
// the database.
func (c *CachingProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.productKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// ListByArtisan retrieves one artisan's listings through the cache.
func (c *CachingProductRepository) ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Product, error) {
	return c.cachedList(ctx, c.artisanKey(artisanID), func(ctx context.Context) ([]*entity.Product, error) {
		return c.inner.ListByArtisan(ctx, artisanID)
	})
}

// List retrieves the full catalog through the cache.
func (c *CachingProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return c.cachedList(ctx, c.allKey(), c.inner.List)
}

func (c *CachingProductRepository) cachedList(ctx context.Context, key string, load func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error) {
	if c.rdb == nil {
		return load(ctx)
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []*entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate drops the entries a write could have made stale. Best effort:
// a failed deletion leaves an entry to expire by TTL.
func (c *CachingProductRepository) invalidate(ctx context.Context, product *entity.Product) {
	if c.rdb == nil {
		return
	}
	keys := []string{c.productKey(product.ID), c.allKey()}
	if product.ArtisanID != "" {
		keys = append(keys, c.artisanKey(product.ArtisanID))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *CachingProductRepository) productKey(id string) string {
	return fmt.Sprintf("%s:product:%s", c.namespace, id)
}

func (c *CachingProductRepository) artisanKey(artisanID string) string {
	return fmt.Sprintf("%s:artisan:%s", c.namespace, artisanID)
}

func (c *CachingProductRepository) allKey() string {
	return fmt.Sprintf("%s:all", c.namespace)
}
