package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"artisan_backend/internal/feature/catalog/domain/entity"
)

// mockProductRepository はテスト用のProductRepositoryモック実装です。
type mockProductRepository struct {
	createFn        func(ctx context.Context, product *entity.Product) error
	updateFn        func(ctx context.Context, product *entity.Product) error
	deleteFn        func(ctx context.Context, id string) error
	findByIDFn      func(ctx context.Context, id string) (*entity.Product, error)
	listFn          func(ctx context.Context) ([]*entity.Product, error)
	listByArtisanFn func(ctx context.Context, artisanID string) ([]*entity.Product, error)
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *mockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepository) ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Product, error) {
	if m.listByArtisanFn != nil {
		return m.listByArtisanFn(ctx, artisanID)
	}
	return nil, nil
}

// TestNewCachingProductRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingProductRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "catalog",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "catalog",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingProductRepository(nil, tt.ttl, &mockProductRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingProductRepository_FindByID_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingProductRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.Product{ID: "prod1", ArtisanID: "user1", Name: "Azure Glazed Vase"}

	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Product, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingProductRepository(nil, 5*time.Minute, inner, "catalog")

	product, err := repo.FindByID(context.Background(), "prod1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != expected.ID {
		t.Errorf("expected product %q, got %q", expected.ID, product.ID)
	}
}

// TestCachingProductRepository_FindByID_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingProductRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := &entity.Product{ID: "prod1", ArtisanID: "user1", Name: "Azure Glazed Vase"}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("catalog:product:prod1").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Product, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")
	product, err := repo.FindByID(context.Background(), "prod1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if product.Name != "Azure Glazed Vase" {
		t.Errorf("unexpected product: %+v", product)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindByID_CacheMiss はキャッシュミス時に内部リポジトリから取得し、結果をキャッシュに保存することを検証します。
func TestCachingProductRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	loaded := &entity.Product{ID: "prod1", ArtisanID: "user1", Name: "Azure Glazed Vase"}
	loadedJSON, _ := json.Marshal(loaded)

	mock.ExpectGet("catalog:product:prod1").RedisNil()
	mock.ExpectSet("catalog:product:prod1", loadedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Product, error) {
			return loaded, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")
	product, err := repo.FindByID(context.Background(), "prod1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "prod1" {
		t.Errorf("unexpected product: %+v", product)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_List_CacheMiss は一覧のキャッシュミス時に内部リポジトリから取得することを検証します。
func TestCachingProductRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	loaded := []*entity.Product{
		{ID: "prod1", ArtisanID: "user1", Name: "Azure Glazed Vase"},
		{ID: "prod2", ArtisanID: "user2", Name: "Oak Serving Board"},
	}
	loadedJSON, _ := json.Marshal(loaded)

	mock.ExpectGet("catalog:all").RedisNil()
	mock.ExpectSet("catalog:all", loadedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		listFn: func(ctx context.Context) ([]*entity.Product, error) {
			return loaded, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")
	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_Update_Invalidates は更新時に関連キャッシュエントリが削除されることを検証します。
func TestCachingProductRepository_Update_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("catalog:product:prod1", "catalog:all", "catalog:artisan:user1").SetVal(3)

	inner := &mockProductRepository{}
	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")

	err := repo.Update(context.Background(), &entity.Product{ID: "prod1", ArtisanID: "user1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_Update_InnerError は内部リポジトリのエラー時にキャッシュ操作を行わないことを検証します。
func TestCachingProductRepository_Update_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	innerErr := errors.New("db error")
	inner := &mockProductRepository{
		updateFn: func(ctx context.Context, product *entity.Product) error {
			return innerErr
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")

	err := repo.Update(context.Background(), &entity.Product{ID: "prod1", ArtisanID: "user1"})
	if !errors.Is(err, innerErr) {
		t.Errorf("expected inner error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no cache operation expected on inner error: %v", err)
	}
}

// TestCachingProductRepository_Delete_Invalidates は削除時に所有者を特定して職人別キャッシュも削除されることを検証します。
func TestCachingProductRepository_Delete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("catalog:product:prod1", "catalog:all", "catalog:artisan:user1").SetVal(3)

	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Product, error) {
			return &entity.Product{ID: "prod1", ArtisanID: "user1"}, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "catalog")

	err := repo.Delete(context.Background(), "prod1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
