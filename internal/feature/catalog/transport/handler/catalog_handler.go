// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_backend/internal/feature/catalog/domain/entity"
	"artisan_backend/internal/feature/catalog/transport/http/dto"
	"artisan_backend/internal/feature/catalog/usecase"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// CatalogUsecase は商品操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, requesterID string, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, requesterID, productID string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Suggestions(ctx context.Context, viewerID string) ([]*entity.Product, error)
	ToggleWishlist(ctx context.Context, artisanID, productID string) (bool, error)
	Wishlist(ctx context.Context, artisanID string) ([]*entity.Product, error)
}

// ViewRecorder は閲覧履歴の記録インターフェースです。
type ViewRecorder interface {
	RecordView(ctx context.Context, artisanID, productID string) error
}

// CatalogHandler は商品関連のHTTPリクエストを処理します。
type CatalogHandler struct {
	catalog CatalogUsecase
	views   ViewRecorder
}

// NewCatalogHandler は指定されたusecaseでCatalogHandlerの新しいインスタンスを生成します。
func NewCatalogHandler(catalog CatalogUsecase, views ViewRecorder) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, views: views}
}

// List は商品一覧をJSONで返します。qクエリがあれば検索になります。
//
// エンドポイント例:
// GET /products?q=ceramic
func (h *CatalogHandler) List(c *gin.Context) {
	var (
		products []*entity.Product
		err      error
	)
	if q := c.Query("q"); q != "" {
		products, err = h.catalog.Search(c.Request.Context(), q)
	} else {
		products, err = h.catalog.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get は指定IDの商品を返し、ログイン中であれば閲覧履歴に記録します。
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.catalog.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	// 閲覧履歴はベストエフォート。失敗してもレスポンスは返す。
	if artisanID := c.GetString(jwtmw.ContextArtisanID); artisanID != "" {
		if err := h.views.RecordView(c.Request.Context(), artisanID, product.ID); err != nil {
			slog.Warn("failed to record view", "artisan_id", artisanID, "product_id", product.ID, "error", err)
		}
	}
	c.JSON(http.StatusOK, product)
}

// ListByArtisan は指定した職人の商品一覧を返します。
func (h *CatalogHandler) ListByArtisan(c *gin.Context) {
	products, err := h.catalog.ListByArtisan(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create は新しい商品を登録します。所有者は認証済みユーザーです。
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &entity.Product{
		ArtisanID:   c.GetString(jwtmw.ContextArtisanID),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	created, err := h.catalog.CreateProduct(c.Request.Context(), product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update は既存の商品を置き換えます。所有者以外は403です。
func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &entity.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	updated, err := h.catalog.UpdateProduct(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), product)
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrNotProductOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete は商品を削除します。所有者以外は403です。
func (h *CatalogHandler) Delete(c *gin.Context) {
	err := h.catalog.DeleteProduct(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"))
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrNotProductOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Suggestions は閲覧履歴に基づくおすすめ商品を返します。
func (h *CatalogHandler) Suggestions(c *gin.Context) {
	products, err := h.catalog.Suggestions(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build suggestions"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ToggleWishlist はウィッシュリストの登録状態を反転します。
func (h *CatalogHandler) ToggleWishlist(c *gin.Context) {
	wishlisted, err := h.catalog.ToggleWishlist(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"))
	if errors.Is(err, usecase.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle wishlist"})
		return
	}
	c.JSON(http.StatusOK, dto.ToggleWishlistRes{Wishlisted: wishlisted})
}

// Wishlist はウィッシュリストの商品一覧を返します。
func (h *CatalogHandler) Wishlist(c *gin.Context) {
	products, err := h.catalog.Wishlist(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, products)
}
