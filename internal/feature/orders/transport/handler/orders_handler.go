// Package handler exposes cart and order endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogusecase "artisan_backend/internal/feature/catalog/usecase"
	"artisan_backend/internal/feature/orders/domain/entity"
	"artisan_backend/internal/feature/orders/transport/http/dto"
	"artisan_backend/internal/feature/orders/usecase"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// OrdersUsecase defines the operations the handler needs.
type OrdersUsecase interface {
	Cart(ctx context.Context, artisanID string) ([]entity.CartItem, error)
	AddToCart(ctx context.Context, artisanID, productID string, quantity int) ([]entity.CartItem, error)
	SetQuantity(ctx context.Context, artisanID, productID string, quantity int) ([]entity.CartItem, error)
	RemoveFromCart(ctx context.Context, artisanID, productID string) ([]entity.CartItem, error)
	PlaceOrder(ctx context.Context, artisanID string, delivery entity.DeliveryDetails) (*entity.Order, error)
	ListOrders(ctx context.Context, artisanID string) ([]*entity.Order, error)
	GetOrder(ctx context.Context, artisanID, orderID string) (*entity.Order, error)
	AdvanceStatus(ctx context.Context, artisanID, orderID string) (*entity.Order, error)
}

// OrdersHandler handles cart and order HTTP requests.
type OrdersHandler struct {
	orders OrdersUsecase
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(orders OrdersUsecase) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Cart returns the caller's cart.
func (h *OrdersHandler) Cart(c *gin.Context) {
	items, err := h.orders.Cart(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddToCart puts a product in the caller's cart and returns the updated
// cart.
func (h *OrdersHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.orders.AddToCart(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), req.ProductID, req.Quantity)
	switch {
	case errors.Is(err, catalogusecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// SetQuantity changes a cart line. A quantity of zero removes it.
func (h *OrdersHandler) SetQuantity(c *gin.Context) {
	var req dto.SetQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.orders.SetQuantity(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// RemoveFromCart drops a line from the caller's cart.
func (h *OrdersHandler) RemoveFromCart(c *gin.Context) {
	items, err := h.orders.RemoveFromCart(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Checkout places an order from the cart.
func (h *OrdersHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), entity.DeliveryDetails{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if errors.Is(err, usecase.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns the caller's orders, newest first.
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one of the caller's orders.
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"))
	if errors.Is(err, usecase.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdvanceStatus moves an order to its next delivery state.
func (h *OrdersHandler) AdvanceStatus(c *gin.Context) {
	order, err := h.orders.AdvanceStatus(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), c.Param("id"))
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrOrderDelivered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to advance order"})
		return
	}
	c.JSON(http.StatusOK, order)
}
