// Package usecase implements the cart and order workflow.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	catalogentity "artisan_backend/internal/feature/catalog/domain/entity"
	"artisan_backend/internal/feature/orders/domain/entity"
)

const (
	// deliveryLeadDays is added to the placement time to set the
	// expected delivery date.
	deliveryLeadDays = 5

	// shipmentOrigin is the dispatch location printed on tracking.
	shipmentOrigin = "Warehouse, Willow Creek"
)

// CartRepository abstracts the cart store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CartRepository interface {
	Items(ctx context.Context, artisanID string) ([]entity.CartItem, error)
	// Upsert inserts the line or replaces its quantity when present.
	Upsert(ctx context.Context, artisanID string, item entity.CartItem) error
	Remove(ctx context.Context, artisanID, productID string) error
	Clear(ctx context.Context, artisanID string) error
}

// OrderRepository abstracts the order store.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	// ListByArtisan returns orders newest first.
	ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
}

// ProductCatalog resolves product ids to listings at cart and checkout
// time.
type ProductCatalog interface {
	FindByID(ctx context.Context, id string) (*catalogentity.Product, error)
}

// SaleRecorder feeds completed checkouts into the seller's dashboard.
type SaleRecorder interface {
	RecordSale(ctx context.Context, artisanID string, amount float64) error
}

// ordersUsecase implements cart and order logic.
type ordersUsecase struct {
	carts   CartRepository
	orders  OrderRepository
	catalog ProductCatalog
	sales   SaleRecorder
	now     func() time.Time
}

// NewOrdersUsecase creates a new ordersUsecase.
func NewOrdersUsecase(carts CartRepository, orders OrderRepository, catalog ProductCatalog, sales SaleRecorder) *ordersUsecase {
	return &ordersUsecase{
		carts:   carts,
		orders:  orders,
		catalog: catalog,
		sales:   sales,
		now:     time.Now,
	}
}

// Cart returns the artisan's current cart.
func (u *ordersUsecase) Cart(ctx context.Context, artisanID string) ([]entity.CartItem, error) {
	return u.carts.Items(ctx, artisanID)
}

// AddToCart puts a product in the cart. Adding a product already present
// merges into the existing line by summing quantities. Name, price and
// image are snapshotted from the listing at add time.
func (u *ordersUsecase) AddToCart(ctx context.Context, artisanID, productID string, quantity int) ([]entity.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := u.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := u.carts.Items(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	line := entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  quantity,
	}
	for _, existing := range items {
		if existing.ProductID == productID {
			line.Quantity += existing.Quantity
			break
		}
	}
	if err := u.carts.Upsert(ctx, artisanID, line); err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return u.carts.Items(ctx, artisanID)
}

// SetQuantity changes a cart line's quantity. Zero or less removes the
// line.
func (u *ordersUsecase) SetQuantity(ctx context.Context, artisanID, productID string, quantity int) ([]entity.CartItem, error) {
	if quantity <= 0 {
		if err := u.carts.Remove(ctx, artisanID, productID); err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return u.carts.Items(ctx, artisanID)
	}

	items, err := u.carts.Items(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	for _, existing := range items {
		if existing.ProductID == productID {
			existing.Quantity = quantity
			if err := u.carts.Upsert(ctx, artisanID, existing); err != nil {
				return nil, fmt.Errorf("failed to update cart: %w", err)
			}
			break
		}
	}
	return u.carts.Items(ctx, artisanID)
}

// RemoveFromCart drops a line from the cart.
func (u *ordersUsecase) RemoveFromCart(ctx context.Context, artisanID, productID string) ([]entity.CartItem, error) {
	if err := u.carts.Remove(ctx, artisanID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return u.carts.Items(ctx, artisanID)
}

// PlaceOrder turns the cart into an order. Every line is re-resolved
// against the catalog at checkout: the current listing price counts
// toward the total and lines whose product has since been deleted are
// priced at zero. The expected delivery date is five days out and the
// cart is emptied on success. Each seller's dashboard is credited with
// their share of the sale; a recording failure does not fail the
// checkout.
func (u *ordersUsecase) PlaceOrder(ctx context.Context, artisanID string, delivery entity.DeliveryDetails) (*entity.Order, error) {
	items, err := u.carts.Items(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	placedAt := u.now()
	order := &entity.Order{
		ID:               fmt.Sprintf("ORD-%d", placedAt.UnixMilli()),
		ArtisanID:        artisanID,
		Status:           entity.StatusPlaced,
		Delivery:         delivery,
		Origin:           shipmentOrigin,
		PlacedAt:         placedAt,
		ExpectedDelivery: placedAt.AddDate(0, 0, deliveryLeadDays),
	}
	bySeller := map[string]float64{}
	for _, item := range items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
		product, err := u.catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			continue
		}
		line := product.Price * float64(item.Quantity)
		order.Total += line
		bySeller[product.ArtisanID] += line
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := u.carts.Clear(ctx, artisanID); err != nil {
		slog.Warn("failed to clear cart after checkout", "artisanID", artisanID, "error", err)
	}
	u.recordSales(ctx, bySeller)

	return order, nil
}

// recordSales credits each seller's dashboard with their share of a
// checkout.
func (u *ordersUsecase) recordSales(ctx context.Context, bySeller map[string]float64) {
	for sellerID, amount := range bySeller {
		if err := u.sales.RecordSale(ctx, sellerID, amount); err != nil {
			slog.Warn("failed to record sale", "sellerID", sellerID, "error", err)
		}
	}
}

// ListOrders returns the artisan's orders, newest first.
func (u *ordersUsecase) ListOrders(ctx context.Context, artisanID string) ([]*entity.Order, error) {
	return u.orders.ListByArtisan(ctx, artisanID)
}

// GetOrder returns one order. An order belonging to someone else is
// reported as not found.
func (u *ordersUsecase) GetOrder(ctx context.Context, artisanID, orderID string) (*entity.Order, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ArtisanID != artisanID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdvanceStatus moves an order to the next delivery state. Delivered
// orders cannot advance.
func (u *ordersUsecase) AdvanceStatus(ctx context.Context, artisanID, orderID string) (*entity.Order, error) {
	order, err := u.GetOrder(ctx, artisanID, orderID)
	if err != nil {
		return nil, err
	}
	next, ok := order.Status.Next()
	if !ok {
		return nil, ErrOrderDelivered
	}
	if err := u.orders.UpdateStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = next
	return order, nil
}
