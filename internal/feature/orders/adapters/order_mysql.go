package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"artisan_backend/internal/feature/orders/domain/entity"
	"artisan_backend/internal/feature/orders/usecase"
)

// OrderModel is the GORM model for placed orders. Delivery details are
// flattened into the row.
type OrderModel struct {
	ID               string `gorm:"primaryKey;size:64"`
	ArtisanID        string `gorm:"index;size:64;not null"`
	Total            float64
	Status           string `gorm:"size:32;not null"`
	DeliveryName     string
	DeliveryEmail    string
	DeliveryPhone    string
	DeliveryAddress  string
	PaymentMethod    string `gorm:"size:32"`
	Origin           string
	PlacedAt         time.Time
	ExpectedDelivery time.Time
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name used by GORM.
func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is one purchased line frozen at checkout.
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"index;size:64;not null"`
	ProductID string `gorm:"size:64;not null"`
	Name      string `gorm:"not null"`
	Price     float64
	ImageURL  string
	Quantity  int `gorm:"not null"`
}

// TableName specifies the table name used by GORM.
func (OrderItemModel) TableName() string { return "order_items" }

// ToEntity converts the storage model to a domain order.
func (m *OrderModel) ToEntity() *entity.Order {
	order := &entity.Order{
		ID:        m.ID,
		ArtisanID: m.ArtisanID,
		Total:     m.Total,
		Status:    entity.OrderStatus(m.Status),
		Delivery: entity.DeliveryDetails{
			Name:          m.DeliveryName,
			Email:         m.DeliveryEmail,
			Phone:         m.DeliveryPhone,
			Address:       m.DeliveryAddress,
			PaymentMethod: m.PaymentMethod,
		},
		Origin:           m.Origin,
		PlacedAt:         m.PlacedAt,
		ExpectedDelivery: m.ExpectedDelivery,
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}
	return order
}

// OrderModelFromEntity converts a domain order to the storage model.
func OrderModelFromEntity(order *entity.Order) *OrderModel {
	model := &OrderModel{
		ID:               order.ID,
		ArtisanID:        order.ArtisanID,
		Total:            order.Total,
		Status:           string(order.Status),
		DeliveryName:     order.Delivery.Name,
		DeliveryEmail:    order.Delivery.Email,
		DeliveryPhone:    order.Delivery.Phone,
		DeliveryAddress:  order.Delivery.Address,
		PaymentMethod:    order.Delivery.PaymentMethod,
		Origin:           order.Origin,
		PlacedAt:         order.PlacedAt,
		ExpectedDelivery: order.ExpectedDelivery,
	}
	for _, item := range order.Items {
		model.Items = append(model.Items, OrderItemModel{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}
	return model
}

// orderMySQL stores orders with GORM.
type orderMySQL struct {
	db *gorm.DB
}

// NewOrderMySQL creates a MySQL-backed OrderRepository.
func NewOrderMySQL(db *gorm.DB) usecase.OrderRepository {
	return &orderMySQL{db: db}
}

var _ usecase.OrderRepository = (*orderMySQL)(nil)

func (r *orderMySQL) Create(ctx context.Context, order *entity.Order) error {
	model := OrderModelFromEntity(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderMySQL) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *orderMySQL) ListByArtisan(ctx context.Context, artisanID string) ([]*entity.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("artisan_id = ?", artisanID).
		Order("placed_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, models[i].ToEntity())
	}
	return orders, nil
}

func (r *orderMySQL) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrOrderNotFound
	}
	return nil
}
