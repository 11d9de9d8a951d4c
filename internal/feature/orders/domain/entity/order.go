package entity

import "time"

// OrderStatus is the delivery state of an order. Statuses advance in a
// fixed sequence and never move backwards.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

// statusSequence is the fixed progression of an order.
var statusSequence = []OrderStatus{
	StatusPlaced,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Next returns the following status and true, or the current status and
// false when the order is already delivered or the status is unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range statusSequence {
		if st == s && i+1 < len(statusSequence) {
			return statusSequence[i+1], true
		}
	}
	return s, false
}

// Valid reports whether the status is one of the known states.
func (s OrderStatus) Valid() bool {
	for _, st := range statusSequence {
		if st == s {
			return true
		}
	}
	return false
}

// Payment methods accepted at checkout.
const (
	PaymentCreditCard     = "Credit Card"
	PaymentPayPal         = "PayPal"
	PaymentCashOnDelivery = "Cash on Delivery"
)

// DeliveryDetails is the shipping and payment info captured at checkout.
type DeliveryDetails struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// OrderItem is one purchased line frozen at checkout time.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// Order is a placed purchase. The id is time-derived ("ORD-" + unix
// millis) and the expected delivery date is fixed at placement.
type Order struct {
	ID               string          `json:"id"`
	ArtisanID        string          `json:"artisan_id"`
	Items            []OrderItem     `json:"items"`
	Total            float64         `json:"total"`
	Status           OrderStatus     `json:"status"`
	Delivery         DeliveryDetails `json:"delivery"`
	Origin           string          `json:"origin"`
	PlacedAt         time.Time       `json:"placed_at"`
	ExpectedDelivery time.Time       `json:"expected_delivery"`
}
