// Package dto defines request and response payloads for cart and order
// endpoints.
package dto

// AddToCartReq puts a product in the cart.
type AddToCartReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// SetQuantityReq changes a cart line's quantity. Zero removes the line,
// so gt=0 is deliberately not enforced here.
type SetQuantityReq struct {
	Quantity int `json:"quantity"`
}

// CheckoutReq carries the delivery details captured at checkout.
type CheckoutReq struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof='Credit Card' 'PayPal' 'Cash on Delivery'"`
}
