// Package dto defines request and response payloads for catalog endpoints.
package dto

// ProductReq is the create/update payload for a listing.
type ProductReq struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// ToggleWishlistRes reports the wishlist state after a toggle.
type ToggleWishlistRes struct {
	Wishlisted bool `json:"wishlisted"`
}
