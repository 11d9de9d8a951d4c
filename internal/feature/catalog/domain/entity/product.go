// Package entity defines the catalog domain models.
package entity

import "time"

// Product is one listing in an artisan's shop. IDs are time-derived
// strings assigned at creation.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	ArtisanID   string    `json:"artisan_id" gorm:"index;size:64;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
