// Package entity defines the domain entities for the artisans feature.
package entity

import "time"

// PortfolioItem is a single work sample in an artisan's portfolio.
// Items are ordered by Position within their owning profile.
type PortfolioItem struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	ArtisanID   string `gorm:"index;size:64;not null" json:"-"`
	Title       string `gorm:"size:255;not null" json:"title"`
	ImageURL    string `gorm:"size:512" json:"image_url"`
	Description string `gorm:"type:text" json:"description"`
	Position    int    `gorm:"not null" json:"-"`
}

// ArtisanProfile represents a seller's public profile.
// It is created on registration and mutated only by its owner.
// Profiles are never deleted.
type ArtisanProfile struct {
	ID           string          `gorm:"primaryKey;size:64" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Specialty    string          `gorm:"size:255" json:"specialty"`
	AvatarURL    string          `gorm:"size:512" json:"avatar_url"`
	Location     string          `gorm:"size:255" json:"location"`
	Experience   string          `gorm:"size:255" json:"experience"`
	Availability string          `gorm:"size:255" json:"availability"`
	Workplace    string          `gorm:"size:255" json:"workplace"`
	Phone        string          `gorm:"size:64" json:"phone"`
	Instagram    string          `gorm:"size:255" json:"instagram"`
	Portfolio    []PortfolioItem `gorm:"foreignKey:ArtisanID;constraint:OnDelete:CASCADE" json:"portfolio"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

// Follow is a directed follow edge between two artisans.
type Follow struct {
	FollowerID string    `gorm:"primaryKey;size:64" json:"follower_id"`
	FollowedID string    `gorm:"primaryKey;size:64" json:"followed_id"`
	CreatedAt  time.Time `json:"-"`
}
