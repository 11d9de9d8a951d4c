// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered credential record.
// The email is the unique login key; the artisan id points at the profile
// the credential owns.
type User struct {
	// ID is the unique identifier for the credential record.
	ID uint `gorm:"primaryKey"`

	// Email is the login key. Stored lower-cased; unique across all users
	// and immutable after registration.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// ArtisanID is the id of the ArtisanProfile owned by this credential.
	ArtisanID string `gorm:"uniqueIndex;size:64;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
