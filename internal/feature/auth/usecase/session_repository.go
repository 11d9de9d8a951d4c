package usecase

import (
	"context"

	"artisan_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for remember-me sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its token value.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// FindByArtisanID retrieves all valid sessions for a given artisan.
	FindByArtisanID(ctx context.Context, artisanID string) ([]*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByArtisanID revokes all sessions for a given artisan.
	RevokeAllByArtisanID(ctx context.Context, artisanID string) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByArtisanID returns the number of active sessions for an artisan.
	CountByArtisanID(ctx context.Context, artisanID string) (int64, error)

	// DeleteOldestByArtisanID deletes the oldest session for an artisan.
	DeleteOldestByArtisanID(ctx context.Context, artisanID string) error
}
