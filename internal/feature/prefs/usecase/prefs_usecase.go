// Package usecase implements per-artisan UI preferences: the last opened
// view and the recently viewed products.
package usecase

import (
	"context"
	"errors"
	"fmt"
)

// maxRecentlyViewed caps the browsing history per artisan.
const maxRecentlyViewed = 4

// ErrNoLastView is returned when no view has been stored for the artisan.
var ErrNoLastView = errors.New("no last view stored")

// PrefsStore abstracts the preference store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PrefsStore interface {
	GetLastView(ctx context.Context, artisanID string) (string, error)
	SetLastView(ctx context.Context, artisanID, view string) error
	DeleteLastView(ctx context.Context, artisanID string) error
	// PushRecentlyViewed prepends the product, removing an earlier
	// occurrence and trimming the list to max entries.
	PushRecentlyViewed(ctx context.Context, artisanID, productID string, max int) error
	RecentlyViewed(ctx context.Context, artisanID string) ([]string, error)
}

// prefsUsecase implements preference logic.
type prefsUsecase struct {
	store PrefsStore
}

// NewPrefsUsecase creates a new prefsUsecase.
func NewPrefsUsecase(store PrefsStore) *prefsUsecase {
	return &prefsUsecase{store: store}
}

// LastView returns the artisan's last opened view.
func (u *prefsUsecase) LastView(ctx context.Context, artisanID string) (string, error) {
	return u.store.GetLastView(ctx, artisanID)
}

// SetLastView stores the artisan's current view so the next login can
// restore it.
func (u *prefsUsecase) SetLastView(ctx context.Context, artisanID, view string) error {
	if view == "" {
		return u.store.DeleteLastView(ctx, artisanID)
	}
	if err := u.store.SetLastView(ctx, artisanID, view); err != nil {
		return fmt.Errorf("failed to store last view: %w", err)
	}
	return nil
}

// ClearLastView drops the stored view. Called on logout.
func (u *prefsUsecase) ClearLastView(ctx context.Context, artisanID string) error {
	return u.store.DeleteLastView(ctx, artisanID)
}

// RecordView pushes a product to the front of the browsing history.
// Viewing a product already in the history moves it to the front instead
// of duplicating it; the history keeps at most four entries.
func (u *prefsUsecase) RecordView(ctx context.Context, artisanID, productID string) error {
	if err := u.store.PushRecentlyViewed(ctx, artisanID, productID, maxRecentlyViewed); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// RecentlyViewed returns the browsing history, most recent first.
func (u *prefsUsecase) RecentlyViewed(ctx context.Context, artisanID string) ([]string, error) {
	return u.store.RecentlyViewed(ctx, artisanID)
}
