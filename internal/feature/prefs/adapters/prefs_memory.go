package adapters

import (
	"context"
	"sync"

	"artisan_backend/internal/feature/prefs/usecase"
)

// prefsMemory is the in-process fallback store used when Redis is not
// configured. Preferences are ephemeral UI state, so losing them on
// restart is acceptable.
type prefsMemory struct {
	mu        sync.RWMutex
	lastViews map[string]string
	recent    map[string][]string
}

// NewPrefsMemory creates an in-memory PrefsStore.
func NewPrefsMemory() usecase.PrefsStore {
	return &prefsMemory{
		lastViews: make(map[string]string),
		recent:    make(map[string][]string),
	}
}

var _ usecase.PrefsStore = (*prefsMemory)(nil)

func (s *prefsMemory) GetLastView(_ context.Context, artisanID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.lastViews[artisanID]
	if !ok {
		return "", usecase.ErrNoLastView
	}
	return view, nil
}

func (s *prefsMemory) SetLastView(_ context.Context, artisanID, view string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastViews[artisanID] = view
	return nil
}

func (s *prefsMemory) DeleteLastView(_ context.Context, artisanID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastViews, artisanID)
	return nil
}

func (s *prefsMemory) PushRecentlyViewed(_ context.Context, artisanID, productID string, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.recent[artisanID]
	next := make([]string, 0, max)
	next = append(next, productID)
	for _, id := range current {
		if id == productID {
			continue
		}
		next = append(next, id)
		if len(next) == max {
			break
		}
	}
	s.recent[artisanID] = next
	return nil
}

func (s *prefsMemory) RecentlyViewed(_ context.Context, artisanID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	current := s.recent[artisanID]
	out := make([]string, len(current))
	copy(out, current)
	return out, nil
}
