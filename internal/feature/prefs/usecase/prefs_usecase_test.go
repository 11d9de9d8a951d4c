package usecase

import (
	"context"
	"errors"
	"testing"
)

// mockPrefsStore is a mock implementation of the PrefsStore interface.
type mockPrefsStore struct {
	GetLastViewFunc        func(ctx context.Context, artisanID string) (string, error)
	SetLastViewFunc        func(ctx context.Context, artisanID, view string) error
	DeleteLastViewFunc     func(ctx context.Context, artisanID string) error
	PushRecentlyViewedFunc func(ctx context.Context, artisanID, productID string, max int) error
	RecentlyViewedFunc     func(ctx context.Context, artisanID string) ([]string, error)
}

func (m *mockPrefsStore) GetLastView(ctx context.Context, artisanID string) (string, error) {
	if m.GetLastViewFunc != nil {
		return m.GetLastViewFunc(ctx, artisanID)
	}
	return "", ErrNoLastView
}

func (m *mockPrefsStore) SetLastView(ctx context.Context, artisanID, view string) error {
	if m.SetLastViewFunc != nil {
		return m.SetLastViewFunc(ctx, artisanID, view)
	}
	return nil
}

func (m *mockPrefsStore) DeleteLastView(ctx context.Context, artisanID string) error {
	if m.DeleteLastViewFunc != nil {
		return m.DeleteLastViewFunc(ctx, artisanID)
	}
	return nil
}

func (m *mockPrefsStore) PushRecentlyViewed(ctx context.Context, artisanID, productID string, max int) error {
	if m.PushRecentlyViewedFunc != nil {
		return m.PushRecentlyViewedFunc(ctx, artisanID, productID, max)
	}
	return nil
}

func (m *mockPrefsStore) RecentlyViewed(ctx context.Context, artisanID string) ([]string, error) {
	if m.RecentlyViewedFunc != nil {
		return m.RecentlyViewedFunc(ctx, artisanID)
	}
	return nil, nil
}

func TestPrefsUsecase_SetLastView(t *testing.T) {
	t.Run("stores the view", func(t *testing.T) {
		var storedID, storedView string
		store := &mockPrefsStore{
			SetLastViewFunc: func(_ context.Context, artisanID, view string) error {
				storedID, storedView = artisanID, view
				return nil
			},
		}
		uc := NewPrefsUsecase(store)

		if err := uc.SetLastView(context.Background(), "user1", "prod7"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if storedID != "user1" || storedView != "prod7" {
			t.Errorf("stored %q/%q", storedID, storedView)
		}
	})

	t.Run("empty view clears the stored value", func(t *testing.T) {
		deleted := false
		store := &mockPrefsStore{
			SetLastViewFunc: func(context.Context, string, string) error {
				t.Error("set should not be called for an empty view")
				return nil
			},
			DeleteLastViewFunc: func(context.Context, string) error {
				deleted = true
				return nil
			},
		}
		uc := NewPrefsUsecase(store)

		if err := uc.SetLastView(context.Background(), "user1", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("empty view should delete the stored value")
		}
	})
}

func TestPrefsUsecase_RecordView(t *testing.T) {
	t.Run("pushes with the history cap", func(t *testing.T) {
		var gotMax int
		store := &mockPrefsStore{
			PushRecentlyViewedFunc: func(_ context.Context, _, _ string, max int) error {
				gotMax = max
				return nil
			},
		}
		uc := NewPrefsUsecase(store)

		if err := uc.RecordView(context.Background(), "user1", "prod1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMax != maxRecentlyViewed {
			t.Errorf("pushed with max %d, want %d", gotMax, maxRecentlyViewed)
		}
	})

	t.Run("wraps store errors", func(t *testing.T) {
		storeErr := errors.New("redis down")
		store := &mockPrefsStore{
			PushRecentlyViewedFunc: func(context.Context, string, string, int) error {
				return storeErr
			},
		}
		uc := NewPrefsUsecase(store)

		err := uc.RecordView(context.Background(), "user1", "prod1")
		if !errors.Is(err, storeErr) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})
}

func TestPrefsUsecase_LastView(t *testing.T) {
	t.Run("missing view surfaces the sentinel", func(t *testing.T) {
		uc := NewPrefsUsecase(&mockPrefsStore{})

		_, err := uc.LastView(context.Background(), "user1")
		if !errors.Is(err, ErrNoLastView) {
			t.Errorf("expected ErrNoLastView, got %v", err)
		}
	})
}
