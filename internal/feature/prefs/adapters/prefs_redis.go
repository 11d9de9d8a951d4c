package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"artisan_backend/internal/feature/prefs/usecase"
)

// prefsRedis stores preferences in Redis. Last views live under one key
// per artisan, browsing history as a Redis list.
type prefsRedis struct {
	client *redis.Client
	prefix string
}

// NewPrefsRedis creates a Redis-backed PrefsStore.
func NewPrefsRedis(client *redis.Client, prefix string) usecase.PrefsStore {
	if prefix == "" {
		prefix = "prefs"
	}
	return &prefsRedis{client: client, prefix: prefix}
}

var _ usecase.PrefsStore = (*prefsRedis)(nil)

func (s *prefsRedis) lastViewKey(artisanID string) string {
	return fmt.Sprintf("%s:lastview:%s", s.prefix, artisanID)
}

func (s *prefsRedis) recentKey(artisanID string) string {
	return fmt.Sprintf("%s:recent:%s", s.prefix, artisanID)
}

func (s *prefsRedis) GetLastView(ctx context.Context, artisanID string) (string, error) {
	view, err := s.client.Get(ctx, s.lastViewKey(artisanID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", usecase.ErrNoLastView
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last view: %w", err)
	}
	return view, nil
}

func (s *prefsRedis) SetLastView(ctx context.Context, artisanID, view string) error {
	if err := s.client.Set(ctx, s.lastViewKey(artisanID), view, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last view: %w", err)
	}
	return nil
}

func (s *prefsRedis) DeleteLastView(ctx context.Context, artisanID string) error {
	if err := s.client.Del(ctx, s.lastViewKey(artisanID)).Err(); err != nil {
		return fmt.Errorf("failed to delete last view: %w", err)
	}
	return nil
}

// PushRecentlyViewed keeps the list deduplicated and bounded with
// LREM + LPUSH + LTRIM in one pipeline.
func (s *prefsRedis) PushRecentlyViewed(ctx context.Context, artisanID, productID string, max int) error {
	key := s.recentKey(artisanID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, productID)
	pipe.LPush(ctx, key, productID)
	pipe.LTrim(ctx, key, 0, int64(max-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push recently viewed: %w", err)
	}
	return nil
}

func (s *prefsRedis) RecentlyViewed(ctx context.Context, artisanID string) ([]string, error) {
	ids, err := s.client.LRange(ctx, s.recentKey(artisanID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}
	return ids, nil
}
