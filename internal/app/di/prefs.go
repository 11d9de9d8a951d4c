package di

import (
	prefsadapters "artisan_backend/internal/feature/prefs/adapters"
	"artisan_backend/internal/feature/prefs/usecase"

	"github.com/redis/go-redis/v9"
)

// NewPrefsStore creates a PrefsStore implementation. Without Redis the
// preferences live in process memory; they are ephemeral UI state, so
// losing them on restart is acceptable.
func NewPrefsStore(rdb *redis.Client) usecase.PrefsStore {
	if rdb != nil {
		return prefsadapters.NewPrefsRedis(rdb, "prefs")
	}
	return prefsadapters.NewPrefsMemory()
}
