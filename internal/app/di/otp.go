package di

import (
	authadapters "artisan_backend/internal/feature/auth/adapters"
	"artisan_backend/internal/feature/auth/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewOtpRepository creates an OtpRepository implementation. Redis gives
// codes a TTL for free; without it MySQL holds them.
func NewOtpRepository(rdb *redis.Client, db *gorm.DB) usecase.OtpRepository {
	if rdb != nil {
		return authadapters.NewOtpRedis(rdb, "otp")
	}
	return authadapters.NewOtpMySQL(db)
}
