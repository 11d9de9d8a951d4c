package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"artisan_backend/internal/feature/auth/usecase"
)

// otpTTL bounds how long an unconsumed code stays pending. The original
// system expires codes only by replacement or use; the TTL is an upper
// bound so abandoned registrations do not accumulate.
const otpTTL = 15 * time.Minute

// OtpRedis implements usecase.OtpRepository using Redis.
// SET overwrites any pending code, which gives the at-most-one-active-code
// invariant for free.
type OtpRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure OtpRedis implements OtpRepository.
var _ usecase.OtpRepository = (*OtpRedis)(nil)

// NewOtpRedis creates a new OtpRedis instance.
func NewOtpRedis(client *redis.Client, prefix string) *OtpRedis {
	return &OtpRedis{client: client, prefix: prefix}
}

// otpKey returns the Redis key for an email's pending code.
func (r *OtpRedis) otpKey(email string) string {
	return fmt.Sprintf("%s:%s", r.prefix, email)
}

// verifiedKey returns the Redis key for an email's verified marker.
func (r *OtpRedis) verifiedKey(email string) string {
	return fmt.Sprintf("%s:verified:%s", r.prefix, email)
}

// Put stores a code, replacing any pending one. The write is committed when
// this returns, so a verify issued afterwards always sees the latest code.
// A fresh code also drops any earlier verified marker.
func (r *OtpRedis) Put(ctx context.Context, email, code string) error {
	if err := r.client.Set(ctx, r.otpKey(email), code, otpTTL).Err(); err != nil {
		return err
	}
	return r.client.Del(ctx, r.verifiedKey(email)).Err()
}

// Get returns the pending code for an email.
func (r *OtpRedis) Get(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, r.otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", usecase.ErrOtpNotFound
		}
		return "", err
	}
	return code, nil
}

// Delete consumes the pending code. Deleting an absent key is not an error,
// which keeps verification repeat-safe.
func (r *OtpRedis) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.otpKey(email)).Err()
}

// MarkVerified leaves a marker that registration consumes. The marker
// shares the code TTL so abandoned verifications expire on their own.
func (r *OtpRedis) MarkVerified(ctx context.Context, email string) error {
	return r.client.Set(ctx, r.verifiedKey(email), "1", otpTTL).Err()
}

// ConsumeVerified removes the marker, reporting whether it existed.
func (r *OtpRedis) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Del(ctx, r.verifiedKey(email)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
