package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan_backend/internal/feature/auth/usecase"
)

func TestOtpMySQL_PutAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "elena@example.com", "123456"))

	code, err := repo.Get(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestOtpMySQL_Put_ReplacesPendingCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "elena@example.com", "111111"))
	require.NoError(t, repo.Put(ctx, "elena@example.com", "222222"))

	code, err := repo.Get(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "222222", code, "resend must replace the pending code")

	// Still one row per email
	var count int64
	require.NoError(t, db.Model(&OtpModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOtpMySQL_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)

	_, err := repo.Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, usecase.ErrOtpNotFound)
}

func TestOtpMySQL_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "elena@example.com", "123456"))
	require.NoError(t, repo.Delete(ctx, "elena@example.com"))

	_, err := repo.Get(ctx, "elena@example.com")
	assert.ErrorIs(t, err, usecase.ErrOtpNotFound, "consumed code must be gone")

	// Deleting an absent row is not an error
	assert.NoError(t, repo.Delete(ctx, "elena@example.com"))
}

func TestOtpMySQL_VerifiedMarker(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	// No marker before any verification succeeds.
	ok, err := repo.ConsumeVerified(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.MarkVerified(ctx, "elena@example.com"))

	ok, err = repo.ConsumeVerified(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.True(t, ok)

	// The marker is single-use.
	ok, err = repo.ConsumeVerified(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestOtpMySQL_Put_DropsVerifiedMarker(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.MarkVerified(ctx, "elena@example.com"))
	require.NoError(t, repo.Put(ctx, "elena@example.com", "123456"))

	ok, err := repo.ConsumeVerified(ctx, "elena@example.com")
	assert.NoError(t, err)
	assert.False(t, ok, "a fresh code restarts the verification flow")
}

func TestOtpMySQL_Get_IgnoresVerifiedMarker(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpMySQL(db)
	ctx := context.Background()

	require.NoError(t, repo.MarkVerified(ctx, "elena@example.com"))

	_, err := repo.Get(ctx, "elena@example.com")
	assert.ErrorIs(t, err, usecase.ErrOtpNotFound, "a marker row holds no pending code")
}
