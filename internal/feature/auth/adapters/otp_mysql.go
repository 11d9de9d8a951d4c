package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artisan_backend/internal/feature/auth/usecase"
)

// OtpModel is the GORM model for the otps table. One row per email: an
// upsert on send enforces the single-active-code invariant. After a
// successful verification the row turns into a verified marker that
// registration consumes.
type OtpModel struct {
	Email     string    `gorm:"primaryKey;size:255"`
	Code      string    `gorm:"size:6;not null"`
	Verified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (OtpModel) TableName() string {
	return "otps"
}

// otpMySQL is the MySQL fallback implementation of OtpRepository, used when
// Redis is unavailable.
type otpMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure otpMySQL implements OtpRepository.
var _ usecase.OtpRepository = (*otpMySQL)(nil)

// NewOtpMySQL creates a new otpMySQL instance.
func NewOtpMySQL(db *gorm.DB) *otpMySQL {
	return &otpMySQL{db: db}
}

// Put stores a code, replacing any pending one for the email. A fresh
// code also resets an earlier verified marker.
func (r *otpMySQL) Put(ctx context.Context, email, code string) error {
	row := &OtpModel{Email: email, Code: code, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "verified", "created_at"}),
		}).
		Create(row).Error
}

// Get returns the pending code for an email. Verified marker rows do not
// count as pending codes.
func (r *otpMySQL) Get(ctx context.Context, email string) (string, error) {
	var row OtpModel
	if err := r.db.WithContext(ctx).Where("email = ? AND verified = ?", email, false).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrOtpNotFound
		}
		return "", err
	}
	return row.Code, nil
}

// Delete consumes the pending code for an email.
func (r *otpMySQL) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&OtpModel{}).Error
}

// MarkVerified turns the email's row into a verified marker.
func (r *otpMySQL) MarkVerified(ctx context.Context, email string) error {
	row := &OtpModel{Email: email, Verified: true, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "verified", "created_at"}),
		}).
		Create(row).Error
}

// ConsumeVerified deletes the marker, reporting whether it existed.
func (r *otpMySQL) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	res := r.db.WithContext(ctx).Where("email = ? AND verified = ?", email, true).Delete(&OtpModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
