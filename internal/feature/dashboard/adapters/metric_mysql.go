package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"artisan_backend/internal/feature/dashboard/domain/entity"
	"artisan_backend/internal/feature/dashboard/usecase"
)

// MonthlyMetricModel is the GORM model for monthly sales buckets.
// Position preserves chronological order within an artisan.
type MonthlyMetricModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ArtisanID string `gorm:"index:idx_metric_artisan_pos;size:64;not null"`
	Position  int    `gorm:"index:idx_metric_artisan_pos;not null"`
	Month     string `gorm:"size:16;not null"`
	Sales     float64
	Profit    float64
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name used by GORM.
func (MonthlyMetricModel) TableName() string { return "monthly_metrics" }

// WeeklyEngagementModel is the GORM model for weekly traffic buckets.
type WeeklyEngagementModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ArtisanID string `gorm:"index:idx_engagement_artisan_pos;size:64;not null"`
	Position  int    `gorm:"index:idx_engagement_artisan_pos;not null"`
	Week      string `gorm:"size:16;not null"`
	Visitors  int
	Saves     int
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name used by GORM.
func (WeeklyEngagementModel) TableName() string { return "weekly_engagement" }

// metricMySQL stores dashboard metrics with GORM.
type metricMySQL struct {
	db *gorm.DB
}

// NewMetricMySQL creates a MySQL-backed MetricRepository.
func NewMetricMySQL(db *gorm.DB) usecase.MetricRepository {
	return &metricMySQL{db: db}
}

var _ usecase.MetricRepository = (*metricMySQL)(nil)

func (r *metricMySQL) MonthlySales(ctx context.Context, artisanID string) ([]entity.MonthlyMetric, error) {
	var models []MonthlyMetricModel
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly metrics: %w", err)
	}
	metrics := make([]entity.MonthlyMetric, 0, len(models))
	for _, m := range models {
		metrics = append(metrics, entity.MonthlyMetric{
			Month:  m.Month,
			Sales:  m.Sales,
			Profit: m.Profit,
		})
	}
	return metrics, nil
}

func (r *metricMySQL) WeeklyEngagement(ctx context.Context, artisanID string) ([]entity.WeeklyEngagement, error) {
	var models []WeeklyEngagementModel
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load engagement metrics: %w", err)
	}
	engagement := make([]entity.WeeklyEngagement, 0, len(models))
	for _, m := range models {
		engagement = append(engagement, entity.WeeklyEngagement{
			Week:     m.Week,
			Visitors: m.Visitors,
			Saves:    m.Saves,
		})
	}
	return engagement, nil
}

// AddToLatestMonth adds to the highest-position bucket inside a
// transaction so concurrent checkouts don't lose updates.
func (r *metricMySQL) AddToLatestMonth(ctx context.Context, artisanID string, sales, profit float64) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MonthlyMetricModel
		err := tx.Where("artisan_id = ?", artisanID).
			Order("position DESC").
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return tx.Model(&model).Updates(map[string]interface{}{
			"sales":  gorm.Expr("sales + ?", sales),
			"profit": gorm.Expr("profit + ?", profit),
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to update monthly metric: %w", err)
	}
	return found, nil
}

func (r *metricMySQL) CreateMonth(ctx context.Context, artisanID string, metric entity.MonthlyMetric) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&MonthlyMetricModel{}).
			Where("artisan_id = ?", artisanID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPos); err != nil {
			return fmt.Errorf("failed to find bucket position: %w", err)
		}
		model := MonthlyMetricModel{
			ArtisanID: artisanID,
			Position:  maxPos + 1,
			Month:     metric.Month,
			Sales:     metric.Sales,
			Profit:    metric.Profit,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create monthly metric: %w", err)
		}
		return nil
	})
}

func (r *metricMySQL) BumpLatestWeek(ctx context.Context, artisanID string, visitors, saves int) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model WeeklyEngagementModel
		err := tx.Where("artisan_id = ?", artisanID).
			Order("position DESC").
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return tx.Model(&model).Updates(map[string]interface{}{
			"visitors": gorm.Expr("visitors + ?", visitors),
			"saves":    gorm.Expr("saves + ?", saves),
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to update engagement metric: %w", err)
	}
	return found, nil
}

func (r *metricMySQL) CreateWeek(ctx context.Context, artisanID string, engagement entity.WeeklyEngagement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&WeeklyEngagementModel{}).
			Where("artisan_id = ?", artisanID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPos); err != nil {
			return fmt.Errorf("failed to find bucket position: %w", err)
		}
		model := WeeklyEngagementModel{
			ArtisanID: artisanID,
			Position:  maxPos + 1,
			Week:      engagement.Week,
			Visitors:  engagement.Visitors,
			Saves:     engagement.Saves,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create engagement metric: %w", err)
		}
		return nil
	})
}
