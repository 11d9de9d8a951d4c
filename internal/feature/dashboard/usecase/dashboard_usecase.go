// Package usecase aggregates seller metrics for the dashboard.
package usecase

import (
	"context"
	"fmt"

	"artisan_backend/internal/feature/dashboard/domain/entity"
)

// defaultProfitMargin is used when the configured margin is out of range.
const defaultProfitMargin = 0.6

// MetricRepository abstracts the metric store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MetricRepository interface {
	// MonthlySales returns the artisan's buckets in chronological order.
	MonthlySales(ctx context.Context, artisanID string) ([]entity.MonthlyMetric, error)
	// WeeklyEngagement returns the artisan's traffic buckets in
	// chronological order.
	WeeklyEngagement(ctx context.Context, artisanID string) ([]entity.WeeklyEngagement, error)
	// AddToLatestMonth adds sales and profit to the most recent bucket.
	// It reports false when the artisan has no buckets yet.
	AddToLatestMonth(ctx context.Context, artisanID string, sales, profit float64) (bool, error)
	// BumpLatestWeek increments the most recent traffic bucket. It
	// reports false when the artisan has no buckets yet.
	BumpLatestWeek(ctx context.Context, artisanID string, visitors, saves int) (bool, error)
}

// dashboardUsecase implements metric aggregation and sale recording.
type dashboardUsecase struct {
	metrics      MetricRepository
	profitMargin float64
}

// NewDashboardUsecase creates a new dashboardUsecase. An out-of-range
// margin falls back to the default.
func NewDashboardUsecase(metrics MetricRepository, profitMargin float64) *dashboardUsecase {
	if profitMargin <= 0 || profitMargin > 1 {
		profitMargin = defaultProfitMargin
	}
	return &dashboardUsecase{
		metrics:      metrics,
		profitMargin: profitMargin,
	}
}

// Get assembles the seller dashboard with running totals.
func (u *dashboardUsecase) Get(ctx context.Context, artisanID string) (*entity.Dashboard, error) {
	sales, err := u.metrics.MonthlySales(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales metrics: %w", err)
	}
	engagement, err := u.metrics.WeeklyEngagement(ctx, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load engagement metrics: %w", err)
	}

	dashboard := &entity.Dashboard{
		Sales:      sales,
		Engagement: engagement,
	}
	for _, m := range sales {
		dashboard.TotalSales += m.Sales
		dashboard.TotalProfit += m.Profit
	}
	return dashboard, nil
}

// RecordSale credits a checkout to the seller's most recent month. Profit
// is derived from the configured margin. A seller without buckets is left
// untouched; the series only grows through seeding.
func (u *dashboardUsecase) RecordSale(ctx context.Context, artisanID string, amount float64) error {
	if amount <= 0 {
		return nil
	}
	profit := amount * u.profitMargin

	if _, err := u.metrics.AddToLatestMonth(ctx, artisanID, amount, profit); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}
	return nil
}

// RecordVisit bumps the seller's most recent traffic bucket. A seller
// without buckets is left untouched.
func (u *dashboardUsecase) RecordVisit(ctx context.Context, artisanID string) error {
	if _, err := u.metrics.BumpLatestWeek(ctx, artisanID, 1, 0); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}
