package usecase

import (
	"context"
	"testing"

	"artisan_backend/internal/feature/dashboard/domain/entity"
)

// mockMetricRepository keeps buckets in memory per artisan.
type mockMetricRepository struct {
	months map[string][]entity.MonthlyMetric
	weeks  map[string][]entity.WeeklyEngagement
}

func newMockMetricRepository() *mockMetricRepository {
	return &mockMetricRepository{
		months: map[string][]entity.MonthlyMetric{},
		weeks:  map[string][]entity.WeeklyEngagement{},
	}
}

func (m *mockMetricRepository) MonthlySales(_ context.Context, artisanID string) ([]entity.MonthlyMetric, error) {
	return m.months[artisanID], nil
}

func (m *mockMetricRepository) WeeklyEngagement(_ context.Context, artisanID string) ([]entity.WeeklyEngagement, error) {
	return m.weeks[artisanID], nil
}

func (m *mockMetricRepository) AddToLatestMonth(_ context.Context, artisanID string, sales, profit float64) (bool, error) {
	buckets := m.months[artisanID]
	if len(buckets) == 0 {
		return false, nil
	}
	buckets[len(buckets)-1].Sales += sales
	buckets[len(buckets)-1].Profit += profit
	return true, nil
}

func (m *mockMetricRepository) BumpLatestWeek(_ context.Context, artisanID string, visitors, saves int) (bool, error) {
	buckets := m.weeks[artisanID]
	if len(buckets) == 0 {
		return false, nil
	}
	buckets[len(buckets)-1].Visitors += visitors
	buckets[len(buckets)-1].Saves += saves
	return true, nil
}

func TestDashboardUsecase_RecordSale(t *testing.T) {
	t.Run("credits the latest month with the configured margin", func(t *testing.T) {
		metrics := newMockMetricRepository()
		metrics.months["seller1"] = []entity.MonthlyMetric{
			{Month: "May", Sales: 100, Profit: 60},
			{Month: "Jun", Sales: 200, Profit: 120},
		}
		uc := NewDashboardUsecase(metrics, 0.5)

		if err := uc.RecordSale(context.Background(), "seller1", 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		buckets := metrics.months["seller1"]
		if buckets[0].Sales != 100 {
			t.Error("earlier buckets must not change")
		}
		latest := buckets[len(buckets)-1]
		if latest.Sales != 280 {
			t.Errorf("latest bucket should absorb the sale, got %v", latest.Sales)
		}
		if latest.Profit != 160 {
			t.Errorf("profit should use the configured margin, got %v", latest.Profit)
		}
	})

	t.Run("seller without history is a no-op", func(t *testing.T) {
		metrics := newMockMetricRepository()
		uc := NewDashboardUsecase(metrics, 0.6)

		if err := uc.RecordSale(context.Background(), "fresh", 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(metrics.months["fresh"]) != 0 {
			t.Errorf("empty series must stay empty, got %+v", metrics.months["fresh"])
		}
	})

	t.Run("ignores non-positive amounts", func(t *testing.T) {
		metrics := newMockMetricRepository()
		uc := NewDashboardUsecase(metrics, 0.6)

		if err := uc.RecordSale(context.Background(), "seller1", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(metrics.months["seller1"]) != 0 {
			t.Error("zero-amount sales must not create buckets")
		}
	})

	t.Run("out-of-range margin falls back to the default", func(t *testing.T) {
		metrics := newMockMetricRepository()
		metrics.months["seller1"] = []entity.MonthlyMetric{{Month: "Jun"}}
		uc := NewDashboardUsecase(metrics, 1.8)

		if err := uc.RecordSale(context.Background(), "seller1", 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := metrics.months["seller1"][0].Profit; got != 60 {
			t.Errorf("expected default margin profit 60, got %v", got)
		}
	})
}

func TestDashboardUsecase_RecordVisit(t *testing.T) {
	t.Run("bumps the latest week", func(t *testing.T) {
		metrics := newMockMetricRepository()
		metrics.weeks["seller1"] = []entity.WeeklyEngagement{
			{Week: "W1", Visitors: 10},
			{Week: "W2", Visitors: 20},
		}
		uc := NewDashboardUsecase(metrics, 0.6)

		if err := uc.RecordVisit(context.Background(), "seller1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := metrics.weeks["seller1"][1].Visitors; got != 21 {
			t.Errorf("latest week should be bumped, got %d", got)
		}
	})

	t.Run("seller without history is a no-op", func(t *testing.T) {
		metrics := newMockMetricRepository()
		uc := NewDashboardUsecase(metrics, 0.6)

		if err := uc.RecordVisit(context.Background(), "fresh"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(metrics.weeks["fresh"]) != 0 {
			t.Errorf("empty series must stay empty, got %+v", metrics.weeks["fresh"])
		}
	})
}

func TestDashboardUsecase_Get(t *testing.T) {
	metrics := newMockMetricRepository()
	metrics.months["seller1"] = []entity.MonthlyMetric{
		{Month: "May", Sales: 100, Profit: 60},
		{Month: "Jun", Sales: 200, Profit: 120},
	}
	metrics.weeks["seller1"] = []entity.WeeklyEngagement{{Week: "W1", Visitors: 10, Saves: 2}}
	uc := NewDashboardUsecase(metrics, 0.6)

	dashboard, err := uc.Get(context.Background(), "seller1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TotalSales != 300 || dashboard.TotalProfit != 180 {
		t.Errorf("running totals wrong: %+v", dashboard)
	}
	if len(dashboard.Sales) != 2 || len(dashboard.Engagement) != 1 {
		t.Error("dashboard should carry both series")
	}
}
