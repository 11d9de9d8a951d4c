// Package entity defines the dashboard domain models.
package entity

// MonthlyMetric is one month's sales and profit for an artisan. Buckets
// are kept in chronological order; Position fixes it.
type MonthlyMetric struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// WeeklyEngagement is one week's storefront traffic.
type WeeklyEngagement struct {
	Week     string `json:"week"`
	Visitors int    `json:"visitors"`
	Saves    int    `json:"saves"`
}

// Dashboard is the aggregated seller view.
type Dashboard struct {
	Sales       []MonthlyMetric    `json:"sales"`
	Engagement  []WeeklyEngagement `json:"engagement"`
	TotalSales  float64            `json:"total_sales"`
	TotalProfit float64            `json:"total_profit"`
}
