// Command seed loads demo artisans, products and dashboard metrics so a
// fresh environment has a browsable marketplace.
package main

import (
	"context"
	"log"
	"os"
	"time"

	artisansadapters "artisan_backend/internal/feature/artisans/adapters"
	artisansentity "artisan_backend/internal/feature/artisans/domain/entity"
	catalogadapters "artisan_backend/internal/feature/catalog/adapters"
	catalogentity "artisan_backend/internal/feature/catalog/domain/entity"
	dashboardadapters "artisan_backend/internal/feature/dashboard/adapters"
	dashboardentity "artisan_backend/internal/feature/dashboard/domain/entity"
	"artisan_backend/internal/platform/db"
)

func main() {
	gdb := db.OpenDB()
	artisanRepo := artisansadapters.NewArtisanMySQL(gdb)
	productRepo := catalogadapters.NewProductMySQL(gdb)
	metricRepo := dashboardadapters.NewMetricMySQL(gdb).(interface {
		CreateMonth(ctx context.Context, artisanID string, metric dashboardentity.MonthlyMetric) error
		CreateWeek(ctx context.Context, artisanID string, engagement dashboardentity.WeeklyEngagement) error
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// SIMULATED_LATENCY slows the batches down so a demo environment can
	// show loading states while the seed runs.
	latency, _ := time.ParseDuration(os.Getenv("SIMULATED_LATENCY"))

	for i := range demoArtisans {
		if err := artisanRepo.Create(ctx, &demoArtisans[i]); err != nil {
			log.Println("[WARN] artisan exists, skipping:", demoArtisans[i].ID)
		}
	}
	time.Sleep(latency)
	for i := range demoProducts {
		if err := productRepo.Create(ctx, &demoProducts[i]); err != nil {
			log.Println("[WARN] product exists, skipping:", demoProducts[i].ID)
		}
	}
	time.Sleep(latency)
	for artisanID, metrics := range demoSales {
		for _, m := range metrics {
			if err := metricRepo.CreateMonth(ctx, artisanID, m); err != nil {
				log.Fatal("failed to seed sales metrics:", err)
			}
		}
	}
	for artisanID, buckets := range demoEngagement {
		for _, e := range buckets {
			if err := metricRepo.CreateWeek(ctx, artisanID, e); err != nil {
				log.Fatal("failed to seed engagement metrics:", err)
			}
		}
	}

	log.Println("seed ok")
}

// demoArtisans are the showcase profiles.
var demoArtisans = []artisansentity.ArtisanProfile{
	{
		ID:           "user1",
		Name:         "Elena Vance",
		Specialty:    "Ceramics & Pottery",
		AvatarURL:    "https://picsum.photos/seed/elena/100/100",
		Location:     "Willow Creek",
		Experience:   "12 years",
		Availability: "Accepting Commissions",
		Workplace:    "The Clay Studio",
		Portfolio: []artisansentity.PortfolioItem{
			{ID: "p1-1", Title: "Glazed Stoneware Set", ImageURL: "https://picsum.photos/seed/stoneware/400/300", Description: "A twelve-piece dinner set in matte ash glaze.", Position: 0},
			{ID: "p1-2", Title: "Raku Vases", ImageURL: "https://picsum.photos/seed/raku/400/300", Description: "Crackle-glazed vases fired in an open kiln.", Position: 1},
		},
	},
	{
		ID:           "user2",
		Name:         "Marcus Thorne",
		Specialty:    "Woodworking",
		AvatarURL:    "https://picsum.photos/seed/marcus/100/100",
		Location:     "Oakhaven",
		Experience:   "8 years",
		Availability: "Booked until spring",
		Workplace:    "Thorne Woodshop",
		Portfolio: []artisansentity.PortfolioItem{
			{ID: "p2-1", Title: "Walnut Side Table", ImageURL: "https://picsum.photos/seed/walnut/400/300", Description: "Hand-joined walnut with a live edge.", Position: 0},
		},
	},
	{
		ID:           "user3",
		Name:         "Sofia Reyes",
		Specialty:    "Textile Weaving",
		AvatarURL:    "https://picsum.photos/seed/sofia/100/100",
		Location:     "Riverbend",
		Experience:   "15 years",
		Availability: "Accepting Commissions",
		Workplace:    "Reyes Loomworks",
	},
}

// demoProducts are the showcase listings.
var demoProducts = []catalogentity.Product{
	{ID: "prod1", ArtisanID: "user1", Name: "Speckled Ceramic Mug", Category: "Ceramics", Price: 32, ImageURL: "https://picsum.photos/seed/mug/400/300", Description: "Wheel-thrown mug with a speckled cream glaze."},
	{ID: "prod2", ArtisanID: "user1", Name: "Serving Bowl", Category: "Ceramics", Price: 68, ImageURL: "https://picsum.photos/seed/bowl/400/300", Description: "Wide stoneware bowl, food safe and dishwasher friendly."},
	{ID: "prod3", ArtisanID: "user2", Name: "Cutting Board", Category: "Woodwork", Price: 55, ImageURL: "https://picsum.photos/seed/board/400/300", Description: "End-grain maple board with walnut inlay."},
	{ID: "prod4", ArtisanID: "user2", Name: "Oak Picture Frame", Category: "Woodwork", Price: 40, ImageURL: "https://picsum.photos/seed/frame/400/300", Description: "Hand-finished oak frame for 8x10 prints."},
	{ID: "prod5", ArtisanID: "user3", Name: "Woven Wall Hanging", Category: "Textiles", Price: 120, ImageURL: "https://picsum.photos/seed/weave/400/300", Description: "Hand-loomed wall hanging in undyed wool."},
}

// demoSales seeds each seller's monthly buckets in chronological order.
var demoSales = map[string][]dashboardentity.MonthlyMetric{
	"user1": {
		{Month: "Jan", Sales: 400, Profit: 240},
		{Month: "Feb", Sales: 300, Profit: 139},
		{Month: "Mar", Sales: 500, Profit: 380},
		{Month: "Apr", Sales: 478, Profit: 290},
		{Month: "May", Sales: 589, Profit: 480},
		{Month: "Jun", Sales: 439, Profit: 380},
	},
	"user2": {
		{Month: "Jan", Sales: 220, Profit: 132},
		{Month: "Feb", Sales: 180, Profit: 101},
		{Month: "Mar", Sales: 350, Profit: 204},
		{Month: "Apr", Sales: 410, Profit: 255},
		{Month: "May", Sales: 298, Profit: 177},
		{Month: "Jun", Sales: 365, Profit: 219},
	},
}

// demoEngagement seeds each seller's weekly traffic buckets.
var demoEngagement = map[string][]dashboardentity.WeeklyEngagement{
	"user1": {
		{Week: "W1", Visitors: 120, Saves: 12},
		{Week: "W2", Visitors: 145, Saves: 18},
		{Week: "W3", Visitors: 98, Saves: 9},
		{Week: "W4", Visitors: 170, Saves: 25},
	},
	"user2": {
		{Week: "W1", Visitors: 80, Saves: 6},
		{Week: "W2", Visitors: 95, Saves: 11},
		{Week: "W3", Visitors: 110, Saves: 14},
		{Week: "W4", Visitors: 90, Saves: 8},
	},
}
