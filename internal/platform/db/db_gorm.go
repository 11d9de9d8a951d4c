package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "artisan_backend/internal/feature/auth/adapters"
	authentity "artisan_backend/internal/feature/auth/domain/entity"
	artisanentity "artisan_backend/internal/feature/artisans/domain/entity"
	catalogadapters "artisan_backend/internal/feature/catalog/adapters"
	catalogentity "artisan_backend/internal/feature/catalog/domain/entity"
	dashboardadapters "artisan_backend/internal/feature/dashboard/adapters"
	ordersadapters "artisan_backend/internal/feature/orders/adapters"
)

// Config holds MySQL connection settings.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQL instance connection name, takes precedence over Host/Port
}

// LoadConfig reads the database configuration from environment variables.
func LoadConfig() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN assembles a MySQL DSN. When InstanceName is set, a Cloud SQL
// Unix-socket DSN is produced; otherwise a TCP DSN.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener opens a gorm connection for a DSN. Extracted so retry logic can be
// tested without a live database.
type Opener func(dsn string) (*gorm.DB, error)

// GormOpener is the production Opener backed by the MySQL driver.
func GormOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
}

// ConnectWithRetry keeps trying to open the database until timeout elapses.
// Retries every 3 seconds, matching the container start-order race window.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to MySQL using environment configuration and, when
// RUN_MIGRATIONS=true, migrates every model the server persists.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfig())

	db, err := ConnectWithRetry(dsn, 60*time.Second, GormOpener)
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&authadapters.OtpModel{},
			&artisanentity.ArtisanProfile{},
			&artisanentity.PortfolioItem{},
			&artisanentity.Follow{},
			&catalogentity.Product{},
			&catalogadapters.WishlistModel{},
			&ordersadapters.CartItemModel{},
			&ordersadapters.OrderModel{},
			&ordersadapters.OrderItemModel{},
			&dashboardadapters.MonthlyMetricModel{},
			&dashboardadapters.WeeklyEngagementModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
