package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"artisan_backend/internal/app/di"
	"artisan_backend/internal/app/router"
	artisansadapters "artisan_backend/internal/feature/artisans/adapters"
	artisanshandler "artisan_backend/internal/feature/artisans/transport/handler"
	artisansusecase "artisan_backend/internal/feature/artisans/usecase"
	assistanthandler "artisan_backend/internal/feature/assistant/transport/handler"
	authadapters "artisan_backend/internal/feature/auth/adapters"
	authhandler "artisan_backend/internal/feature/auth/transport/handler"
	authusecase "artisan_backend/internal/feature/auth/usecase"
	catalogadapters "artisan_backend/internal/feature/catalog/adapters"
	cataloghandler "artisan_backend/internal/feature/catalog/transport/handler"
	catalogusecase "artisan_backend/internal/feature/catalog/usecase"
	dashboardadapters "artisan_backend/internal/feature/dashboard/adapters"
	dashboardhandler "artisan_backend/internal/feature/dashboard/transport/handler"
	dashboardusecase "artisan_backend/internal/feature/dashboard/usecase"
	ordersadapters "artisan_backend/internal/feature/orders/adapters"
	ordershandler "artisan_backend/internal/feature/orders/transport/handler"
	ordersusecase "artisan_backend/internal/feature/orders/usecase"
	prefshandler "artisan_backend/internal/feature/prefs/transport/handler"
	prefsusecase "artisan_backend/internal/feature/prefs/usecase"
	"artisan_backend/internal/platform/config"
	infradb "artisan_backend/internal/platform/db"
	infrajwt "artisan_backend/internal/platform/jwt"
	infraredis "artisan_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to MySQL-backed stores.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	otpRepo := di.NewOtpRepository(rdb, db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	artisanRepo := artisansadapters.NewArtisanMySQL(db)
	followRepo := artisansadapters.NewFollowMySQL(db)
	productRepo := di.NewProductRepository(rdb, db, cfg.CatalogCacheTTL)
	wishlistRepo := catalogadapters.NewWishlistMySQL(db)
	cartRepo := ordersadapters.NewCartMySQL(db)
	orderRepo := ordersadapters.NewOrderMySQL(db)
	metricRepo := dashboardadapters.NewMetricMySQL(db)
	prefsStore := di.NewPrefsStore(rdb)

	// Usecase
	assistantUC, err := di.NewAssistantUsecase(ctx, cfg.GeminiModel, cfg.AssistantRateLimit, cfg.ImageFetchTimeout)
	if err != nil {
		log.Fatal("failed to assemble AI gateway:", err)
	}
	prefsUC := prefsusecase.NewPrefsUsecase(prefsStore)
	artisansUC := artisansusecase.NewArtisansUsecase(artisanRepo, followRepo, assistantUC)
	tokens := infrajwt.NewCodec(cfg.JWTSecret, cfg.JWTExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, otpRepo, sessionRepo, tokens, artisansUC, prefsUC, cfg.SessionTTL)
	catalogUC := catalogusecase.NewCatalogUsecase(productRepo, wishlistRepo, assistantUC, prefsUC)
	dashboardUC := dashboardusecase.NewDashboardUsecase(metricRepo, cfg.ProfitMargin)
	ordersUC := ordersusecase.NewOrdersUsecase(cartRepo, orderRepo, catalogUC, dashboardUC)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Artisans:  artisanshandler.NewArtisansHandler(artisansUC, dashboardUC),
		Catalog:   cataloghandler.NewCatalogHandler(catalogUC, prefsUC),
		Orders:    ordershandler.NewOrdersHandler(ordersUC),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardUC),
		Assistant: assistanthandler.NewAssistantHandler(assistantUC, artisansUC),
		Prefs:     prefshandler.NewPrefsHandler(prefsUC),
	}

	// 期限切れセッションの定期掃除
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := authUC.CleanupExpiredSessions(context.Background()); err != nil {
				log.Println("[WARN] session cleanup failed:", err)
			} else if n > 0 {
				log.Println("cleaned up expired sessions:", n)
			}
		}
	}()

	r := router.NewRouter(handlers)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(infrajwt.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
