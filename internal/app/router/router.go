package router

import (
	artisanshandler "artisan_backend/internal/feature/artisans/transport/handler"
	assistanthandler "artisan_backend/internal/feature/assistant/transport/handler"
	authhandler "artisan_backend/internal/feature/auth/transport/handler"
	cataloghandler "artisan_backend/internal/feature/catalog/transport/handler"
	dashboardhandler "artisan_backend/internal/feature/dashboard/transport/handler"
	ordershandler "artisan_backend/internal/feature/orders/transport/handler"
	prefshandler "artisan_backend/internal/feature/prefs/transport/handler"
	jwtmw "artisan_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Artisans  *artisanshandler.ArtisansHandler
	Catalog   *cataloghandler.CatalogHandler
	Orders    *ordershandler.OrdersHandler
	Dashboard *dashboardhandler.DashboardHandler
	Assistant *assistanthandler.AssistantHandler
	Prefs     *prefshandler.PrefsHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)
	// OTPの発行と検証
	r.POST("/auth/otp/send", h.Auth.SendOtp)
	r.POST("/auth/otp/verify", h.Auth.VerifyOtp)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)
	// セッション復元とログアウトはトークンが無くても受け付ける
	r.GET("/session", h.Auth.CheckSession)
	r.POST("/logout", h.Auth.Logout)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// 職人プロフィール
		auth.GET("/artisans", h.Artisans.List)
		auth.GET("/artisans/recommendations", h.Artisans.Recommend)
		auth.GET("/artisans/me/connections", h.Artisans.Connections)
		auth.GET("/artisans/:id", h.Artisans.Get)
		auth.PUT("/artisans/:id", h.Artisans.Update)
		auth.POST("/artisans/:id/follow", h.Artisans.ToggleFollow)
		auth.GET("/artisans/:id/products", h.Catalog.ListByArtisan)

		// 商品
		auth.GET("/products", h.Catalog.List)
		auth.GET("/products/suggestions", h.Catalog.Suggestions)
		auth.GET("/products/:id", h.Catalog.Get)
		auth.POST("/products", h.Catalog.Create)
		auth.PUT("/products/:id", h.Catalog.Update)
		auth.DELETE("/products/:id", h.Catalog.Delete)
		auth.POST("/products/:id/wishlist", h.Catalog.ToggleWishlist)
		auth.GET("/wishlist", h.Catalog.Wishlist)

		// カートと注文
		auth.GET("/cart", h.Orders.Cart)
		auth.POST("/cart", h.Orders.AddToCart)
		auth.PUT("/cart/:id", h.Orders.SetQuantity)
		auth.DELETE("/cart/:id", h.Orders.RemoveFromCart)
		auth.POST("/orders", h.Orders.Checkout)
		auth.GET("/orders", h.Orders.ListOrders)
		auth.GET("/orders/:id", h.Orders.GetOrder)
		auth.POST("/orders/:id/advance", h.Orders.AdvanceStatus)

		// ダッシュボード
		auth.GET("/dashboard", h.Dashboard.Get)

		// AIアシスタント
		auth.POST("/assistant/description", h.Assistant.GenerateDescription)
		auth.GET("/assistant/suggestions", h.Assistant.BusinessSuggestions)

		// UI設定
		auth.GET("/prefs/last-view", h.Prefs.GetLastView)
		auth.PUT("/prefs/last-view", h.Prefs.SetLastView)
		auth.GET("/prefs/recently-viewed", h.Prefs.RecentlyViewed)
	}

	return r
}

// health は監視用の簡易応答を返します。
func health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
