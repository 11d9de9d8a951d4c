// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	artisanentity "artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/auth/transport/http/dto"
	"artisan_backend/internal/feature/auth/usecase"
)

// RememberTokenHeader はRemember-Meトークンを運ぶHTTPヘッダーです。
const RememberTokenHeader = "X-Remember-Token"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	SendOtp(ctx context.Context, email string) (string, error)
	VerifyOtp(ctx context.Context, email, code string) (bool, error)
	Register(ctx context.Context, name, email, password string) (*artisanentity.ArtisanProfile, error)
	Login(ctx context.Context, email, password string, rememberMe bool, userAgent, ip string) (*artisanentity.ArtisanProfile, string, string, error)
	CheckSession(ctx context.Context, accessToken, rememberToken string) (*artisanentity.ArtisanProfile, string)
	Logout(ctx context.Context, rememberToken, artisanID string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SendOtp はワンタイムコード発行エンドポイントを処理します。
// - 登録済みメールアドレスの場合は409を返却
// - 成功時はコード付きで200を返却（インバンド配送）
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("otp send validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	code, err := h.auth.SendOtp(c.Request.Context(), req.Email)
	if errors.Is(err, usecase.ErrEmailAlreadyRegistered) {
		slog.Warn("otp send for registered email", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": usecase.ErrEmailAlreadyRegistered.Error()})
		return
	}
	if err != nil {
		slog.Error("otp send failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue code"})
		return
	}
	slog.Info("otp issued", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.SendOtpRes{Code: code})
}

// VerifyOtp はワンタイムコード検証エンドポイントを処理します。
// 不一致の場合は400を返し、保留中のコードは消費されません。
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("otp verify validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ok, err := h.auth.VerifyOtp(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		slog.Error("otp verify failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrInvalidOtp.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// Signup はユーザー登録エンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ワンタイムコード未検証のメールアドレスは403を返却
// - メール重複時は409を返却
// - 成功時は作成されたプロフィール付きで201を返却（自動ログインは行わない）
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	profile, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, usecase.ErrEmailNotVerified) {
		slog.Warn("signup without verified email", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": usecase.ErrEmailNotVerified.Error()})
		return
	}
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", req.Email, "artisan_id", profile.ID)
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// Login はユーザーログインエンドポイントを処理します。
// - 認証失敗時は401を返却
// - 認証成功時はプロフィールとトークン付きで200を返却
//   remember_me指定時のみremember_tokenが含まれます。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	profile, access, remember, err := h.auth.Login(c.Request.Context(), req.Email, req.Password,
		req.RememberMe, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// ユーザー列挙攻撃を防止するため、失敗理由は常に同一
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": usecase.ErrInvalidCredentials.Error()})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())

	res := gin.H{"profile": profile, "token": access}
	if remember != "" {
		res["remember_token"] = remember
	}
	c.JSON(http.StatusOK, res)
}

// CheckSession は起動時のセッション復元エンドポイントを処理します。
// アクセストークン（Authorizationヘッダー）とRemember-Meトークン
// （X-Remember-Tokenヘッダー）のどちらでも解決でき、どちらも無効な場合は
// エラーではなく204を返します。
func (h *AuthHandler) CheckSession(c *gin.Context) {
	access := bearerToken(c)
	remember := c.GetHeader(RememberTokenHeader)

	profile, newAccess := h.auth.CheckSession(c.Request.Context(), access, remember)
	if profile == nil {
		c.Status(http.StatusNoContent)
		return
	}

	res := gin.H{"profile": profile}
	if newAccess != "" {
		// Remember-Meトークンから昇格した新しいアクセストークン
		res["token"] = newAccess
	}
	c.JSON(http.StatusOK, res)
}

// Logout はログアウトエンドポイントを処理します。冪等です。
// 認証済みでなくても呼び出せます（既にセッションが無い場合も成功扱い）。
func (h *AuthHandler) Logout(c *gin.Context) {
	remember := c.GetHeader(RememberTokenHeader)

	// 最終画面ヒントの消去のため、アクセストークンからプロフィールIDを解決する。
	// 解決できなくてもログアウト自体は続行する。
	artisanID := ""
	if access := bearerToken(c); access != "" {
		if profile, _ := h.auth.CheckSession(c.Request.Context(), access, ""); profile != nil {
			artisanID = profile.ID
		}
	}

	if err := h.auth.Logout(c.Request.Context(), remember, artisanID); err != nil {
		slog.Error("logout failed", "error", err, "artisan_id", artisanID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// bearerToken はAuthorizationヘッダーからベアラートークンを抽出します。
func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	auth := c.GetHeader("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
