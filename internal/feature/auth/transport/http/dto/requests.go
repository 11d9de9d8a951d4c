// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SendOtpReq は/auth/otp/sendエンドポイントのリクエストボディを表します。
type SendOtpReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOtpRes はワンタイムコード発行成功時のレスポンスです。
// メール配送は本システムの範囲外のため、コードはインバンドで返されます。
type SendOtpRes struct {
	Code string `json:"code"`
}

// VerifyOtpReq は/auth/otp/verifyエンドポイントのリクエストボディを表します。
type VerifyOtpReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// SignupReq は/signupエンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式・パスワード長のバリデーションを含みます。
type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}
