// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	artisanentity "artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxSessionsPerArtisan は1ユーザーあたりの同時Remember-Meセッション数の上限です。
	maxSessionsPerArtisan = 5

	// otpMin/otpSpan define the 6-digit code range 100000-999999. The full
	// 000000-999999 range would also satisfy the contract; this range is
	// kept so codes never need leading-zero padding on display.
	otpMin  = 100000
	otpSpan = 900000
)

// UserRepository はクレデンシャルレコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいクレデンシャルをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyRegisteredを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレス（小文字化済み）に一致するレコードを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByArtisanID は指定されたプロフィールIDを所有するレコードを取得します。
	FindByArtisanID(ctx context.Context, artisanID string) (*entity.User, error)
}

// OtpRepository はメールアドレスごとのワンタイムコードの保存を抽象化します。
// 1メールアドレスにつき有効なコードは常に高々1つです（Putは上書き）。
type OtpRepository interface {
	// Put はコードを保存します。既存のコードは置き換えられ、無効になります。
	// Putが返った時点で上書きはコミット済みでなければなりません。
	Put(ctx context.Context, email, code string) error

	// Get は保留中のコードを返します。存在しない場合はErrOtpNotFoundを返します。
	Get(ctx context.Context, email string) (string, error)

	// Delete は保留中のコードを消費（削除）します。
	Delete(ctx context.Context, email string) error

	// MarkVerified は検証成功のマーカーを保存します。マーカーは登録が
	// 消費するまでの短時間のみ有効です。
	MarkVerified(ctx context.Context, email string) error

	// ConsumeVerified はマーカーを消費し、存在したかどうかを返します。
	ConsumeVerified(ctx context.Context, email string) (bool, error)
}

// TokenCodec はアクセストークン（短命セッション層）の発行・解決を抽象化します。
type TokenCodec interface {
	Issue(artisanID, email string) (string, error)
	Resolve(token string) (string, error)
}

// ArtisanDirectory は職人プロフィールの作成・参照を抽象化します。
// 登録時のプロフィール作成とトークン解決時の逆引きに使用します。
type ArtisanDirectory interface {
	// CreateRegistered は新規登録ユーザーのデフォルトプロフィールを作成します。
	CreateRegistered(ctx context.Context, name string) (*artisanentity.ArtisanProfile, error)

	// FindByID はプロフィールIDでプロフィールを取得します。
	FindByID(ctx context.Context, id string) (*artisanentity.ArtisanProfile, error)
}

// LastViewClearer はログアウト時にクライアントの「最後に開いた画面」ヒントを消去します。
type LastViewClearer interface {
	ClearLastView(ctx context.Context, artisanID string) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users      UserRepository
	otps       OtpRepository
	sessions   SessionRepository
	tokens     TokenCodec
	artisans   ArtisanDirectory
	prefs      LastViewClearer
	sessionTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, otps OtpRepository, sessions SessionRepository,
	tokens TokenCodec, artisans ArtisanDirectory, prefs LastViewClearer, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		otps:       otps,
		sessions:   sessions,
		tokens:     tokens,
		artisans:   artisans,
		prefs:      prefs,
		sessionTTL: sessionTTL,
	}
}

// normalizeEmail はメールアドレスをルックアップ・保存用に正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// SendOtp は未登録のメールアドレスに対して6桁のワンタイムコードを発行します。
// 既に登録済みのメールアドレスの場合、ErrEmailAlreadyRegisteredを返します。
// 保留中のコードがあれば上書きされ、以前のコードは使用不能になります。
// 発行されたコードは呼び出し元に返されます（メール配送は本システムの範囲外のため、
// 呼び出し元がインバンドで提示する責任を持ちます）。
func (u *authUsecase) SendOtp(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to check email: %w", err)
	}

	code, err := generateOtpCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	// Putが返るまで呼び出し元には戻らないため、直後のVerifyOtpは必ず最新のコードを見ます。
	if err := u.otps.Put(ctx, email, code); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// VerifyOtp は入力されたコードを検証し、一致した場合のみコードを消費します。
// 不一致・未発行の場合はfalseを返し、保留中のコードはそのまま残ります（リトライ可能）。
func (u *authUsecase) VerifyOtp(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)

	stored, err := u.otps.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrOtpNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load code: %w", err)
	}
	if stored != code {
		return false, nil
	}

	// コードはシングルユース: 一致した時点で削除し、登録が消費する
	// 検証済みマーカーに置き換える
	if err := u.otps.Delete(ctx, email); err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	if err := u.otps.MarkVerified(ctx, email); err != nil {
		return false, fmt.Errorf("failed to mark verified: %w", err)
	}
	return true, nil
}

// Register は新規ユーザーを登録し、デフォルトのプロフィールを作成します。
// VerifyOtpが残した検証済みマーカーを消費します。マーカーが無い
// （コードを一度も検証していない）場合はErrEmailNotVerifiedを返します。
// 登録後の自動ログインは行いません。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*artisanentity.ArtisanProfile, error) {
	email = normalizeEmail(email)

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	verified, err := u.otps.ConsumeVerified(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check verification: %w", err)
	}
	if !verified {
		return nil, ErrEmailNotVerified
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := u.artisans.CreateRegistered(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	user := &entity.User{Email: email, Password: string(hashed), ArtisanID: profile.ID}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login はユーザーを認証し、アクセストークンと（rememberMe時のみ）Remember-Meトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// rememberMeがfalseの場合、既存のRemember-Meセッションはすべて失効します。
func (u *authUsecase) Login(ctx context.Context, email, password string, rememberMe bool, userAgent, ip string) (*artisanentity.ArtisanProfile, string, string, error) {
	email = normalizeEmail(email)

	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	profile, err := u.artisans.FindByID(ctx, user.ArtisanID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to resolve profile: %w", err)
	}

	access, err := u.tokens.Issue(user.ArtisanID, user.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	remember := ""
	if rememberMe {
		remember, err = u.createRememberSession(ctx, user.ArtisanID, userAgent, ip)
		if err != nil {
			return nil, "", "", err
		}
	} else {
		// 「このクライアントを記憶しない」選択は既存の永続トークンの破棄を意味する
		if err := u.sessions.RevokeAllByArtisanID(ctx, user.ArtisanID); err != nil {
			return nil, "", "", fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}

	return profile, access, remember, nil
}

// createRememberSession はRemember-Meセッションを作成し、トークンを返します。
// セッション数が上限に達している場合は最も古いものを削除します。
func (u *authUsecase) createRememberSession(ctx context.Context, artisanID, userAgent, ip string) (string, error) {
	count, err := u.sessions.CountByArtisanID(ctx, artisanID)
	if err != nil {
		return "", fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerArtisan {
		if err := u.sessions.DeleteOldestByArtisanID(ctx, artisanID); err != nil {
			return "", fmt.Errorf("failed to evict session: %w", err)
		}
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		ArtisanID: artisanID,
		UserAgent: userAgent,
		IPAddress: ip,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// CheckSession はアクセストークン（短命層）とRemember-Meトークン（永続層）から
// 現在のプロフィールを解決します。アクセストークンが無効でRemember-Meトークンが
// 有効な場合、新しいアクセストークンを発行して永続層を短命層に昇格させます。
// 解決できない場合はエラーではなく (nil, "") を返します（fail closed）。
func (u *authUsecase) CheckSession(ctx context.Context, accessToken, rememberToken string) (*artisanentity.ArtisanProfile, string) {
	if accessToken != "" {
		if artisanID, err := u.tokens.Resolve(accessToken); err == nil {
			if profile, err := u.artisans.FindByID(ctx, artisanID); err == nil {
				return profile, ""
			}
		}
	}

	if rememberToken == "" {
		return nil, ""
	}

	session, err := u.sessions.FindByID(ctx, rememberToken)
	if err != nil || !session.IsValid() {
		return nil, ""
	}

	profile, err := u.artisans.FindByID(ctx, session.ArtisanID)
	if err != nil {
		return nil, ""
	}

	email := ""
	if user, err := u.users.FindByArtisanID(ctx, session.ArtisanID); err == nil {
		email = user.Email
	}

	access, err := u.tokens.Issue(session.ArtisanID, email)
	if err != nil {
		slog.Warn("failed to promote remember-me session", "error", err)
		return nil, ""
	}
	return profile, access
}

// Logout はRemember-Meセッションを失効させ、最後に開いた画面のヒントを消去します。
// 冪等: 既にログアウト済みでもエラーにはなりません。
func (u *authUsecase) Logout(ctx context.Context, rememberToken, artisanID string) error {
	if rememberToken != "" {
		if err := u.sessions.Revoke(ctx, rememberToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("failed to revoke session: %w", err)
		}
	}
	if artisanID != "" {
		if err := u.prefs.ClearLastView(ctx, artisanID); err != nil {
			// ヒント消去の失敗はログアウト自体を妨げない
			slog.Warn("failed to clear last view", "artisan_id", artisanID, "error", err)
		}
	}
	return nil
}

// CleanupExpiredSessions は期限切れのRemember-Meセッションを削除します。
// サーバ起動時および定期実行されることを想定しています。
func (u *authUsecase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// generateOtpCode は一様ランダムな6桁コードを生成します。
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", otpMin+n.Int64()), nil
}

// generateSessionToken は64文字の16進Remember-Meトークンを生成します。
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
