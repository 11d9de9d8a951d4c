package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Codec issues and resolves signed access tokens. The token is the ephemeral
// session tier: it is never persisted server-side and carries the artisan id
// it was issued for.
type Codec interface {
	// Issue creates a signed access token for the given artisan.
	Issue(artisanID, email string) (string, error)

	// Resolve validates a token and returns the artisan id it is bound
	// to. Malformed, expired or unknown tokens return an error; callers
	// that must fail closed treat any error as "no session".
	Resolve(token string) (string, error)
}

// codec implements the Codec interface with HS256 signing.
type codec struct {
	secret     []byte
	expiration time.Duration
}

// NewCodec creates a Codec with the provided secret and token lifetime.
func NewCodec(secret string, expiration time.Duration) Codec {
	return &codec{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Issue creates a signed JWT with standard claims.
func (c *codec) Issue(artisanID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   artisanID,
		"exp":   time.Now().Add(c.expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Resolve parses and verifies a token, returning the bound artisan id.
func (c *codec) Resolve(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing subject")
	}
	return sub, nil
}
