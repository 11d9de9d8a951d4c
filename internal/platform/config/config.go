// Package config loads runtime configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings for the marketplace backend.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// JWTSecret signs access tokens. Empty is tolerated in development
	// but logged loudly at startup.
	JWTSecret string `env:"JWT_SECRET"`

	// JWTExpiration is the lifetime of an access token (the ephemeral
	// session tier).
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"15m"`

	// SessionTTL is the lifetime of a remember-me session (the durable
	// session tier).
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// GeminiModel is the model used for all assistant calls.
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// AssistantRateLimit caps Gemini calls per minute.
	AssistantRateLimit int `env:"ASSISTANT_RATE_LIMIT" envDefault:"30"`

	// ProfitMargin is the simulated margin applied when recording order
	// revenue on the dashboard. A simulation convenience, not an
	// accounting rule.
	ProfitMargin float64 `env:"PROFIT_MARGIN" envDefault:"0.6"`

	// ImageFetchTimeout bounds product-image downloads for description
	// generation.
	ImageFetchTimeout time.Duration `env:"IMAGE_FETCH_TIMEOUT" envDefault:"10s"`

	// CatalogCacheTTL is the Redis TTL for cached product reads.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
