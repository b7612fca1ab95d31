package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration. It is loaded once in main and
// treated as read-only for the lifetime of the process; request-handling code
// never reads the environment directly.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth   AuthConfig
	Ollama OllamaConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

// AuthConfig selects the token trust anchor. TestMode switches signature
// verification from Google's published certificates to a locally configured
// HS256 secret; every other validation rule stays the same. It is never
// inferred — it must be set explicitly.
type AuthConfig struct {
	GoogleClientID    string `env:"GOOGLE_CLIENT_ID"`
	TestMode          bool   `env:"AUTH_TEST_MODE, default=false"`
	TestSigningSecret string `env:"AUTH_TEST_SIGNING_SECRET"`
}

// OllamaConfig configures the translation backend.
type OllamaConfig struct {
	BaseURL               string        `env:"OLLAMA_BASE_URL, default=http://localhost:11434"`
	DefaultModel          string        `env:"OLLAMA_DEFAULT_MODEL, default=llama3.2"`
	DefaultTargetLanguage string        `env:"DEFAULT_TARGET_LANGUAGE, default=spanish"`
	Timeout               time.Duration `env:"OLLAMA_TIMEOUT, default=60s"`
}

// MongoConfig configures the optional translation-history store. An empty URI
// disables history entirely. Timeout bounds both the startup connect and
// server selection afterwards.
type MongoConfig struct {
	URI      string        `env:"MONGO_URI"`
	Database string        `env:"MONGO_DB, default=translate_gateway"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig configures the optional translation cache. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB, default=0"`
	TTL         time.Duration `env:"CACHE_TTL, default=24h"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.TestMode && cfg.Auth.TestSigningSecret == "" {
		return nil, fmt.Errorf("config: AUTH_TEST_MODE requires AUTH_TEST_SIGNING_SECRET")
	}
	return &cfg, nil
}
