package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Quote   QuoteConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://127.0.0.1:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,           default=12h"`
	CookieName   string        `env:"SESSION_COOKIE,        default=pos_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type QuoteConfig struct {
	// Debounce is the window that coalesces cart mutations into one bill
	// calculation request.
	Debounce time.Duration `env:"QUOTE_DEBOUNCE, default=500ms"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
