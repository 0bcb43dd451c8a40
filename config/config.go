// config/config.go
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// HTTPConfig configures the storefront listener
type HTTPConfig struct {
	Port string `env:"PORT" envDefault:"8000"`
}

// APIConfig points at the commerce backend that owns products, carts and orders
type APIConfig struct {
	URL     string        `env:"API_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// SessionConfig configures the shopper session store and cookie
type SessionConfig struct {
	RedisAddr    string        `env:"REDIS_ADDR"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName   string        `env:"SESSION_COOKIE" envDefault:"sid"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// SweepInterval paces expiry of in-memory sessions
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
}

// RabbitConfig enables order-placed event publishing when URL is set
type RabbitConfig struct {
	URL      string `env:"RABBIT_URL"`
	Exchange string `env:"RABBIT_EXCHANGE" envDefault:"storefront"`
}

// EmailConfig enables order confirmation emails when Token is set
type EmailConfig struct {
	Token  string `env:"POSTMARK_API_TOKEN"`
	Sender string `env:"EMAIL_SENDER"`
}

// GoogleConfig enables Google sign-in when ClientID is set
type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
}

type Common struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type Config struct {
	Common  Common
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Rabbit  RabbitConfig
	Email   EmailConfig
	Google  GoogleConfig
}

// Load reads an optional .env file and then parses the environment.
// It reports whether a .env file was found so the caller can log it.
func Load() (Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, dotenv, err
	}
	return cfg, dotenv, nil
}
