package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel       LogLeveler     `mapstructure:"LOG_LEVEL"`
	HTTP           HTTP           `mapstructure:",squash"`
	BookingService BookingService `mapstructure:",squash"`
	Offers         Offers         `mapstructure:",squash"`
	Sessions       Sessions       `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
}

// Sessions controls the in-memory wizard session registry. A TTL of zero
// disables expiry.
type Sessions struct {
	TTL time.Duration `mapstructure:"SESSION_TTL"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// BookingService holds the remote booking service client configuration.
type BookingService struct {
	BaseURL      string        `mapstructure:"BOOKING_SERVICE_BASE_URL"`
	Timeout      time.Duration `mapstructure:"BOOKING_SERVICE_TIMEOUT"`
	MaxRetries   int           `mapstructure:"BOOKING_SERVICE_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"BOOKING_SERVICE_RATE_LIMIT"`
}

// Offers controls the redis offer cache.
type Offers struct {
	CacheExpiration time.Duration `mapstructure:"OFFER_CACHE_EXPIRATION"`
	LockTimeout     time.Duration `mapstructure:"OFFER_LOCK_TIMEOUT"`
}
