package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Haggle"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"haggle"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_ISSUER"`
	}

	PayPal struct {
		ClientID       string        `envconfig:"PAYPAL_CLIENT_ID"`
		Secret         string        `envconfig:"PAYPAL_SECRET"`
		BaseURL        string        `envconfig:"PAYPAL_API_BASE" default:"https://api-m.sandbox.paypal.com"`
		PublicClientID string        `envconfig:"PAYPAL_PUBLIC_CLIENT_ID"`
		Currency       string        `envconfig:"PAYPAL_CURRENCY" default:"USD"`
		Timeout        time.Duration `envconfig:"PAYPAL_TIMEOUT" default:"15s"`
	}

	Messaging struct {
		// Broker is "memory" for a single instance or "postgres" to fan out
		// through LISTEN/NOTIFY across instances.
		Broker  string `envconfig:"MESSAGE_BROKER" default:"memory"`
		Channel string `envconfig:"MESSAGE_CHANNEL" default:"haggle_messages"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel parses App.LogLevel, falling back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Messaging.Broker {
	case "memory", "postgres":
	default:
		return nil, fmt.Errorf("unknown MESSAGE_BROKER %q", cfg.Messaging.Broker)
	}

	return &cfg, nil
}
