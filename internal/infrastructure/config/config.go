package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// NotifyWorkers sizes the notification delivery pool.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER,         default=postgres"`
	DSN          string `env:"DB_DSN,            default=host=localhost user=postgres password=postgres dbname=cuentas port=5432 sslmode=disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	Debug        bool   `env:"DB_DEBUG,          default=false"`
}

// RedisConfig is optional: an empty Addr disables refresh-token revocation.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" && c.Env != "development" {
		return errors.New("config: JWT_SECRET is required outside development")
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "dev-secret-do-not-use"
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("config: token lifetimes must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}
