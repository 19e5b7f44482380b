package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type Config struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL"     envDefault:"file:site.db"`
	MaxConns        int32         `env:"DB_MAX_CONNS"     envDefault:"10"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	SeedTitle       string        `env:"SEED_TITLE"       envDefault:"Initial Test Task (ID 1)"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is empty")
	}
	return cfg, nil
}

// Driver picks the storage backend from the DATABASE_URL scheme.
// Anything that is not a postgres URL is treated as a SQLite DSN.
func (c Config) Driver() Driver {
	u := strings.ToLower(c.DatabaseURL)
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// SQLiteDSN strips an optional sqlite:// prefix so the rest can be handed
// to the driver as is.
func (c Config) SQLiteDSN() string {
	dsn := c.DatabaseURL
	for _, p := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(strings.ToLower(dsn), p) {
			return dsn[len(p):]
		}
	}
	return dsn
}
