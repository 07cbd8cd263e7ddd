// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps the process environment onto typed settings with
caarlos0/env.

The API server reads [Config] once at startup and passes the parts each
component needs through constructors. The yamdbctl maintenance tool reads the
smaller [CLIConfig], which needs nothing beyond a database URL.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// # Configuration Schema

// Supported MAIL_BACKEND values.
const (
	MailBackendSMTP = "smtp"
	MailBackendLog  = "log"
)

// Config holds all runtime configuration for the YaMDB API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL        string        `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns         int32         `env:"DB_MAX_CONNS"         envDefault:"25"`
	DBMinConns         int32         `env:"DB_MIN_CONNS"         envDefault:"5"`
	DBStatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT" envDefault:"30s"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), used for the signup resend cooldown
	RedisURL      string `env:"REDIS_URL,required,notEmpty"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Access token signing
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// SignupCooldown is the minimum delay between two codes mailed to one address.
	SignupCooldown time.Duration `env:"SIGNUP_COOLDOWN" envDefault:"60s"`

	// Outgoing mail ("smtp" or "log")
	MailBackend  string        `env:"MAIL_BACKEND"  envDefault:"log"`
	MailFrom     string        `env:"MAIL_FROM"     envDefault:"noreply@yamdb.local"`
	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT"  envDefault:"10s"`

	// Tracing (OTLP over HTTP). Disabled when empty.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Reject backends the mail factory does not know before any connection is opened.
	if cfg.MailBackend != MailBackendSMTP && cfg.MailBackend != MailBackendLog {
		return nil, fmt.Errorf("config: unknown MAIL_BACKEND %q", cfg.MailBackend)
	}
	if cfg.MailBackend == MailBackendSMTP && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("config: SMTP_HOST is required when MAIL_BACKEND=smtp")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

// PoolSettings returns the pgx pool sizing for the API server.
func (c *Config) PoolSettings() postgres.PoolSettings {
	return postgres.PoolSettings{
		MaxConns:         c.DBMaxConns,
		MinConns:         c.DBMinConns,
		StatementTimeout: c.DBStatementTimeout,
	}
}

// # Admin CLI

// CLIConfig is the subset of [Config] the yamdbctl tool needs.
//
// It skips the server-only requirements (Redis, signing keys) so maintenance
// commands run with a database URL alone.
type CLIConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// PoolSettings returns a pool sized for one maintenance command at a time.
func (c *CLIConfig) PoolSettings() postgres.PoolSettings {
	return postgres.PoolSettings{MaxConns: 2, MinConns: 0, StatementTimeout: 5 * time.Minute}
}

// LoadCLI parses the environment into a [CLIConfig].
func LoadCLI() (*CLIConfig, error) {
	cfg := &CLIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
