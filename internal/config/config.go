// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP server
	Port        int      `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`

	// Store
	StoreBackend  string `env:"STORE_BACKEND" envDefault:"mongo"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"polarix"`

	// Tokens
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`

	// Outbound mail. Notifications are disabled when SMTPHost is empty.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`

	// Template export. A non-empty bucket selects the GCS sink.
	TemplateDir    string `env:"TEMPLATE_DIR" envDefault:"./dummy_data"`
	TemplateBucket string `env:"TEMPLATE_BUCKET"`
}

// Load reads .env when present and parses the environment into a Config.
// The result is not validated.
func Load() (*Config, error) {
	_ = godotenv.Load() // ok if missing in prod

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// Validate validates the configuration and returns every problem found in
// a single error.
func (c *Config) Validate() error {
	var errors []string

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			errors = append(errors, "MONGO_URI is required when using the mongo backend")
		}
		if c.MongoDatabase == "" {
			errors = append(errors, "MONGO_DATABASE cannot be empty")
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s]", c.StoreBackend, BackendMongo, BackendMemory))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token TTL %s: must be positive", c.TokenTTL))
	}

	if c.MailEnabled() {
		if c.SMTPPort < 1 || c.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("invalid SMTP port %d", c.SMTPPort))
		}
		if c.MailFrom == "" {
			errors = append(errors, "MAIL_FROM is required when SMTP_HOST is set")
		}
	}

	if c.TemplateBucket == "" && c.TemplateDir == "" {
		errors = append(errors, "one of TEMPLATE_DIR or TEMPLATE_BUCKET must be set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
