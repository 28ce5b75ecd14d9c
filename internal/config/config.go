// Package config loads server configuration from the environment. Every
// vendor credential lives here, server-side only; nothing in this struct is
// ever serialized into a page or response.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration for the onboarding server.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":3001"`
	Environment string `env:"NODE_ENV" envDefault:"development"`

	// FrontendURL is the public base URL of the wizard; the payment
	// provider's return and refresh callbacks are built from it.
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:3001"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	CaspioBaseURL string `env:"CASPIO_BASE_URL" envDefault:"https://c1acc979.caspio.com"`
	CaspioToken   string `env:"CASPIO_TOKEN"`
	CaspioTable   string `env:"CASPIO_TABLE" envDefault:"A_SqSpace_Users_SMART"`

	ThemeName    string `env:"THEME" envDefault:"smart"`
	ThemeVariant string `env:"THEME_VARIANT" envDefault:"light"`
}

// Load reads configuration from process environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "https://smartcostseg.com"}
	}
	return cfg, nil
}

// Production reports whether the server runs with production hardening
// (HTTPS enforcement on the relay endpoint).
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate reports the credentials a fully functional deployment requires.
// Missing values are collected rather than failing one at a time.
func (c Config) Validate() error {
	var missing []string
	if c.StripeSecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.StripeWebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	if c.CaspioToken == "" {
		missing = append(missing, "CASPIO_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
