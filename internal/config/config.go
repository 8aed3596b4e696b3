package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// APIKey authenticates outbound Cosmo Pay API calls and is the secret
	// webhook deliveries are signed with.
	APIKey     string `env:"COSMOPAY_API_KEY,required" validate:"required"`
	APIBaseURL string `env:"COSMOPAY_BASE_URL" validate:"omitempty,url"`

	// TargetsFile points at the YAML file declaring downstream forwarding
	// targets. Empty disables forwarding.
	TargetsFile string `env:"RELAY_TARGETS_FILE"`

	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	ResendAPIKey    string `env:"RESEND_API_KEY"`
	NotifyEmailFrom string `env:"NOTIFY_EMAIL_FROM"`
	NotifyEmailTo   string `env:"NOTIFY_EMAIL_TO" validate:"omitempty,email"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// EmailEnabled reports whether paid-invoice email notifications are
// configured.
func (c *Config) EmailEnabled() bool {
	return strings.TrimSpace(c.ResendAPIKey) != ""
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	hasResendKey := strings.TrimSpace(c.ResendAPIKey) != ""
	hasFrom := strings.TrimSpace(c.NotifyEmailFrom) != ""
	hasTo := strings.TrimSpace(c.NotifyEmailTo) != ""
	if hasResendKey != hasFrom || hasResendKey != hasTo {
		return fmt.Errorf("RESEND_API_KEY, NOTIFY_EMAIL_FROM and NOTIFY_EMAIL_TO must be set together")
	}

	baseURL := strings.TrimSpace(c.APIBaseURL)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("COSMOPAY_BASE_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("COSMOPAY_BASE_URL must use https outside local development")
		}
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
