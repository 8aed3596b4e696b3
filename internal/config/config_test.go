package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestValidateLogFormat(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.LogFormat = "invalid"

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "LogFormat") || !strings.Contains(err.Error(), "oneof") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNotifySettingsMustBePaired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "all unset",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "all set",
			mutate: func(c *Config) {
				c.ResendAPIKey = "re_123"
				c.NotifyEmailFrom = "Cosmo Relay <relay@example.com>"
				c.NotifyEmailTo = "ops@example.com"
			},
			wantErr: false,
		},
		{
			name: "key without recipients",
			mutate: func(c *Config) {
				c.ResendAPIKey = "re_123"
			},
			wantErr: true,
		},
		{
			name: "recipient without key",
			mutate: func(c *Config) {
				c.NotifyEmailFrom = "relay@example.com"
				c.NotifyEmailTo = "ops@example.com"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateBaseURLRequiresHTTPSOutsideLocalhost(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.APIBaseURL = "http://pay.example.com/api/v1"

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "COSMOPAY_BASE_URL must use https") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBaseURLAllowsLocalhostHTTP(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.APIBaseURL = "http://localhost:3500/api/v1"

	if err := cfg.validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestEmailEnabled(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if cfg.EmailEnabled() {
		t.Fatal("expected email to be disabled without a Resend key")
	}

	cfg.ResendAPIKey = "re_123"
	if !cfg.EmailEnabled() {
		t.Fatal("expected email to be enabled")
	}
}

func validConfig() *Config {
	return &Config{
		APIKey:    "cp_live_key",
		LogFormat: "text",
		Port:      "8080",
	}
}

func TestLoadParsesUppercaseLogLevel(t *testing.T) {
	t.Setenv("COSMOPAY_API_KEY", "cp_live_key")
	t.Setenv("LOG_LEVEL", "DEBUG")

	// Ensure unrelated env vars from the host don't affect this test.
	t.Setenv("COSMOPAY_BASE_URL", "")
	t.Setenv("RELAY_TARGETS_FILE", "")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("NOTIFY_EMAIL_FROM", "")
	t.Setenv("NOTIFY_EMAIL_TO", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected DEBUG level, got %v", cfg.LogLevel)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("COSMOPAY_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when COSMOPAY_API_KEY is unset")
	}
}
