package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":3001" {
		t.Errorf("unexpected default addr %q", cfg.Addr)
	}
	if cfg.CaspioTable != "A_SqSpace_Users_SMART" {
		t.Errorf("unexpected default table %q", cfg.CaspioTable)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Errorf("expected fallback allowed origins")
	}
	if cfg.Production() {
		t.Errorf("default environment must not be production")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("STRIPE_SECRET_KEY", "sk_live_x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("unexpected addr %q", cfg.Addr)
	}
	if !cfg.Production() {
		t.Errorf("expected production environment")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestValidateCollectsAllMissing(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, name := range []string{"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "CASPIO_TOKEN"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}

	cfg = Config{
		StripeSecretKey:     "sk",
		StripeWebhookSecret: "whsec",
		CaspioToken:         "tok",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
