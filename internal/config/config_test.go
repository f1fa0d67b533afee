package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("APPOINTMENT_PRICE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	if cfg.TokenTTL != 5*time.Hour {
		t.Errorf("expected default token ttl 5h, got %v", cfg.TokenTTL)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected default store timeout 5s, got %v", cfg.StoreTimeout)
	}
	if cfg.AppointmentPrice != 25 {
		t.Errorf("expected default price 25, got %v", cfg.AppointmentPrice)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected default CORS origins: %v", cfg.CORSOrigins)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("APPOINTMENT_PRICE", "40.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")

	cfg := Load()

	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.TokenTTL)
	}
	if cfg.AppointmentPrice != 40.5 {
		t.Errorf("expected 40.5, got %v", cfg.AppointmentPrice)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.LoginRateLimit != 3 {
		t.Errorf("expected rate limit 3, got %d", cfg.LoginRateLimit)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
}

func TestValidateRejectsShortSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	if err := Load().Validate(); err == nil {
		t.Fatal("expected validation error for short secret")
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	if err := Load().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{ServerPort: "9090"}
	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}
}
