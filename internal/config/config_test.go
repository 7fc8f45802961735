package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GESDOC_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.UploadDir != "./uploads" {
		t.Fatalf("upload dir = %q", cfg.UploadDir)
	}
	if cfg.MaxUploadSize != 10<<20 {
		t.Fatalf("max upload size = %d", cfg.MaxUploadSize)
	}
	if cfg.RateBurst != 20 || cfg.RatePerSec != 10 {
		t.Fatalf("rate = %d/%d", cfg.RateBurst, cfg.RatePerSec)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GESDOC_JWT_SECRET", "test-secret")
	t.Setenv("GESDOC_PORT", "9090")
	t.Setenv("GESDOC_TOKEN_TTL", "30m")
	t.Setenv("GESDOC_RATE_BURST", "5")
	t.Setenv("GESDOC_CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.RateBurst != 5 {
		t.Fatalf("burst = %d", cfg.RateBurst)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("GESDOC_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("GESDOC_JWT_SECRET", "test-secret")
	t.Setenv("GESDOC_TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad duration")
	}

	t.Setenv("GESDOC_TOKEN_TTL", "1h")
	t.Setenv("GESDOC_RATE_BURST", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad integer")
	}
}
