package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("token ttl = %v, want 1h default", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("backend = %q, want local default", cfg.Storage.Backend)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("port = %q, want 8080 default", cfg.App.Port)
	}
}

func TestLoadCustomTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "30m")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("token ttl = %v, want 30m", cfg.Auth.TokenTTL)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed TOKEN_TTL")
	}
}
