package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.ScanCooldown != 10*time.Second {
		t.Errorf("ScanCooldown = %v, want 10s", cfg.ScanCooldown)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("RateLimitPerMin = %d, want 120", cfg.RateLimitPerMin)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("SCAN_COOLDOWN", "30s")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg := Load()
	if cfg.HTTPPort != "9999" {
		t.Errorf("HTTPPort = %q, want 9999", cfg.HTTPPort)
	}
	if cfg.ScanCooldown != 30*time.Second {
		t.Errorf("ScanCooldown = %v, want 30s", cfg.ScanCooldown)
	}
	if cfg.RateLimitPerMin != 5 {
		t.Errorf("RateLimitPerMin = %d, want 5", cfg.RateLimitPerMin)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCAN_COOLDOWN", "soon")
	t.Setenv("RATE_LIMIT_PER_MIN", "many")

	cfg := Load()
	if cfg.ScanCooldown != 10*time.Second {
		t.Errorf("invalid duration must fall back, got %v", cfg.ScanCooldown)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("invalid int must fall back, got %d", cfg.RateLimitPerMin)
	}
}

func TestLocation(t *testing.T) {
	if (App{Timezone: "Local"}).Location() != time.Local {
		t.Error("Local must resolve to time.Local")
	}
	loc := (App{Timezone: "UTC"}).Location()
	if loc.String() != "UTC" {
		t.Errorf("UTC zone = %q", loc)
	}
	if (App{Timezone: "Mars/Olympus"}).Location() != time.Local {
		t.Error("unknown zone must fall back to local")
	}
}
