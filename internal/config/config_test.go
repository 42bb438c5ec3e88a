package config

import (
	"testing"
	"time"
)

func TestGetFallsBack(t *testing.T) {
	t.Setenv("GAZ_TEST_SET", "value")

	if got := Get("GAZ_TEST_SET", "x"); got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
	if got := Get("GAZ_TEST_UNSET", "x"); got != "x" {
		t.Errorf("Get = %q, want fallback", got)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("GAZ_TEST_INT", "3")
	t.Setenv("GAZ_TEST_BAD_INT", "three")
	t.Setenv("GAZ_TEST_DUR", "90s")

	if got := GetInt("GAZ_TEST_INT", 0); got != 3 {
		t.Errorf("GetInt = %d, want 3", got)
	}
	if got := GetInt("GAZ_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt invalid = %d, want fallback 7", got)
	}
	if got := GetDuration("GAZ_TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("GetDuration = %v, want 90s", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.CacheTTL)
	}
}
