package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.StateTickInterval != 30*time.Second {
		t.Errorf("Expected default tick 30s, got %v", cfg.StateTickInterval)
	}
	if cfg.EventMinDelay != 60*time.Second || cfg.EventMaxDelay != 120*time.Second {
		t.Errorf("Expected default event window 60s-120s, got %v-%v", cfg.EventMinDelay, cfg.EventMaxDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OFFICE_HTTP_ADDR", ":9999")
	t.Setenv("OFFICE_STATE_TICK", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected overridden config to load, got %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected addr :9999, got %s", cfg.HTTPAddr)
	}
	if cfg.StateTickInterval != 5*time.Second {
		t.Errorf("Expected tick 5s, got %v", cfg.StateTickInterval)
	}
}

func TestLoadRejectsInvertedWindow(t *testing.T) {
	t.Setenv("OFFICE_EVENT_MIN_DELAY", "2m")
	t.Setenv("OFFICE_EVENT_MAX_DELAY", "1m")

	if _, err := Load(); err == nil {
		t.Errorf("Expected error for inverted event delay window")
	}
}
