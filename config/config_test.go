package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("IG_USERNAME", "shopbot.ir")
	t.Setenv("IG_SESSION_ID", "abc123")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SHOP_HOME_URL", "https://shop.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DashboardAddr != ":8080" {
		t.Errorf("DashboardAddr = %q", cfg.DashboardAddr)
	}
	if cfg.SyncInterval != 15*time.Minute {
		t.Errorf("SyncInterval = %v", cfg.SyncInterval)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("IG_SESSION_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing IG_SESSION_ID")
	}
}

func TestLoadAllowEmptySecrets(t *testing.T) {
	t.Setenv("ALLOW_EMPTY_SECRETS", "true")
	t.Setenv("IG_USERNAME", "")
	t.Setenv("IG_SESSION_ID", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SHOP_HOME_URL", "")

	if _, err := Load(); err != nil {
		t.Fatalf("Load with ALLOW_EMPTY_SECRETS: %v", err)
	}
}

func TestLoadRejectsNonsenseInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("SYNC_INTERVAL_MINUTES", "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative interval")
	}
}
