package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.SnippetLimit != 400 {
		t.Errorf("snippet limit = %d", cfg.SnippetLimit)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.HolderPageSize <= 0 || cfg.HolderMaxPages <= 0 {
		t.Error("holder walk bounds must be positive")
	}
	if cfg.XferMaxPages <= 0 || cfg.WalletMaxPages <= 0 || cfg.FanOutLimit <= 0 {
		t.Error("walk and fan-out bounds must be positive")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXPLORER_BASE_URL", "https://explorer.test/api/v2/")
	t.Setenv("HOLDER_PAGE_SIZE", "25")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.ExplorerBaseURL != "https://explorer.test/api/v2" {
		t.Errorf("explorer base = %q, trailing slash must be trimmed", cfg.ExplorerBaseURL)
	}
	if cfg.HolderPageSize != 25 {
		t.Errorf("holder page size = %d", cfg.HolderPageSize)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, must be lowercased", cfg.LogLevel)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("HOLDER_PAGE_SIZE", "not-a-number")
	t.Setenv("TRANSFER_MAX_PAGES", "-3")

	cfg := Load()
	if cfg.HolderPageSize != New().HolderPageSize {
		t.Errorf("holder page size = %d, want default", cfg.HolderPageSize)
	}
	if cfg.XferMaxPages != New().XferMaxPages {
		t.Errorf("transfer max pages = %d, want default", cfg.XferMaxPages)
	}
}
