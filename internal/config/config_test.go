// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0.0"

[api]
base_url = "https://api.denimhouse.id"
timeout_secs = 15

[session]
inactivity_minutes = 10

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.denimhouse.id" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Errorf("timeout = %v", cfg.RequestTimeout())
	}
	if cfg.InactivityWindow() != 10*time.Minute {
		t.Errorf("inactivity window = %v", cfg.InactivityWindow())
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	// Unset fields fall back to defaults.
	if cfg.UI.PageSize != 15 {
		t.Errorf("page_size = %d, want default 15", cfg.UI.PageSize)
	}
	if cfg.Session.Store != "file" {
		t.Errorf("store = %q, want default file", cfg.Session.Store)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "denimhouse.id" }, "api.base_url"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
		{"inactivity too short", func(c *Config) { c.Session.InactivityMinutes = 1 }, "session.inactivity_minutes"},
		{"inactivity too long", func(c *Config) { c.Session.InactivityMinutes = 1000 }, "session.inactivity_minutes"},
		{"unknown store", func(c *Config) { c.Session.Store = "redis" }, "session.store"},
		{"unknown export format", func(c *Config) { c.Export.Format = "xlsx" }, "export.format"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var errs ValidateErrors
			if !errors.As(err, &errs) {
				t.Fatalf("err = %T", err)
			}
			found := false
			for _, ve := range errs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s in %v", tt.field, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DENIMHOUSE_BASE_URL", "https://staging.denimhouse.id")
	t.Setenv("DENIMHOUSE_INACTIVITY_MINUTES", "45")
	t.Setenv("DENIMHOUSE_CACHE", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "https://staging.denimhouse.id" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Session.InactivityMinutes != 45 {
		t.Errorf("inactivity_minutes = %d", cfg.Session.InactivityMinutes)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.denimhouse.id"
	cfg.Session.InactivityMinutes = 20
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("base_url = %q", loaded.API.BaseURL)
	}
	if loaded.Session.InactivityMinutes != 20 {
		t.Errorf("inactivity_minutes = %d", loaded.Session.InactivityMinutes)
	}
}

func TestLoadFromPathRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://api.denimhouse.id"

[session]
inactivity_minutes = 2
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "inactivity_minutes") {
		t.Errorf("err = %v", err)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.denimhouse.id"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int64
	var lastURL atomic.Value
	w, err := NewWatcher(path, func(c *Config) {
		lastURL.Store(c.API.BaseURL)
		reloads.Add(1)
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	cfg.API.BaseURL = "https://staging.denimhouse.id"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no reload observed")
		case <-time.After(50 * time.Millisecond):
		}
	}
	if got := lastURL.Load(); got != "https://staging.denimhouse.id" {
		t.Errorf("reloaded base_url = %v", got)
	}
}
