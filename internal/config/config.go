// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the DenimHouse admin console.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete console configuration.
type Config struct {
	Version string `toml:"version"`

	API     APIConfig     `toml:"api"`
	Session SessionConfig `toml:"session"`
	Cache   CacheConfig   `toml:"cache"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig describes how to reach the DenimHouse backend.
type APIConfig struct {
	// BaseURL is the API origin, e.g. https://api.denimhouse.id
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request deadline in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSecond paces outgoing requests; 0 uses the default
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// LogoutRetries is how many extra attempts the server-side logout gets
	LogoutRetries int `toml:"logout_retries"`
}

// SessionConfig controls session persistence and the inactivity logout.
type SessionConfig struct {
	// InactivityMinutes is how long the console may sit idle before the
	// session is ended. Valid range is 5-120 minutes.
	InactivityMinutes int `toml:"inactivity_minutes"`
	// GuardResetMillis is how long logout stays latched against duplicate
	// triggers before the state machine settles to logged out.
	GuardResetMillis int `toml:"guard_reset_millis"`
	// Store selects token persistence: "file" (encrypted at rest) or
	// "memory" (forgotten on exit).
	Store string `toml:"store"`
	// Dir overrides where the encrypted session file lives
	// (empty = ~/.denimhouse).
	Dir string `toml:"dir"`
}

// CacheConfig controls the offline list snapshots.
type CacheConfig struct {
	// Enabled turns snapshotting of list responses on or off
	Enabled bool `toml:"enabled"`
	// Path overrides the snapshot database location
	// (empty = ~/.denimhouse/snapshots.db).
	Path string `toml:"path"`
}

// ExportConfig controls report exports.
type ExportConfig struct {
	// Dir is where exported report files are written (empty = current dir)
	Dir string `toml:"dir"`
	// Format is the default export format: "csv" or "json"
	Format string `toml:"format"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// PageSize is the rows-per-page for list screens
	PageSize int `toml:"page_size"`
	// CompactMode uses a tighter layout
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:           "http://127.0.0.1:8000",
			TimeoutSecs:       30,
			RequestsPerSecond: 10,
			LogoutRetries:     0,
		},

		Session: SessionConfig{
			InactivityMinutes: 30,
			GuardResetMillis:  2000,
			Store:             "file",
		},

		Cache: CacheConfig{
			Enabled: true,
		},

		Export: ExportConfig{
			Format: "csv",
		},

		UI: UIConfig{
			Theme:    "dark",
			PageSize: 15,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the console configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".denimhouse"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default file, falling back to built-in
// defaults when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# DenimHouse admin console configuration")
	fmt.Fprintln(file, "# Generated by denimhouse-admin - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.API.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "base_url is required",
		})
	} else {
		parsed, err := url.Parse(c.API.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.API.BaseURL),
			})
		}
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("timeout_secs must be 1-300, got %d", c.API.TimeoutSecs),
		})
	}

	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.requests_per_second",
			Message: "cannot be negative",
		})
	}

	// SECURITY: An unattended console holding an admin token must time out.
	// The window is bounded so a typo cannot silently disable the logout.
	if c.Session.InactivityMinutes < 5 || c.Session.InactivityMinutes > 120 {
		errs = append(errs, ValidationError{
			Field:   "session.inactivity_minutes",
			Message: fmt.Sprintf("inactivity_minutes must be 5-120, got %d", c.Session.InactivityMinutes),
		})
	}

	if c.Session.GuardResetMillis < 100 || c.Session.GuardResetMillis > 10000 {
		errs = append(errs, ValidationError{
			Field:   "session.guard_reset_millis",
			Message: fmt.Sprintf("guard_reset_millis must be 100-10000, got %d", c.Session.GuardResetMillis),
		})
	}

	validStores := map[string]bool{"file": true, "memory": true}
	if !validStores[strings.ToLower(c.Session.Store)] {
		errs = append(errs, ValidationError{
			Field:   "session.store",
			Message: fmt.Sprintf("invalid store '%s', must be one of: file, memory", c.Session.Store),
		})
	}

	validFormats := map[string]bool{"csv": true, "json": true}
	if !validFormats[strings.ToLower(c.Export.Format)] {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: csv, json", c.Export.Format),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.PageSize < 5 || c.UI.PageSize > 100 {
		errs = append(errs, ValidationError{
			Field:   "ui.page_size",
			Message: fmt.Sprintf("page_size must be 5-100, got %d", c.UI.PageSize),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.RequestsPerSecond == 0 {
		c.API.RequestsPerSecond = defaults.API.RequestsPerSecond
	}
	if c.Session.InactivityMinutes == 0 {
		c.Session.InactivityMinutes = defaults.Session.InactivityMinutes
	}
	if c.Session.GuardResetMillis == 0 {
		c.Session.GuardResetMillis = defaults.Session.GuardResetMillis
	}
	if c.Session.Store == "" {
		c.Session.Store = defaults.Session.Store
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.PageSize == 0 {
		c.UI.PageSize = defaults.UI.PageSize
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DENIMHOUSE_BASE_URL: overrides api.base_url
//   - DENIMHOUSE_TIMEOUT_SECS: overrides api.timeout_secs
//   - DENIMHOUSE_INACTIVITY_MINUTES: overrides session.inactivity_minutes
//   - DENIMHOUSE_SESSION_STORE: overrides session.store
//   - DENIMHOUSE_CACHE: set to "0" or "false" to disable snapshots
//   - DENIMHOUSE_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("DENIMHOUSE_BASE_URL"); base != "" {
		c.API.BaseURL = base
	}

	if secs := os.Getenv("DENIMHOUSE_TIMEOUT_SECS"); secs != "" {
		if v, err := strconv.Atoi(secs); err == nil {
			c.API.TimeoutSecs = v
		}
	}

	if mins := os.Getenv("DENIMHOUSE_INACTIVITY_MINUTES"); mins != "" {
		if v, err := strconv.Atoi(mins); err == nil {
			c.Session.InactivityMinutes = v
		}
	}

	if store := os.Getenv("DENIMHOUSE_SESSION_STORE"); store != "" {
		c.Session.Store = store
	}

	if cacheEnv := os.Getenv("DENIMHOUSE_CACHE"); cacheEnv != "" {
		c.Cache.Enabled = cacheEnv != "0" && strings.ToLower(cacheEnv) != "false"
	}

	if theme := os.Getenv("DENIMHOUSE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// RequestTimeout returns the API timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// InactivityWindow returns the inactivity logout window as a duration.
func (c *Config) InactivityWindow() time.Duration {
	return time.Duration(c.Session.InactivityMinutes) * time.Minute
}

// GuardReset returns the logout guard latch duration.
func (c *Config) GuardReset() time.Duration {
	return time.Duration(c.Session.GuardResetMillis) * time.Millisecond
}

// SessionDir returns the directory for the encrypted session file.
func (c *Config) SessionDir() (string, error) {
	if c.Session.Dir != "" {
		return c.Session.Dir, nil
	}
	return Dir()
}

// CachePath returns the snapshot database path, or "" when caching is off.
func (c *Config) CachePath() (string, error) {
	if !c.Cache.Enabled {
		return "", nil
	}
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snapshots.db"), nil
}
