// Package config loads and manages the jill client configuration.
// Configuration source priority (highest to lowest):
// 1. Environment variables (JILL_API_URL, JILL_TIMEOUT_MS, JILL_LOG_LEVEL)
// 2. Config file path specified via --config flag
// 3. ~/.config/jill/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL points at a local backend, matching the development setup
// the storefront ships with.
const DefaultAPIURL = "http://localhost:5000/api/v1"

// Config is the complete configuration structure for the jill client.
type Config struct {
	// APIURL is the backend base endpoint, including the /api/v1 prefix.
	APIURL string `yaml:"api_url"`

	// TimeoutMS bounds each API call in milliseconds.
	TimeoutMS int `yaml:"timeout_ms"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DefaultRole preselects the login form role: "admin" or "customer".
	DefaultRole string `yaml:"default_role"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIURL:      DefaultAPIURL,
		TimeoutMS:   5000,
		LogLevel:    "warn",
		DefaultRole: "customer",
	}
}

// Timeout returns TimeoutMS as a duration, falling back to 5s for
// non-positive values.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jill", "config.yaml")
}

// Load reads the config file and merges environment variable overrides.
// A missing file is fine; defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = DefaultPath()
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save persists the given settings into ~/.config/jill/config.yaml,
// preserving any fields the file already has that this version doesn't
// know about.
func Save(cfg *Config) error {
	cfgPath := DefaultPath()
	if cfgPath == "" {
		return fmt.Errorf("cannot determine home directory")
	}

	// Read the existing file into a generic map to preserve unknown fields.
	raw := make(map[string]any)
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw) // ignore errors; start fresh if corrupt
	}

	raw["api_url"] = cfg.APIURL
	raw["timeout_ms"] = cfg.TimeoutMS
	if cfg.LogLevel != "" {
		raw["log_level"] = cfg.LogLevel
	}
	if cfg.DefaultRole != "" {
		raw["default_role"] = cfg.DefaultRole
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(cfgPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JILL_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("JILL_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TimeoutMS = ms
		}
	}
	if v := os.Getenv("JILL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
