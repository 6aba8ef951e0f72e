// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for climchat.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.climchat/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete climchat configuration.
type Config struct {
	// Gateway connection settings
	Gateway GatewayConfig `toml:"gateway"`

	// Reveal pacing settings
	Reveal RevealConfig `toml:"reveal"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// StateDir holds session snapshot and name cache state
	// Default: ~/.climchat
	StateDir string `toml:"state_dir"`
}

// GatewayConfig contains Gateway connection configuration.
type GatewayConfig struct {
	// URL is the Gateway base URL
	URL string `toml:"url"`
	// TimeoutSecs bounds list/history/rename requests
	TimeoutSecs int `toml:"timeout_secs"`
	// QueryTimeoutSecs bounds answer generation, which can be slow
	QueryTimeoutSecs int `toml:"query_timeout_secs"`
}

// RevealConfig controls the client-side answer pacing.
type RevealConfig struct {
	// ChunkSize is runes revealed per tick
	ChunkSize int `toml:"chunk_size"`
	// TickMs is the pause between chunks in milliseconds
	TickMs int `toml:"tick_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light"
	Theme string `toml:"theme"`
	// ShowSidebar shows the conversation sidebar on startup
	ShowSidebar bool `toml:"show_sidebar"`
	// MarkdownRendering enables glamour rendering of answers
	MarkdownRendering bool `toml:"markdown_rendering"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Gateway: GatewayConfig{
			URL:              "http://127.0.0.1:8000",
			TimeoutSecs:      15,
			QueryTimeoutSecs: 120,
		},
		Reveal: RevealConfig{
			ChunkSize: 6,
			TickMs:    50,
		},
		UI: UIConfig{
			Theme:             "dark",
			ShowSidebar:       true,
			MarkdownRendering: true,
		},
		StateDir: filepath.Join(homeDir, ".climchat"),
	}
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".climchat", "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, applies environment overrides, and
// validates the result. A missing config file is not an error; defaults
// are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, with env
// overrides and validation applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - CLIMCHAT_GATEWAY_URL: overrides gateway.url
//   - CLIMCHAT_THEME: overrides ui.theme
//   - CLIMCHAT_STATE_DIR: overrides state_dir
//   - CLIMCHAT_CHUNK_SIZE: overrides reveal.chunk_size
//   - CLIMCHAT_TICK_MS: overrides reveal.tick_ms
func (c *Config) ApplyEnvOverrides() {
	if gatewayURL := os.Getenv("CLIMCHAT_GATEWAY_URL"); gatewayURL != "" {
		c.Gateway.URL = gatewayURL
	}

	if theme := os.Getenv("CLIMCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if stateDir := os.Getenv("CLIMCHAT_STATE_DIR"); stateDir != "" {
		c.StateDir = stateDir
	}

	if chunkSize := os.Getenv("CLIMCHAT_CHUNK_SIZE"); chunkSize != "" {
		if n, err := strconv.Atoi(chunkSize); err == nil {
			c.Reveal.ChunkSize = n
		}
	}

	if tickMs := os.Getenv("CLIMCHAT_TICK_MS"); tickMs != "" {
		if n, err := strconv.Atoi(tickMs); err == nil {
			c.Reveal.TickMs = n
		}
	}
}

// SetDefaults fills zero values left by a partial config file.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Gateway.URL == "" {
		c.Gateway.URL = defaults.Gateway.URL
	}
	if c.Gateway.TimeoutSecs <= 0 {
		c.Gateway.TimeoutSecs = defaults.Gateway.TimeoutSecs
	}
	if c.Gateway.QueryTimeoutSecs <= 0 {
		c.Gateway.QueryTimeoutSecs = defaults.Gateway.QueryTimeoutSecs
	}
	if c.Reveal.ChunkSize <= 0 {
		c.Reveal.ChunkSize = defaults.Reveal.ChunkSize
	}
	if c.Reveal.TickMs <= 0 {
		c.Reveal.TickMs = defaults.Reveal.TickMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.StateDir == "" {
		c.StateDir = defaults.StateDir
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks configuration values.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Gateway.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("gateway.url %q is not a valid URL", c.Gateway.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("gateway.url scheme %q must be http or https", parsed.Scheme)
	}

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme %q must be 'dark' or 'light'", c.UI.Theme)
	}

	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the standard request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Gateway.TimeoutSecs) * time.Second
}

// QueryTimeout returns the query timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Gateway.QueryTimeoutSecs) * time.Second
}

// TickInterval returns the reveal tick interval as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Reveal.TickMs) * time.Millisecond
}

// SessionDir returns the directory for session snapshot state.
func (c *Config) SessionDir() string {
	return filepath.Join(c.StateDir, "session")
}

// NameCachePath returns the path of the chat name cache database.
func (c *Config) NameCachePath() string {
	return filepath.Join(c.StateDir, "names.db")
}
