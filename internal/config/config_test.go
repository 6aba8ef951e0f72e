// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gateway.URL != "http://127.0.0.1:8000" {
		t.Errorf("Gateway.URL = %q", cfg.Gateway.URL)
	}
	if cfg.Reveal.ChunkSize != 6 {
		t.Errorf("ChunkSize = %d, want 6", cfg.Reveal.ChunkSize)
	}
	if cfg.Reveal.TickMs != 50 {
		t.Errorf("TickMs = %d, want 50", cfg.Reveal.TickMs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want 'dark'", cfg.UI.Theme)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
state_dir = "` + dir + `"

[gateway]
url = "http://gateway.internal:9000"
timeout_secs = 30

[reveal]
chunk_size = 3

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Gateway.URL != "http://gateway.internal:9000" {
		t.Errorf("Gateway.URL = %q", cfg.Gateway.URL)
	}
	if cfg.Gateway.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.Gateway.TimeoutSecs)
	}
	if cfg.Reveal.ChunkSize != 3 {
		t.Errorf("ChunkSize = %d, want 3", cfg.Reveal.ChunkSize)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want 'light'", cfg.UI.Theme)
	}

	// Unset fields fall back to defaults
	if cfg.Gateway.QueryTimeoutSecs != 120 {
		t.Errorf("QueryTimeoutSecs = %d, want default 120", cfg.Gateway.QueryTimeoutSecs)
	}
	if cfg.Reveal.TickMs != 50 {
		t.Errorf("TickMs = %d, want default 50", cfg.Reveal.TickMs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLIMCHAT_GATEWAY_URL", "http://10.0.0.5:8000")
	t.Setenv("CLIMCHAT_THEME", "light")
	t.Setenv("CLIMCHAT_CHUNK_SIZE", "12")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Gateway.URL != "http://10.0.0.5:8000" {
		t.Errorf("Gateway.URL = %q", cfg.Gateway.URL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.Reveal.ChunkSize != 12 {
		t.Errorf("ChunkSize = %d", cfg.Reveal.ChunkSize)
	}
}

func TestEnvOverrideBadInt(t *testing.T) {
	t.Setenv("CLIMCHAT_CHUNK_SIZE", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Reveal.ChunkSize != 6 {
		t.Errorf("ChunkSize = %d, bad env value should be ignored", cfg.Reveal.ChunkSize)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.Gateway.URL = "not a url"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid URL")
	}

	cfg.Gateway.URL = "ftp://host"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestValidateRejectsBadTheme(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "solarized"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestDerivedDurations(t *testing.T) {
	cfg := Default()

	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if cfg.QueryTimeout() != 120*time.Second {
		t.Errorf("QueryTimeout = %v", cfg.QueryTimeout())
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Gateway.URL == "" {
		t.Error("Gateway.URL not filled")
	}
	if cfg.Reveal.ChunkSize <= 0 {
		t.Error("ChunkSize not filled")
	}
	if cfg.StateDir == "" {
		t.Error("StateDir not filled")
	}
}
