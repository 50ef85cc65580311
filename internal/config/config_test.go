// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "http://127.0.0.1:11434", s.Server.OllamaURL)
	assert.Empty(t, s.Enhance.Model, "no model is configured out of the box")
	assert.Empty(t, s.Enhance.Template, "empty template means built-in default")
	assert.Equal(t, "ctrl+shift+e", s.Hotkey.Combo)
	assert.True(t, s.Notify.Enabled)
	require.NoError(t, s.Validate())
}

func TestSaveAndLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	s := Default()
	s.Enhance.Model = "mistral:7b"
	s.Enhance.Template = "Rewrite tersely."
	require.NoError(t, SaveTOML(s, path))

	loaded := Default()
	require.NoError(t, LoadTOML(loaded, path))

	assert.Equal(t, "mistral:7b", loaded.Enhance.Model)
	assert.Equal(t, "Rewrite tersely.", loaded.Enhance.Template)
	assert.Equal(t, s.Server.OllamaURL, loaded.Server.OllamaURL)

	// Config may hold a custom template; keep it owner-readable only.
	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0o077 != 0 {
		t.Errorf("config file permissions too open: %v", info.Mode().Perm())
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"ollama_url": "http://127.0.0.1:11500"},
		"enhance": {"model": "qwen2.5:3b"}
	}`), 0o600))

	s, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:11500", s.Server.OllamaURL)
	assert.Equal(t, "qwen2.5:3b", s.Enhance.Model)
	// Untouched sections fall back to defaults.
	assert.Equal(t, "ctrl+shift+e", s.Hotkey.Combo)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"bad url scheme", func(s *Settings) { s.Server.OllamaURL = "ftp://x" }, true},
		{"empty url host", func(s *Settings) { s.Server.OllamaURL = "http://" }, true},
		{"bad log level", func(s *Settings) { s.Log.Level = "loud" }, true},
		{"bad log format", func(s *Settings) { s.Log.Format = "xml" }, true},
		{"empty hotkey", func(s *Settings) { s.Hotkey.Combo = "  " }, true},
		{"https endpoint", func(s *Settings) { s.Server.OllamaURL = "https://127.0.0.1:11434" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CLIPENHANCE_OLLAMA_URL", "http://127.0.0.1:12000")
	t.Setenv("CLIPENHANCE_MODEL", "llama3:8b")

	s := Default()
	s.ApplyEnvOverrides()

	assert.Equal(t, "http://127.0.0.1:12000", s.Server.OllamaURL)
	assert.Equal(t, "llama3:8b", s.Enhance.Model)
}
