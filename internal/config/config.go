// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings persistence and the shared runtime store
// for clipenhance.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.clipenhance/config.toml
//   - ~/.clipenhance/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/clipenhance/internal/util"
)

// =============================================================================
// SETTINGS STRUCTURES
// =============================================================================

// Settings represents the complete persisted clipenhance configuration.
type Settings struct {
	Version string `toml:"version" json:"version"`

	// Server configuration
	Server ServerSettings `toml:"server" json:"server"`

	// Enhancement configuration
	Enhance EnhanceSettings `toml:"enhance" json:"enhance"`

	// Hotkey configuration
	Hotkey HotkeySettings `toml:"hotkey" json:"hotkey"`

	// Notification configuration
	Notify NotifySettings `toml:"notify" json:"notify"`

	// Logging configuration
	Log LogSettings `toml:"log" json:"log"`
}

// ServerSettings contains the inference server endpoint.
type ServerSettings struct {
	// OllamaURL is the base URL of the local Ollama server.
	// Fixed for the lifetime of the process; changing it requires a restart.
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`
}

// EnhanceSettings contains the mutable enhancement configuration.
type EnhanceSettings struct {
	// Model is the active model name. Empty means no model configured;
	// enhancement fails with a notice until one is chosen.
	Model string `toml:"model" json:"model"`
	// Template is the custom instruction template. Empty means use the
	// built-in default.
	Template string `toml:"template" json:"template"`
	// AutoPaste synthesizes a paste keystroke after a successful
	// enhancement (Windows only).
	AutoPaste bool `toml:"auto_paste" json:"auto_paste"`
}

// HotkeySettings contains the global hotkey configuration.
type HotkeySettings struct {
	// Combo is the key combination, e.g. "ctrl+shift+e".
	Combo string `toml:"combo" json:"combo"`
}

// NotifySettings contains desktop notification configuration.
type NotifySettings struct {
	// Enabled controls whether desktop notices are shown.
	Enabled bool `toml:"enabled" json:"enabled"`
}

// LogSettings contains logging configuration.
type LogSettings struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level"`
	// Format is "text" or "json".
	Format string `toml:"format" json:"format"`
}

// Default returns the built-in default settings.
func Default() *Settings {
	return &Settings{
		Version: "1",
		Server: ServerSettings{
			OllamaURL: "http://127.0.0.1:11434",
		},
		Enhance: EnhanceSettings{
			Model:     "",
			Template:  "",
			AutoPaste: false,
		},
		Hotkey: HotkeySettings{
			Combo: "ctrl+shift+e",
		},
		Notify: NotifySettings{
			Enabled: true,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// ConfigDir returns the clipenhance configuration directory (~/.clipenhance).
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".clipenhance"), nil
}

// PathTOML returns the TOML configuration file path.
func PathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the JSON configuration file path.
func PathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// ensureSecurePermissions tightens config file permissions to owner-only.
// No-op on Windows where POSIX permission bits do not apply.
func ensureSecurePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o077 != 0 {
		return os.Chmod(path, 0o600)
	}
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the settings from disk.
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Settings, error) {
	s := Default()

	tomlPath, err := PathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(s, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(s)
		}
	}

	jsonPath, err := PathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(s, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(s)
		}
	}

	return finishLoad(s)
}

func finishLoad(s *Settings) (*Settings, error) {
	s.ApplyEnvOverrides()
	s.fillDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// LoadTOML loads settings from a TOML file.
func LoadTOML(s *Settings, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems; not fatal.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads settings from a JSON file.
func LoadJSON(s *Settings, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads settings from an explicit path, inferring the format
// from the file extension.
func LoadFromPath(path string) (*Settings, error) {
	s := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := LoadTOML(s, path); err != nil {
			return nil, err
		}
	case ".json":
		if err := LoadJSON(s, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return finishLoad(s)
}

// =============================================================================
// SAVING
// =============================================================================

// Save persists the settings to the TOML config file atomically.
func Save(s *Settings) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(s, path)
}

// SaveTOML writes settings to a TOML file with owner-only permissions.
func SaveTOML(s *Settings, path string) error {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0o600)
}

// =============================================================================
// DEFAULTS, OVERRIDES, VALIDATION
// =============================================================================

// fillDefaults replaces zero values that have a non-empty default.
// The model and template intentionally stay empty when unset.
func (s *Settings) fillDefaults() {
	d := Default()
	if s.Version == "" {
		s.Version = d.Version
	}
	if s.Server.OllamaURL == "" {
		s.Server.OllamaURL = d.Server.OllamaURL
	}
	if s.Hotkey.Combo == "" {
		s.Hotkey.Combo = d.Hotkey.Combo
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
	if s.Log.Format == "" {
		s.Log.Format = d.Log.Format
	}
}

// ApplyEnvOverrides applies CLIPENHANCE_* environment variables on top of
// file values. Environment wins over the file.
func (s *Settings) ApplyEnvOverrides() {
	if v := os.Getenv("CLIPENHANCE_OLLAMA_URL"); v != "" {
		s.Server.OllamaURL = v
	}
	if v := os.Getenv("CLIPENHANCE_MODEL"); v != "" {
		s.Enhance.Model = v
	}
	if v := os.Getenv("CLIPENHANCE_HOTKEY"); v != "" {
		s.Hotkey.Combo = v
	}
	if v := os.Getenv("CLIPENHANCE_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
}

// Validate checks settings for values that would break the daemon.
func (s *Settings) Validate() error {
	u, err := url.Parse(s.Server.OllamaURL)
	if err != nil {
		return fmt.Errorf("server.ollama_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.ollama_url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.ollama_url has no host: %q", s.Server.OllamaURL)
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug/info/warn/error, got %q", s.Log.Level)
	}

	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", s.Log.Format)
	}

	if strings.TrimSpace(s.Hotkey.Combo) == "" {
		return fmt.Errorf("hotkey.combo must not be empty")
	}

	return nil
}
