// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/jeranaias/clipenhance/internal/hotkey"
)

// A platform without a hotkey backend must not kill the daemon: autostart
// registers `clipenhance run` as a login item on darwin and linux, and that
// process has to stay up for the config watcher and one-shot CLI use.
func TestHotkeyEventSource_DegradesWithoutBackend(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows has a hotkey backend")
	}

	combo, err := hotkey.ParseCombo("ctrl+shift+e")
	if err != nil {
		t.Fatalf("ParseCombo: %v", err)
	}

	events, closeListener, err := hotkeyEventSource(combo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("hotkeyEventSource = %v, want degraded mode instead of an error", err)
	}
	if events != nil {
		t.Error("events channel is non-nil, want nil (never-ready) channel in degraded mode")
	}
	// The cleanup func must be callable even with no listener.
	closeListener()
}
