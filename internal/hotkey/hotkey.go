// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package hotkey provides global hotkey detection for the clipenhance daemon.
//
// A Combo is parsed once from its textual form ("ctrl+shift+e"), registered
// with the OS, and delivered as discrete pressed/released Events on a
// channel. The daemon registers exactly one combination; events for anything
// else never reach the channel.
package hotkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by Listen where no global hotkey backend
// exists for the platform.
var ErrUnsupported = errors.New("global hotkey not supported on this platform")

// =============================================================================
// EVENTS
// =============================================================================

// Event is one hotkey occurrence delivered by a Listener.
type Event struct {
	// Combo is the normalized textual form of the triggering combination.
	Combo string
	// Pressed is true for key-down; the pipeline ignores releases.
	Pressed bool
}

// Listener delivers hotkey events until closed.
type Listener interface {
	// Events returns the channel of hotkey events. The channel is closed
	// when the listener shuts down.
	Events() <-chan Event

	// Close unregisters the hotkey and stops delivery.
	Close() error
}

// =============================================================================
// COMBINATION PARSING
// =============================================================================

// Modifier bits, matching the Win32 MOD_* values. Parsing normalizes every
// platform's spelling onto this space; non-Windows listeners translate as
// needed.
const (
	ModAlt   uint32 = 0x0001
	ModCtrl  uint32 = 0x0002
	ModShift uint32 = 0x0004
	ModMeta  uint32 = 0x0008
)

// Combo is a parsed, platform-normalized key combination.
type Combo struct {
	Mods uint32
	Key  uint32 // virtual-key code
	Spec string // normalized textual form, e.g. "ctrl+shift+e"
}

// String returns the normalized textual form.
func (c Combo) String() string {
	return c.Spec
}

// ParseCombo accepts strings like "ctrl+shift+e", "alt+F2", or "esc" and
// returns the parsed combination. Modifier order and case are normalized.
func ParseCombo(s string) (Combo, error) {
	if strings.TrimSpace(s) == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}

	parts := strings.Split(s, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(strings.ToLower(parts[i]))
	}

	var mods uint32
	keyToken := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "alt", "menu":
			mods |= ModAlt
		case "ctrl", "control":
			mods |= ModCtrl
		case "shift":
			mods |= ModShift
		case "win", "meta", "super", "cmd":
			mods |= ModMeta
		default:
			return Combo{}, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}

	key, err := parseKeyToken(keyToken)
	if err != nil {
		return Combo{}, fmt.Errorf("invalid hotkey %q: %w", s, err)
	}

	return Combo{Mods: mods, Key: key, Spec: normalizedSpec(mods, keyToken)}, nil
}

func normalizedSpec(mods uint32, keyToken string) string {
	var b []string
	if mods&ModCtrl != 0 {
		b = append(b, "ctrl")
	}
	if mods&ModAlt != 0 {
		b = append(b, "alt")
	}
	if mods&ModShift != 0 {
		b = append(b, "shift")
	}
	if mods&ModMeta != 0 {
		b = append(b, "meta")
	}
	b = append(b, keyToken)
	return strings.Join(b, "+")
}

func parseKeyToken(token string) (uint32, error) {
	if len(token) == 1 {
		ch := token[0]
		if ch >= 'a' && ch <= 'z' {
			return uint32(ch - 'a' + 'A'), nil
		}
		if ch >= '0' && ch <= '9' {
			return uint32(ch), nil
		}
	}

	switch token {
	case "esc", "escape":
		return 0x1B, nil
	case "space":
		return 0x20, nil
	case "enter", "return":
		return 0x0D, nil
	case "tab":
		return 0x09, nil
	case "backspace":
		return 0x08, nil
	case "insert":
		return 0x2D, nil
	case "delete":
		return 0x2E, nil
	case "home":
		return 0x24, nil
	case "end":
		return 0x23, nil
	case "pageup":
		return 0x21, nil
	case "pagedown":
		return 0x22, nil
	}

	// Function keys F1..F24
	if strings.HasPrefix(token, "f") {
		if n, err := strconv.Atoi(strings.TrimPrefix(token, "f")); err == nil && n >= 1 && n <= 24 {
			return 0x70 + uint32(n-1), nil
		}
	}

	return 0, fmt.Errorf("unsupported key token %q", token)
}
