// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package hotkey

// Listen is not supported on non-Windows builds. The daemon treats
// ErrUnsupported as a degraded mode rather than a fatal error: it keeps
// running with the config watcher active so one-shot CLI enhancement and
// autostart-registered instances still work.
func Listen(combo Combo) (Listener, error) {
	return nil, ErrUnsupported
}
