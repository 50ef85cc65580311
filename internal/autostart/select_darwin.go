// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build darwin

package autostart

// New returns the autostart Manager for macOS.
func New() (Manager, error) {
	return newLaunchAgent()
}
