// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux

package autostart

// New returns the autostart Manager for Linux.
func New() (Manager, error) {
	return newXDGAutostart()
}
