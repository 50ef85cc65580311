// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !darwin && !linux && !windows

package autostart

// New returns an unsupported Manager on platforms without an
// implementation; every operation reports ErrTypeUnsupported.
func New() (Manager, error) {
	return unsupported{}, nil
}
