// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the clipenhance command-line surface.
//
// The daemon itself is the default command; everything else is a
// short-lived control command that reads or edits the shared config
// file and exits. A running daemon notices edits through its config
// watcher, so the control commands never talk to the daemon directly.
//
// Output styling is centralized in styles.go and degrades to plain
// text for pipes and NO_COLOR terminals.
package cli
