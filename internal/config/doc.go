// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings persistence and the shared runtime store
// for clipenhance.
//
// Two layers live here:
//
//   - Settings: the persisted configuration (~/.clipenhance/config.toml, JSON
//     fallback) with defaults, CLIPENHANCE_* environment overrides, and
//     validation.
//   - Store: the lock-guarded runtime state (active model, instruction
//     template) shared between the hotkey pipeline and the control surface.
//     The inference endpoint is fixed at construction.
//
// The control surface runs as a separate process invocation, so mutation
// flows through the config file: the CLI saves Settings, and the daemon's
// Watcher (fsnotify, debounced) applies the mutable fields to its Store.
//
// Concurrency: every Store accessor holds a sync.RWMutex, so a reader never
// observes a half-written value, and a read started after a completed write
// sees the written value. Go locks do not poison after a panic the way some
// runtimes' do, so there is no poisoned-state error path here.
package config
