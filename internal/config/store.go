// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"sync"

	"github.com/jeranaias/clipenhance/internal/prompt"
)

// =============================================================================
// RUNTIME STORE
// =============================================================================

// Store is the shared mutable runtime configuration: the active model and the
// instruction template. It is the only state shared between the hotkey
// pipeline, the config watcher, and any in-process control surface.
//
// All access goes through the accessors below; every read and write holds the
// lock so a reader never observes a partially written value. The endpoint is
// fixed at construction and readable without synchronization.
//
// The Store is deliberately not a package-level global: it is constructed
// once in main and passed to whoever needs it.
type Store struct {
	endpoint string // immutable after New

	mu       sync.RWMutex
	model    string
	template string
}

// NewStore creates a runtime store hydrated from persisted settings.
func NewStore(s *Settings) *Store {
	return &Store{
		endpoint: s.Server.OllamaURL,
		model:    s.Enhance.Model,
		template: s.Enhance.Template,
	}
}

// Endpoint returns the inference server base URL. Immutable for the process
// lifetime.
func (st *Store) Endpoint() string {
	return st.endpoint
}

// Model returns the active model name. Empty means no model is configured.
func (st *Store) Model() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.model
}

// SetModel sets the active model name.
func (st *Store) SetModel(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.model = name
}

// Template returns the instruction template to use for enhancement. When no
// custom template is set it returns the built-in default text.
func (st *Store) Template() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.template == "" {
		return prompt.DefaultTemplate
	}
	return st.template
}

// HasCustomTemplate reports whether a custom template override is set.
func (st *Store) HasCustomTemplate() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.template != ""
}

// SetTemplate sets a custom instruction template, replacing the built-in
// default for subsequent enhancements.
func (st *Store) SetTemplate(text string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.template = text
}

// ResetTemplate clears the custom template, reverting to the built-in default.
func (st *Store) ResetTemplate() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.template = ""
}

// Apply replaces the mutable fields from freshly loaded settings. Used by the
// config file watcher so a foreground edit reaches the running daemon.
func (st *Store) Apply(s *Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.model = s.Enhance.Model
	st.template = s.Enhance.Template
}
