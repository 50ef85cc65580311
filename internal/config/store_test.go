// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"sync"
	"testing"

	"github.com/jeranaias/clipenhance/internal/prompt"
)

func newTestStore() *Store {
	return NewStore(Default())
}

func TestStore_ModelRoundTrip(t *testing.T) {
	st := newTestStore()

	if got := st.Model(); got != "" {
		t.Errorf("initial model = %q, want empty", got)
	}

	st.SetModel("mistral:7b")
	if got := st.Model(); got != "mistral:7b" {
		t.Errorf("Model() = %q, want mistral:7b", got)
	}
}

func TestStore_TemplateDefault(t *testing.T) {
	st := newTestStore()

	// Unset template returns the built-in default text.
	if got := st.Template(); got != prompt.DefaultTemplate {
		t.Error("Template() should return the built-in default when unset")
	}
	if st.HasCustomTemplate() {
		t.Error("HasCustomTemplate() = true for a fresh store")
	}

	st.SetTemplate("Rewrite tersely.")
	if got := st.Template(); got != "Rewrite tersely." {
		t.Errorf("Template() = %q after SetTemplate", got)
	}
	if !st.HasCustomTemplate() {
		t.Error("HasCustomTemplate() = false after SetTemplate")
	}

	st.ResetTemplate()
	if got := st.Template(); got != prompt.DefaultTemplate {
		t.Error("Template() should revert to the default after ResetTemplate")
	}
}

func TestStore_EndpointImmutable(t *testing.T) {
	s := Default()
	s.Server.OllamaURL = "http://127.0.0.1:9999"
	st := NewStore(s)

	if got := st.Endpoint(); got != "http://127.0.0.1:9999" {
		t.Errorf("Endpoint() = %q", got)
	}

	// Apply must not touch the endpoint.
	s2 := Default()
	s2.Server.OllamaURL = "http://other:1"
	s2.Enhance.Model = "llama3:8b"
	st.Apply(s2)

	if got := st.Endpoint(); got != "http://127.0.0.1:9999" {
		t.Errorf("Endpoint changed by Apply: %q", got)
	}
	if got := st.Model(); got != "llama3:8b" {
		t.Errorf("Model not applied: %q", got)
	}
}

// TestStore_ConcurrentAccess verifies readers and writers can run together.
// Run with: go test -race ./internal/config/
func TestStore_ConcurrentAccess(t *testing.T) {
	st := newTestStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			st.SetModel("mistral:7b")
			st.SetTemplate("custom")
			st.ResetTemplate()
		}()

		go func() {
			defer wg.Done()
			_ = st.Model()
			_ = st.Template()
			_ = st.Endpoint()
		}()
	}
	wg.Wait()

	// A read starting after all writes completed sees the final value.
	if got := st.Model(); got != "mistral:7b" {
		t.Errorf("Model() = %q after concurrent writes, want mistral:7b", got)
	}
}
