// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// ENHANCE TESTS
// =============================================================================

func TestEnhance_ReturnsResponseVerbatim(t *testing.T) {
	// The response field must come back exactly as produced, including
	// leading/trailing whitespace.
	const answer = "  Refactor the following code to improve readability...  \n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("request body did not decode: %v", err)
		}
		if req.Stream {
			t.Error("stream = true, want false")
		}
		if req.Model != "mistral:7b" {
			t.Errorf("model = %q, want mistral:7b", req.Model)
		}
		if !strings.Contains(req.Prompt, "User input: fix this code") {
			t.Errorf("prompt missing raw text: %q", req.Prompt)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GenerateResponse{
			Model:     "mistral:7b",
			CreatedAt: time.Now(),
			Response:  answer,
			Done:      true,
		})
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})

	got, err := client.Enhance(context.Background(), "fix this code", "mistral:7b", "Rewrite the text.")
	if err != nil {
		t.Fatalf("Enhance returned error: %v", err)
	}
	if got != answer {
		t.Errorf("Enhance = %q, want %q (verbatim)", got, answer)
	}
}

func TestEnhance_ConnectionRefused(t *testing.T) {
	// Point at a closed port; the error must carry the transport kind.
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 2 * time.Second,
	})

	_, err := client.Enhance(context.Background(), "text", "mistral:7b", "tmpl")
	if err == nil {
		t.Fatal("Enhance succeeded against a closed port")
	}
	if !IsTransport(err) {
		t.Errorf("error kind = %T %v, want transport", err, err)
	}
}

func TestEnhance_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model 'nope' not found"}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})

	_, err := client.Enhance(context.Background(), "text", "nope", "tmpl")
	if !IsHTTPStatus(err) {
		t.Fatalf("error kind = %v, want HTTP status", err)
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatal("error is not a *ClientError")
	}
	if clientErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", clientErr.StatusCode)
	}
	if !strings.Contains(clientErr.Message, "not found") {
		t.Errorf("Message = %q, want server-provided error text", clientErr.Message)
	}
}

func TestEnhance_DecodeErrorKeepsRawBody(t *testing.T) {
	const garbage = "<html>this is not json</html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(garbage))
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})

	_, err := client.Enhance(context.Background(), "text", "mistral:7b", "tmpl")
	if !IsDecode(err) {
		t.Fatalf("error kind = %v, want decode", err)
	}

	var clientErr *ClientError
	errors.As(err, &clientErr)
	if clientErr.RawBody != garbage {
		t.Errorf("RawBody = %q, want the undecodable payload", clientErr.RawBody)
	}
	if clientErr.Cause == nil {
		t.Error("decode error should carry the json cause")
	}
}

// =============================================================================
// MODEL LISTING TESTS
// =============================================================================

func TestListModels_ServerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"mistral:7b"},{"name":"llama3:8b"},{"name":"qwen2.5:3b"}]}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})

	names, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels returned error: %v", err)
	}

	want := []string{"mistral:7b", "llama3:8b", "qwen2.5:3b"}
	if len(names) != len(want) {
		t.Fatalf("got %d models, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q (server order is significant)", i, names[i], want[i])
		}
	}
}

func TestListModels_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})

	names, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels returned error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("got %d models, want 0", len(names))
	}
}

// =============================================================================
// LIVENESS PROBE TESTS
// =============================================================================

func TestCheckReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	if err := client.CheckReachable(context.Background()); err != nil {
		t.Errorf("CheckReachable returned error: %v", err)
	}
}

func TestCheckReachable_Down(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 2 * time.Second,
	})

	err := client.CheckReachable(context.Background())
	if !IsTransport(err) {
		t.Errorf("error kind = %v, want transport", err)
	}
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})

	if client.config.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q, want default", client.config.BaseURL)
	}
	if client.config.Timeout == 0 {
		t.Error("Timeout default not applied")
	}
}

func TestNewClientWithConfig_Nil(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client.config == nil {
		t.Fatal("nil config was not replaced with defaults")
	}
}
