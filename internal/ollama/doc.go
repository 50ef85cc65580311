// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
//
// This package implements a minimal client for the Ollama local LLM server:
// non-streaming text generation against /api/generate, model listing against
// /api/tags, and a liveness probe that reuses the listing endpoint.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - ClientError: tagged error with Type, HTTP status, and raw body
//   - GenerateResponse: response envelope with usage and timing fields
//
// # Usage
//
// Create a client and enhance a piece of text:
//
//	client := ollama.NewClient()
//	text, err := client.Enhance(ctx, "fix this code", "mistral:7b", prompt.DefaultTemplate)
//
// Errors carry a machine-checkable kind:
//
//	if ollama.IsTransport(err) {
//	    // server not running, DNS failure, timeout
//	}
//
// # Error Handling
//
// The client never retries. Transport failures, non-2xx statuses, and decode
// failures are distinguished by ClientError.Type so callers can branch on
// kind instead of parsing messages. Decode failures keep the raw response
// body in ClientError.RawBody for diagnosis.
package ollama
