// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/clipenhance/internal/prompt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status, set for ErrTypeHTTPStatus
	RawBody    string // undecodable payload, set for ErrTypeDecode
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeTransport covers connection refused, DNS failure, and timeout.
	// Never retried here; the caller decides what to do.
	ErrTypeTransport

	// ErrTypeHTTPStatus is a non-2xx reply. StatusCode carries the status.
	ErrTypeHTTPStatus

	// ErrTypeDecode is malformed JSON or a schema mismatch. RawBody carries
	// the payload that failed to decode, for diagnosis.
	ErrTypeDecode
)

// IsTransport checks if an error is a transport-level failure.
func IsTransport(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeTransport
}

// IsHTTPStatus checks if an error is a non-2xx server reply.
func IsHTTPStatus(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTPStatus
}

// IsDecode checks if an error is a response decode failure.
func IsDecode(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeDecode
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for requests (default: 120s; generation on CPU can be slow)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:11434",
		Timeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
// It is stateless apart from its configuration and is safe for concurrent use.
//
// Example:
//
//	client := ollama.NewClient()
//	text, err := client.Enhance(ctx, "fix this code", "mistral:7b", prompt.DefaultTemplate)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ENHANCE
// =============================================================================

// Enhance renders the full prompt from the instruction template and the raw
// text, sends it to /api/generate, and returns the model's response field
// verbatim. No trimming or post-processing is applied.
func (c *Client) Enhance(ctx context.Context, raw, model, template string) (string, error) {
	resp, err := c.Generate(ctx, raw, model, template)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Generate is Enhance with the full response envelope, for callers that also
// want the token counts and timing fields.
//
// The whole response body is read before decoding so that a decode failure
// can still report the raw payload.
func (c *Client) Generate(ctx context.Context, raw, model, template string) (*GenerateResponse, error) {
	reqBody := GenerateRequest{
		Model:  model,
		Prompt: prompt.Render(template, raw),
		Stream: false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to reach Ollama", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpStatusError(resp.StatusCode, payload)
	}

	var result GenerateResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ClientError{
			Type:    ErrTypeDecode,
			Message: "failed to decode generate response",
			RawBody: string(payload),
			Cause:   err,
		}
	}

	return &result, nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves the names of all models available on the server,
// in server-provided order. Callers treat index 0 as the default choice.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to reach Ollama", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpStatusError(resp.StatusCode, payload)
	}

	var result ListModelsResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ClientError{
			Type:    ErrTypeDecode,
			Message: "failed to decode model list",
			RawBody: string(payload),
			Cause:   err,
		}
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// CheckReachable verifies that the Ollama server answers on the model-listing
// endpoint. The body is discarded; this is a liveness probe only.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to reach Ollama", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:       ErrTypeHTTPStatus,
			Message:    "unexpected status from Ollama: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func httpStatusError(status int, payload []byte) *ClientError {
	// The server reports errors as {"error": "..."}; prefer that message
	// when it decodes, but the error stays an HTTP-status error either way.
	var apiErr APIError
	msg := http.StatusText(status)
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	return &ClientError{
		Type:       ErrTypeHTTPStatus,
		Message:    msg,
		StatusCode: status,
	}
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
