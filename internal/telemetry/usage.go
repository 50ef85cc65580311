// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry records per-enhancement usage numbers in a local
// SQLite database.
//
// Only numeric usage is stored: token counts, durations, and the model
// name. Clipboard contents and enhanced text never touch the database.
package telemetry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("usage store closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// RECORDS
// =============================================================================

// Record is one completed enhancement's usage numbers.
type Record struct {
	// TriggerID correlates the record with the trigger's log lines.
	TriggerID string

	// Model is the model that served the request.
	Model string

	// PromptTokens is the server-reported prompt token count.
	PromptTokens int

	// CompletionTokens is the server-reported generated token count.
	CompletionTokens int

	// TotalDuration is the server-side wall time for the request.
	TotalDuration time.Duration

	// EvalDuration is the server-side generation time.
	EvalDuration time.Duration

	// Succeeded marks whether the enhancement completed.
	Succeeded bool

	// Timestamp is when the trigger fired.
	Timestamp time.Time
}

// Summary aggregates usage over a time window.
type Summary struct {
	Triggers         int
	Succeeded        int
	PromptTokens     int64
	CompletionTokens int64
	TotalDuration    time.Duration
}

// =============================================================================
// USAGE STORE
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS usage (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trigger_id TEXT NOT NULL,
	model TEXT NOT NULL,
	prompt_tokens INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	total_duration_ns INTEGER NOT NULL DEFAULT 0,
	eval_duration_ns INTEGER NOT NULL DEFAULT 0,
	succeeded INTEGER NOT NULL DEFAULT 0,
	timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_usage_timestamp ON usage(timestamp);
CREATE INDEX IF NOT EXISTS idx_usage_model ON usage(model);
`

// Store persists usage records. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// Open opens (creating if necessary) the usage database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one usage record.
func (s *Store) Record(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO usage (trigger_id, model, prompt_tokens, completion_tokens,
			total_duration_ns, eval_duration_ns, succeeded, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TriggerID, r.Model, r.PromptTokens, r.CompletionTokens,
		r.TotalDuration.Nanoseconds(), r.EvalDuration.Nanoseconds(),
		boolToInt(r.Succeeded), ts.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Summarize aggregates all records at or after since. A zero since
// aggregates everything.
func (s *Store) Summarize(since time.Time) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	row := s.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(succeeded), 0),
			COALESCE(SUM(prompt_tokens), 0),
			COALESCE(SUM(completion_tokens), 0),
			COALESCE(SUM(total_duration_ns), 0)
		 FROM usage WHERE timestamp >= ?`,
		since.Unix(),
	)

	var sum Summary
	var totalNS int64
	if err := row.Scan(&sum.Triggers, &sum.Succeeded, &sum.PromptTokens,
		&sum.CompletionTokens, &totalNS); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	sum.TotalDuration = time.Duration(totalNS)
	return &sum, nil
}

// Close closes the database. Record and Summarize fail afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
