// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger configures structured logging for the clipenhance daemon.
//
// Logs go to stderr so they never interleave with CLI output on stdout. The
// text format uses tint for readable local output; the json format is for
// anyone shipping daemon logs elsewhere. User-facing feedback never goes
// through here - that is the notify package's job.
package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds the configuration of the logger.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
}

// FromSettings maps the persisted log settings onto a logger Config.
func FromSettings(level, format string) Config {
	c := Config{Level: slog.LevelInfo, Format: "text"}

	switch level {
	case "debug":
		c.Level = slog.LevelDebug
	case "info":
		c.Level = slog.LevelInfo
	case "warn":
		c.Level = slog.LevelWarn
	case "error":
		c.Level = slog.LevelError
	}

	if format != "" {
		c.Format = format
	}
	return c
}

// New creates a logger with the given config.
func New(config Config) *slog.Logger {
	if config.Format == "json" {
		opts := &slog.HandlerOptions{
			Level: config.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{
						Key:   a.Key,
						Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
					}
				}
				return a
			},
		}
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      config.Level,
		TimeFormat: time.Kitchen,
	}))
}

// WithComponent returns a logger tagged with a component name, so pipeline,
// hotkey, and autostart lines are distinguishable in one stream.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With(slog.String("component", component))
}
