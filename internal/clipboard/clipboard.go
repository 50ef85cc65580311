// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clipboard wraps the system clipboard behind a small capability
// interface so the pipeline can be tested without a display server.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard is the text clipboard capability consumed by the pipeline.
type Clipboard interface {
	// ReadText returns the current clipboard text. It fails when the
	// clipboard holds no readable text (for example an image) or the
	// platform clipboard is unavailable.
	ReadText() (string, error)

	// WriteText replaces the clipboard content with text.
	WriteText(text string) error
}

// ErrUnavailable indicates the platform clipboard could not be accessed at
// all (headless session, missing xclip/xsel on X11, ...).
var ErrUnavailable = errors.New("system clipboard unavailable")

// System is the real clipboard backed by the OS.
type System struct{}

// NewSystem returns the system clipboard capability.
func NewSystem() *System {
	return &System{}
}

func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
