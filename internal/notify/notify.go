// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify delivers desktop notifications to the user.
//
// Notifications are fire-and-forget: the pipeline reports its outcome through
// Show and moves on; a failed notification is never an error the caller sees.
package notify

import "github.com/gen2brain/beeep"

// Notifier is the notification capability consumed by the pipeline.
type Notifier interface {
	// Show displays a short notice. Failures are ignored.
	Show(title, body string)
}

// Desktop shows native desktop notifications via beeep.
type Desktop struct{}

// NewDesktop returns the desktop notification capability.
func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Show(title, body string) {
	_ = beeep.Notify(title, body, "")
}

// Silent drops all notifications. Used when the user disables notices and in
// one-shot CLI mode where the outcome is printed instead.
type Silent struct{}

func (Silent) Show(title, body string) {}
