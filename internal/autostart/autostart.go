// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package autostart registers the clipenhance daemon to launch at login.
//
// Each supported platform has its own persistence mechanism: a launchd
// LaunchAgent plist on macOS, a Run registry value on Windows, and an XDG
// autostart .desktop entry on Linux. All three present the same Manager
// surface and share the same idempotence contract: Enable and Disable may
// be called any number of times in any order, and IsEnabled reports only
// whether the registration artifact currently exists.
package autostart

import (
	"fmt"
	"runtime"
)

// Label identifies the login item across all platforms.
const Label = "com.morganforge.clipenhance"

// DisplayName is the human-facing name used where the platform wants one.
const DisplayName = "ClipEnhance"

// =============================================================================
// ERRORS
// =============================================================================

// ErrorType categorizes autostart failures.
type ErrorType int

const (
	// ErrTypePathResolution means the running executable's path could not
	// be determined, so there is nothing to register.
	ErrTypePathResolution ErrorType = iota

	// ErrTypePersistence means the registration artifact (plist, registry
	// value, .desktop file) could not be written or removed.
	ErrTypePersistence

	// ErrTypePlatformCommand means an OS helper (launchctl) was invoked
	// and reported failure.
	ErrTypePlatformCommand

	// ErrTypeUnsupported means the current platform has no autostart
	// implementation.
	ErrTypeUnsupported
)

// Error is a categorized autostart failure.
type Error struct {
	Type    ErrorType
	Message string
	Stderr  string // captured output of a failed platform command, if any
	Cause   error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Stderr)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUnsupported reports whether err is an autostart error for a platform
// without an implementation.
func IsUnsupported(err error) bool {
	ae, ok := err.(*Error)
	return ok && ae.Type == ErrTypeUnsupported
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager persists and removes a login-time registration for one program.
type Manager interface {
	// Enable registers the program to start at login. Calling Enable when
	// already enabled rewrites the registration and succeeds.
	Enable() error

	// Disable removes the registration. Disabling when never enabled is
	// not an error.
	Disable() error

	// IsEnabled reports whether the registration artifact exists. It does
	// not verify that the artifact still points at a valid executable.
	IsEnabled() (bool, error)
}

// unsupported is the Manager for platforms without an implementation.
type unsupported struct{}

func (unsupported) Enable() error {
	return &Error{Type: ErrTypeUnsupported, Message: fmt.Sprintf("autostart is not supported on %s", runtime.GOOS)}
}

func (unsupported) Disable() error {
	return &Error{Type: ErrTypeUnsupported, Message: fmt.Sprintf("autostart is not supported on %s", runtime.GOOS)}
}

func (unsupported) IsEnabled() (bool, error) {
	return false, &Error{Type: ErrTypeUnsupported, Message: fmt.Sprintf("autostart is not supported on %s", runtime.GOOS)}
}
