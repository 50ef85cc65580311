// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package autostart

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKey registers a login item as a value under the per-user Run key.
// Windows launches the value's command line at logon; deleting the value
// removes the registration.
type runKey struct {
	execPath func() (string, error)
}

func newRunKey() (*runKey, error) {
	return &runKey{execPath: os.Executable}, nil
}

func (r *runKey) Enable() error {
	bin, err := r.execPath()
	if err != nil {
		return &Error{Type: ErrTypePathResolution, Message: "resolving executable path", Cause: err}
	}

	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return &Error{Type: ErrTypePersistence, Message: "opening Run registry key", Cause: err}
	}
	defer key.Close()

	cmd := fmt.Sprintf(`"%s" run`, bin)
	if err := key.SetStringValue(DisplayName, cmd); err != nil {
		return &Error{Type: ErrTypePersistence, Message: "writing Run registry value", Cause: err}
	}
	return nil
}

func (r *runKey) Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return &Error{Type: ErrTypePersistence, Message: "opening Run registry key", Cause: err}
	}
	defer key.Close()

	if err := key.DeleteValue(DisplayName); err != nil && err != registry.ErrNotExist {
		return &Error{Type: ErrTypePersistence, Message: "deleting Run registry value", Cause: err}
	}
	return nil
}

func (r *runKey) IsEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return false, nil
		}
		return false, &Error{Type: ErrTypePersistence, Message: "opening Run registry key", Cause: err}
	}
	defer key.Close()

	if _, _, err := key.GetStringValue(DisplayName); err != nil {
		if err == registry.ErrNotExist {
			return false, nil
		}
		return false, &Error{Type: ErrTypePersistence, Message: "reading Run registry value", Cause: err}
	}
	return true, nil
}

// New returns the autostart Manager for Windows.
func New() (Manager, error) {
	return newRunKey()
}
