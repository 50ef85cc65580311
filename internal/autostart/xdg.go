// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/clipenhance/internal/util"
)

// xdgAutostart registers a login item by writing a .desktop entry into
// ~/.config/autostart, per the XDG autostart specification. No external
// commands are involved; the desktop environment picks the entry up at
// the next login.
type xdgAutostart struct {
	configHome string
	execPath   func() (string, error)
}

func newXDGAutostart() (*xdgAutostart, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &Error{Type: ErrTypePathResolution, Message: "resolving home directory", Cause: err}
		}
		configHome = filepath.Join(home, ".config")
	}
	return &xdgAutostart{
		configHome: configHome,
		execPath:   os.Executable,
	}, nil
}

func (x *xdgAutostart) desktopPath() string {
	return filepath.Join(x.configHome, "autostart", "clipenhance.desktop")
}

const desktopTemplate = `[Desktop Entry]
Type=Application
Name=%s
Comment=Clipboard text enhancement daemon
Exec=%s run
Terminal=false
X-GNOME-Autostart-enabled=true
`

func (x *xdgAutostart) Enable() error {
	bin, err := x.execPath()
	if err != nil {
		return &Error{Type: ErrTypePathResolution, Message: "resolving executable path", Cause: err}
	}

	path := x.desktopPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Type: ErrTypePersistence, Message: "creating autostart directory", Cause: err}
	}

	content := fmt.Sprintf(desktopTemplate, DisplayName, bin)
	if err := util.AtomicWriteFile(path, []byte(content), 0o644); err != nil {
		return &Error{Type: ErrTypePersistence, Message: "writing autostart entry", Cause: err}
	}
	return nil
}

func (x *xdgAutostart) Disable() error {
	if err := os.Remove(x.desktopPath()); err != nil && !os.IsNotExist(err) {
		return &Error{Type: ErrTypePersistence, Message: "removing autostart entry", Cause: err}
	}
	return nil
}

func (x *xdgAutostart) IsEnabled() (bool, error) {
	_, err := os.Stat(x.desktopPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &Error{Type: ErrTypePersistence, Message: "checking autostart entry", Cause: err}
}
