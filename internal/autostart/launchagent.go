// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package autostart

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jeranaias/clipenhance/internal/util"
)

// launchAgent registers a login item via a launchd LaunchAgent plist under
// ~/Library/LaunchAgents. Enable writes the plist and loads it; Disable
// unloads and removes it. The struct is portable so its rendering and
// file handling can be tested anywhere; only New selects it for darwin.
type launchAgent struct {
	homeDir  string
	execPath func() (string, error)
	runCmd   func(name string, args ...string) (stderr string, err error)
}

func newLaunchAgent() (*launchAgent, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, &Error{Type: ErrTypePathResolution, Message: "resolving home directory", Cause: err}
	}
	return &launchAgent{
		homeDir:  home,
		execPath: os.Executable,
		runCmd:   runCommand,
	}, nil
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

func (l *launchAgent) plistPath() string {
	return filepath.Join(l.homeDir, "Library", "LaunchAgents", Label+".plist")
}

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>run</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<false/>
</dict>
</plist>
`

func (l *launchAgent) Enable() error {
	bin, err := l.execPath()
	if err != nil {
		return &Error{Type: ErrTypePathResolution, Message: "resolving executable path", Cause: err}
	}

	path := l.plistPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Type: ErrTypePersistence, Message: "creating LaunchAgents directory", Cause: err}
	}

	content := fmt.Sprintf(plistTemplate, Label, bin)
	if err := util.AtomicWriteFile(path, []byte(content), 0o644); err != nil {
		return &Error{Type: ErrTypePersistence, Message: "writing LaunchAgent plist", Cause: err}
	}

	// Re-enabling an already loaded agent: unload first so launchctl does
	// not reject the duplicate label.
	l.runCmd("launchctl", "unload", path)

	if stderr, err := l.runCmd("launchctl", "load", path); err != nil {
		return &Error{Type: ErrTypePlatformCommand, Message: "launchctl load failed", Stderr: stderr, Cause: err}
	}
	return nil
}

func (l *launchAgent) Disable() error {
	path := l.plistPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if stderr, err := l.runCmd("launchctl", "unload", path); err != nil {
		return &Error{Type: ErrTypePlatformCommand, Message: "launchctl unload failed", Stderr: stderr, Cause: err}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &Error{Type: ErrTypePersistence, Message: "removing LaunchAgent plist", Cause: err}
	}
	return nil
}

func (l *launchAgent) IsEnabled() (bool, error) {
	_, err := os.Stat(l.plistPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &Error{Type: ErrTypePersistence, Message: "checking LaunchAgent plist", Cause: err}
}
