// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLaunchAgent(t *testing.T) (*launchAgent, *[]string) {
	t.Helper()
	var calls []string
	la := &launchAgent{
		homeDir:  t.TempDir(),
		execPath: func() (string, error) { return "/opt/clipenhance/clipenhance", nil },
		runCmd: func(name string, args ...string) (string, error) {
			calls = append(calls, name+" "+strings.Join(args, " "))
			return "", nil
		},
	}
	return la, &calls
}

func TestLaunchAgent_EnableWritesPlistAndLoads(t *testing.T) {
	la, calls := testLaunchAgent(t)

	if err := la.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}

	data, err := os.ReadFile(la.plistPath())
	if err != nil {
		t.Fatalf("reading plist: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "<string>"+Label+"</string>") {
		t.Error("plist missing label")
	}
	if !strings.Contains(content, "<string>/opt/clipenhance/clipenhance</string>") {
		t.Error("plist missing executable path")
	}
	if !strings.Contains(content, "<key>RunAtLoad</key>") {
		t.Error("plist missing RunAtLoad")
	}

	loaded := false
	for _, c := range *calls {
		if strings.HasPrefix(c, "launchctl load ") {
			loaded = true
		}
	}
	if !loaded {
		t.Errorf("launchctl load not invoked; calls: %v", *calls)
	}
}

func TestLaunchAgent_Idempotence(t *testing.T) {
	la, _ := testLaunchAgent(t)

	enabled, err := la.IsEnabled()
	if err != nil || enabled {
		t.Fatalf("IsEnabled before Enable = %v, %v; want false, nil", enabled, err)
	}

	if err := la.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if enabled, _ = la.IsEnabled(); !enabled {
		t.Error("IsEnabled after Enable = false, want true")
	}

	// Enable twice succeeds and stays enabled.
	if err := la.Enable(); err != nil {
		t.Fatalf("second Enable: %v", err)
	}
	if enabled, _ = la.IsEnabled(); !enabled {
		t.Error("IsEnabled after second Enable = false, want true")
	}

	if err := la.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if enabled, _ = la.IsEnabled(); enabled {
		t.Error("IsEnabled after Disable = true, want false")
	}

	// Disable when never enabled succeeds.
	if err := la.Disable(); err != nil {
		t.Fatalf("Disable on disabled: %v", err)
	}
}

func TestLaunchAgent_LoadFailureReportsStderr(t *testing.T) {
	la, _ := testLaunchAgent(t)
	la.runCmd = func(name string, args ...string) (string, error) {
		if len(args) > 0 && args[0] == "load" {
			return "Load failed: 5: Input/output error", os.ErrPermission
		}
		return "", nil
	}

	err := la.Enable()
	if err == nil {
		t.Fatal("Enable succeeded, want error")
	}
	ae, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T, want *Error", err)
	}
	if ae.Type != ErrTypePlatformCommand {
		t.Errorf("Type = %d, want ErrTypePlatformCommand", ae.Type)
	}
	if !strings.Contains(ae.Error(), "Load failed") {
		t.Errorf("Error() = %q, want captured stderr", ae.Error())
	}
}

func TestXDG_EnableWritesDesktopEntry(t *testing.T) {
	x := &xdgAutostart{
		configHome: t.TempDir(),
		execPath:   func() (string, error) { return "/usr/local/bin/clipenhance", nil },
	}

	if err := x.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(x.configHome, "autostart", "clipenhance.desktop"))
	if err != nil {
		t.Fatalf("reading desktop entry: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Exec=/usr/local/bin/clipenhance run") {
		t.Error("desktop entry missing Exec line")
	}
	if !strings.Contains(content, "Name="+DisplayName) {
		t.Error("desktop entry missing Name line")
	}
}

func TestXDG_Idempotence(t *testing.T) {
	x := &xdgAutostart{
		configHome: t.TempDir(),
		execPath:   func() (string, error) { return "/usr/local/bin/clipenhance", nil },
	}

	// Disable when never enabled succeeds.
	if err := x.Disable(); err != nil {
		t.Fatalf("Disable on clean state: %v", err)
	}

	if err := x.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if enabled, _ := x.IsEnabled(); !enabled {
		t.Error("IsEnabled after Enable = false, want true")
	}

	if err := x.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if enabled, _ := x.IsEnabled(); enabled {
		t.Error("IsEnabled after Disable = true, want false")
	}
}

func TestUnsupported(t *testing.T) {
	var m Manager = unsupported{}
	if err := m.Enable(); !IsUnsupported(err) {
		t.Errorf("Enable error = %v, want unsupported", err)
	}
	if err := m.Disable(); !IsUnsupported(err) {
		t.Errorf("Disable error = %v, want unsupported", err)
	}
	if _, err := m.IsEnabled(); !IsUnsupported(err) {
		t.Errorf("IsEnabled error = %v, want unsupported", err)
	}
}
