// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParse_DefaultsToRun(t *testing.T) {
	cmd, _ := parse(nil)
	if cmd != CmdRun {
		t.Errorf("parse(nil) = %v, want CmdRun", cmd)
	}
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"run", []string{"run"}, CmdRun},
		{"daemon alias", []string{"daemon"}, CmdRun},
		{"status", []string{"status"}, CmdStatus},
		{"status short", []string{"s"}, CmdStatus},
		{"models", []string{"models"}, CmdModels},
		{"enhance", []string{"enhance", "some", "text"}, CmdEnhance},
		{"config", []string{"config"}, CmdConfig},
		{"autostart", []string{"autostart", "on"}, CmdAutostart},
		{"setup", []string{"setup"}, CmdSetup},
		{"setup alias", []string{"init"}, CmdSetup},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, _ := parse(tc.argv)
			if cmd != tc.want {
				t.Errorf("parse(%v) = %v, want %v", tc.argv, cmd, tc.want)
			}
		})
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--json", "status", "-q"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("flags = %+v, want JSON and Quiet set", args)
	}
}

func TestParse_VerboseShortFlag(t *testing.T) {
	// -v is the verbose flag everywhere, as the help text says; it must
	// not be read as a version alias.
	cmd, args := parse([]string{"-v"})
	if cmd != CmdRun {
		t.Errorf("parse(-v) = %v, want CmdRun", cmd)
	}
	if !args.Verbose {
		t.Error("parse(-v) did not set Verbose")
	}

	cmd, args = parse([]string{"-v", "status"})
	if cmd != CmdStatus || !args.Verbose {
		t.Errorf("parse(-v status) = %v %+v, want CmdStatus with Verbose", cmd, args)
	}
}

func TestParse_EnhanceInlineText(t *testing.T) {
	_, args := parse([]string{"enhance", "fix", "this", "code"})
	if args.Text != "fix this code" {
		t.Errorf("Text = %q, want joined positionals", args.Text)
	}

	_, args = parse([]string{"enhance"})
	if args.Text != "" {
		t.Errorf("Text = %q, want empty (clipboard input)", args.Text)
	}

	_, args = parse([]string{"enhance", "--copy", "hello"})
	if !args.Copy || args.Text != "hello" {
		t.Errorf("args = %+v, want Copy set and Text %q", args, "hello")
	}
}

func TestParse_ConfigSet(t *testing.T) {
	_, args := parse([]string{"config", "set", "model", "mistral:7b"})
	if args.Subcommand != "set" || args.ConfigKey != "model" || args.ConfigVal != "mistral:7b" {
		t.Errorf("args = %+v", args)
	}

	// Values with spaces are joined.
	_, args = parse([]string{"config", "set", "template", "be", "concise"})
	if args.ConfigVal != "be concise" {
		t.Errorf("ConfigVal = %q, want joined value", args.ConfigVal)
	}

	// Bare config defaults to show.
	_, args = parse([]string{"config"})
	if args.Subcommand != "show" {
		t.Errorf("Subcommand = %q, want show", args.Subcommand)
	}
}

func TestParse_AutostartSubcommand(t *testing.T) {
	_, args := parse([]string{"autostart", "ON"})
	if args.Subcommand != "on" {
		t.Errorf("Subcommand = %q, want lowercased on", args.Subcommand)
	}
}
