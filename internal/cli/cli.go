// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and dispatch for clipenhance.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdRun Command = iota // default: start the background daemon
	CmdStatus
	CmdModels
	CmdEnhance
	CmdConfig
	CmdAutostart
	CmdSetup
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Text       string // inline input for the enhance command
	Copy       bool   // enhance: also place the result on the clipboard

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `clipenhance - hotkey-triggered clipboard text enhancement

Clipenhance runs in the background, watches a global hotkey, and replaces
the clipboard text with an enhanced version produced by a local Ollama
server. Nothing ever leaves the machine.

Usage:
  clipenhance                     Start the background daemon (default)
  clipenhance run                 Start the background daemon
  clipenhance status, s           Show daemon configuration and server status
  clipenhance models              List models available on the server
  clipenhance enhance [text]      One-shot enhancement (arg, stdin, or clipboard)
  clipenhance config [show|set|reset]  Configuration management
  clipenhance autostart [on|off|status]  Login-item registration
  clipenhance setup               Pick a model interactively
  clipenhance version             Show version information
  clipenhance help                Show this help

Flags:
  -q, --quiet       Suppress non-error output
  -v, --verbose     Debug-level logging
  --json            Machine-readable output where supported
  --copy            enhance: copy the result to the clipboard too

Configuration keys (config set <key> <value>):
  model             Active model name
  template          Custom instruction template ("-" reads stdin)
  ollama_url        Inference server base URL
  hotkey            Trigger combination, e.g. ctrl+shift+e
  auto_paste        true/false: synthesize a paste after enhancing
  notifications     true/false: desktop notifications
  log_level         debug, info, warn, error

Environment:
  CLIPENHANCE_OLLAMA_URL   Override the server URL
  CLIPENHANCE_MODEL        Override the active model
  CLIPENHANCE_HOTKEY       Override the hotkey combination
  CLIPENHANCE_LOG_LEVEL    Override the log level

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("clipenhance version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdRun, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "run", "daemon":
		return CmdRun, args

	case "status", "s":
		return CmdStatus, args

	case "models", "m":
		return CmdModels, args

	case "enhance", "e":
		parseEnhanceArgs(&args, remaining)
		return CmdEnhance, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "autostart":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdAutostart, args

	case "setup", "init":
		return CmdSetup, args

	case "version", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for _, arg := range argv {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		case "--copy":
			args.Copy = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// parseEnhanceArgs joins the leftover positionals into the inline text.
// No positionals means the clipboard is the input.
func parseEnhanceArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Text = strings.Join(remaining, " ")
	}
}

// parseConfigArgs handles "config [show|set <key> <value>|reset [key]]".
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
