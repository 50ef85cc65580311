// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// autostart_cmd.go - Login-item command for clipenhance.
//
// Command: autostart
// Short:   Register or unregister the daemon as a login item
//
// Examples:
//   clipenhance autostart on      Start clipenhance at login
//   clipenhance autostart off     Stop starting at login
//   clipenhance autostart status  Show the current registration
package cli

import (
	"fmt"

	"github.com/jeranaias/clipenhance/internal/autostart"
)

// HandleAutostart handles the "autostart" command.
func HandleAutostart(args Args) error {
	mgr, err := autostart.New()
	if err != nil {
		return fmt.Errorf("autostart unavailable: %w", err)
	}

	switch args.Subcommand {
	case "on", "enable":
		if err := mgr.Enable(); err != nil {
			return fmt.Errorf("enabling autostart: %w", err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("ClipEnhance will start at login."))
		}
		return nil

	case "off", "disable":
		if err := mgr.Disable(); err != nil {
			return fmt.Errorf("disabling autostart: %w", err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("ClipEnhance will no longer start at login."))
		}
		return nil

	case "", "status":
		enabled, err := mgr.IsEnabled()
		if err != nil {
			if autostart.IsUnsupported(err) {
				fmt.Println(WarningStyle.Render("Autostart is not supported on this platform."))
				return nil
			}
			return fmt.Errorf("checking autostart: %w", err)
		}
		if enabled {
			fmt.Println("Autostart: " + SuccessStyle.Render("enabled"))
		} else {
			fmt.Println("Autostart: " + DimStyle.Render("disabled"))
		}
		return nil

	default:
		return fmt.Errorf("unknown autostart subcommand %q (want on, off, or status)", args.Subcommand)
	}
}
