// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for clipenhance.
//
// Command: config
// Short:   Show and change persisted settings
//
// Examples:
//   clipenhance config                      Show current configuration
//   clipenhance config show --json          Show in JSON format
//   clipenhance config set model mistral:7b Set the active model
//   clipenhance config set template -       Read a custom template from stdin
//   clipenhance config reset template       Revert to the built-in template
//   clipenhance config reset                Revert everything to defaults
//
// The running daemon picks changes up automatically through its config
// file watcher; no restart is needed.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/hotkey"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "reset":
		return configReset(args)
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, set, or reset)", args.Subcommand)
	}
}

func configShow(args Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	}

	path, _ := config.PathTOML()
	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Printf("%s %s\n", LabelStyle.Render("ollama_url"), ValueStyle.Render(settings.Server.OllamaURL))
	model := settings.Enhance.Model
	if model == "" {
		model = DimStyle.Render("(not set)")
	} else {
		model = ValueStyle.Render(model)
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("model"), model)
	template := "built-in"
	if settings.Enhance.Template != "" {
		template = fmt.Sprintf("custom (%d chars)", len(settings.Enhance.Template))
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("template"), ValueStyle.Render(template))
	fmt.Printf("%s %s\n", LabelStyle.Render("hotkey"), ValueStyle.Render(settings.Hotkey.Combo))
	fmt.Printf("%s %s\n", LabelStyle.Render("auto_paste"), ValueStyle.Render(onOff(settings.Enhance.AutoPaste)))
	fmt.Printf("%s %s\n", LabelStyle.Render("notifications"), ValueStyle.Render(onOff(settings.Notify.Enabled)))
	fmt.Printf("%s %s\n", LabelStyle.Render("log_level"), ValueStyle.Render(settings.Log.Level))
	fmt.Printf("%s %s\n", LabelStyle.Render("file"), DimStyle.Render(path))
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" {
		return fmt.Errorf("usage: clipenhance config set <key> <value>")
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	key := strings.ToLower(args.ConfigKey)
	value := args.ConfigVal

	switch key {
	case "model":
		if value == "" {
			return fmt.Errorf("model cannot be empty; use `config reset model` to clear it")
		}
		settings.Enhance.Model = value

	case "template":
		if value == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading template from stdin: %w", err)
			}
			value = string(data)
		}
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("template cannot be blank; use `config reset template` to revert to the built-in one")
		}
		settings.Enhance.Template = value

	case "ollama_url", "url":
		settings.Server.OllamaURL = value

	case "hotkey":
		if _, err := hotkey.ParseCombo(value); err != nil {
			return fmt.Errorf("invalid hotkey: %w", err)
		}
		settings.Hotkey.Combo = value

	case "auto_paste":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_paste wants true or false, got %q", value)
		}
		settings.Enhance.AutoPaste = b

	case "notifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("notifications wants true or false, got %q", value)
		}
		settings.Notify.Enabled = b

	case "log_level":
		settings.Log.Level = strings.ToLower(value)

	default:
		return fmt.Errorf("unknown configuration key %q", args.ConfigKey)
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Save(settings); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Saved. ") + DimStyle.Render("A running daemon reloads automatically."))
	}
	return nil
}

func configReset(args Args) error {
	// Full reset rewrites the file with defaults.
	if args.ConfigKey == "" {
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("Configuration reset to defaults."))
		}
		return nil
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	switch strings.ToLower(args.ConfigKey) {
	case "model":
		settings.Enhance.Model = ""
	case "template":
		settings.Enhance.Template = ""
	case "ollama_url", "url":
		settings.Server.OllamaURL = config.Default().Server.OllamaURL
	case "hotkey":
		settings.Hotkey.Combo = config.Default().Hotkey.Combo
	case "auto_paste":
		settings.Enhance.AutoPaste = false
	case "notifications":
		settings.Notify.Enabled = config.Default().Notify.Enabled
	case "log_level":
		settings.Log.Level = config.Default().Log.Level
	default:
		return fmt.Errorf("unknown configuration key %q", args.ConfigKey)
	}

	if err := config.Save(settings); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	if !args.Quiet {
		fmt.Printf("%s\n", SuccessStyle.Render("Reset "+strings.ToLower(args.ConfigKey)+"."))
	}
	return nil
}
