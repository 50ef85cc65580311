// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command for clipenhance.
//
// Command: status
// Short:   Display configuration and server reachability
// Aliases: s
//
// Examples:
//   clipenhance status            Show status
//   clipenhance status --json     Status in JSON format
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/clipenhance/internal/autostart"
	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/ollama"
)

// statusProbeTimeout bounds the liveness check so status stays snappy
// when the server is down.
const statusProbeTimeout = 3 * time.Second

type statusReport struct {
	Version        string `json:"version"`
	ConfigPath     string `json:"config_path"`
	OllamaURL      string `json:"ollama_url"`
	ServerUp       bool   `json:"server_up"`
	Model          string `json:"model"`
	CustomTemplate bool   `json:"custom_template"`
	Hotkey         string `json:"hotkey"`
	AutoPaste      bool   `json:"auto_paste"`
	Notifications  bool   `json:"notifications"`
	Autostart      string `json:"autostart"`
}

// HandleStatus handles the "status" command.
func HandleStatus(args Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	configPath, _ := config.PathTOML()

	report := statusReport{
		Version:        Version,
		ConfigPath:     configPath,
		OllamaURL:      settings.Server.OllamaURL,
		Model:          settings.Enhance.Model,
		CustomTemplate: settings.Enhance.Template != "",
		Hotkey:         settings.Hotkey.Combo,
		AutoPaste:      settings.Enhance.AutoPaste,
		Notifications:  settings.Notify.Enabled,
	}

	cfg := ollama.DefaultConfig()
	cfg.BaseURL = settings.Server.OllamaURL
	client := ollama.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), statusProbeTimeout)
	defer cancel()
	report.ServerUp = client.CheckReachable(ctx) == nil

	report.Autostart = autostartState()

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printStatus(report)
	return nil
}

func autostartState() string {
	mgr, err := autostart.New()
	if err != nil {
		return "unavailable"
	}
	enabled, err := mgr.IsEnabled()
	switch {
	case autostart.IsUnsupported(err):
		return "unsupported"
	case err != nil:
		return "unknown"
	case enabled:
		return "enabled"
	default:
		return "disabled"
	}
}

func printStatus(r statusReport) {
	fmt.Println(TitleStyle.Render("ClipEnhance Status"))

	fmt.Println(SectionStyle.Render("Server"))
	fmt.Printf("%s %s\n", LabelStyle.Render("URL"), ValueStyle.Render(r.OllamaURL))
	if r.ServerUp {
		fmt.Printf("%s %s\n", LabelStyle.Render("Reachable"), SuccessStyle.Render("yes"))
	} else {
		fmt.Printf("%s %s\n", LabelStyle.Render("Reachable"), ErrorStyle.Render("no"))
	}

	fmt.Println(SectionStyle.Render("Enhancement"))
	model := r.Model
	if model == "" {
		model = WarningStyle.Render("not configured (run `clipenhance setup`)")
	} else {
		model = ValueStyle.Render(model)
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("Model"), model)
	template := "built-in"
	if r.CustomTemplate {
		template = "custom"
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("Template"), ValueStyle.Render(template))
	fmt.Printf("%s %s\n", LabelStyle.Render("Hotkey"), ValueStyle.Render(r.Hotkey))
	fmt.Printf("%s %s\n", LabelStyle.Render("Auto-paste"), ValueStyle.Render(onOff(r.AutoPaste)))
	fmt.Printf("%s %s\n", LabelStyle.Render("Notify"), ValueStyle.Render(onOff(r.Notifications)))

	fmt.Println(SectionStyle.Render("System"))
	fmt.Printf("%s %s\n", LabelStyle.Render("Autostart"), ValueStyle.Render(r.Autostart))
	fmt.Printf("%s %s\n", LabelStyle.Render("Config"), DimStyle.Render(r.ConfigPath))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
