// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Model listing command for clipenhance.
//
// Command: models
// Short:   List models available on the inference server
// Aliases: m
//
// Examples:
//   clipenhance models            List models; * marks the active one
//   clipenhance models --json     List in JSON format
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/ollama"
)

const listModelsTimeout = 10 * time.Second

// HandleModels handles the "models" command.
func HandleModels(args Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	cfg := ollama.DefaultConfig()
	cfg.BaseURL = settings.Server.OllamaURL
	client := ollama.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), listModelsTimeout)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		if ollama.IsTransport(err) {
			return fmt.Errorf("cannot reach Ollama at %s (is it running?)", settings.Server.OllamaURL)
		}
		return fmt.Errorf("listing models: %w", err)
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Active string   `json:"active"`
			Models []string `json:"models"`
		}{Active: settings.Enhance.Model, Models: models})
	}

	if len(models) == 0 {
		fmt.Println(WarningStyle.Render("No models installed. Pull one with: ollama pull <name>"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Available Models"))
	for _, m := range models {
		if m == settings.Enhance.Model {
			fmt.Printf("  %s %s\n", HighlightStyle.Render("*"), HighlightStyle.Render(m))
		} else {
			fmt.Printf("    %s\n", ValueStyle.Render(m))
		}
	}
	if settings.Enhance.Model == "" {
		fmt.Println(DimStyle.Render("\nNo active model. Run `clipenhance setup` to pick one."))
	}
	return nil
}
