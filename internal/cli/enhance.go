// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// enhance.go - One-shot enhancement command for clipenhance.
//
// Command: enhance
// Short:   Enhance text once, without the daemon
// Aliases: e
//
// Examples:
//   clipenhance enhance "fix this code"   Enhance the argument, print result
//   clipenhance enhance                   Enhance the clipboard contents
//   echo "fix this" | clipenhance enhance Enhance piped stdin
//   clipenhance enhance --copy            Also copy the result back
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/clipenhance/internal/clipboard"
	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/ollama"
	"github.com/jeranaias/clipenhance/internal/prompt"
)

const enhanceTimeout = 5 * time.Minute

// HandleEnhance handles the "enhance" command.
func HandleEnhance(args Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	store := config.NewStore(settings)

	clip := clipboard.NewSystem()
	raw := args.Text
	source := "argument"
	if raw == "" {
		if !IsTTY() {
			// Piped input wins over the clipboard.
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			raw = string(data)
			source = "stdin"
		} else {
			raw, err = clip.ReadText()
			if err != nil {
				return fmt.Errorf("reading clipboard: %w", err)
			}
			source = "clipboard"
		}
	}

	if prompt.IsBlank(raw) {
		return fmt.Errorf("%s is empty, nothing to enhance", source)
	}

	model := store.Model()
	if model == "" {
		return fmt.Errorf("no model configured; run `clipenhance setup` first")
	}

	cfg := ollama.DefaultConfig()
	cfg.BaseURL = store.Endpoint()
	client := ollama.NewClientWithConfig(cfg)

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, DimStyle.Render("Enhancing with "+model+"..."))
	}

	ctx, cancel := context.WithTimeout(context.Background(), enhanceTimeout)
	defer cancel()

	enhanced, err := client.Enhance(ctx, raw, model, store.Template())
	if err != nil {
		if ollama.IsTransport(err) {
			return fmt.Errorf("cannot reach Ollama at %s (is it running?)", store.Endpoint())
		}
		return fmt.Errorf("enhancement failed: %w", err)
	}

	fmt.Println(enhanced)

	if args.Copy {
		if err := clip.WriteText(enhanced); err != nil {
			return fmt.Errorf("copying result to clipboard: %w", err)
		}
		if !args.Quiet {
			fmt.Fprintln(os.Stderr, SuccessStyle.Render("Copied to clipboard."))
		}
	}
	return nil
}
