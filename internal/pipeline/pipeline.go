// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline runs one clipboard enhancement end to end.
//
// Each hotkey trigger gets its own Run: read the clipboard, build the
// prompt from the active template, call the inference server, and write
// the enhanced text back. Failures at any stage notify the user and leave
// the clipboard untouched; the pipeline then returns to idle. Triggers
// are independent, so two overlapping runs race on the clipboard and the
// later write wins.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/clipenhance/internal/clipboard"
	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/notify"
	"github.com/jeranaias/clipenhance/internal/ollama"
	"github.com/jeranaias/clipenhance/internal/prompt"
	"github.com/jeranaias/clipenhance/internal/telemetry"
)

// notificationTitle heads every desktop notification the pipeline shows.
const notificationTitle = "ClipEnhance"

// =============================================================================
// INTERFACES
// =============================================================================

// Generator produces an enhancement for raw clipboard text.
type Generator interface {
	Generate(ctx context.Context, raw, model, template string) (*ollama.GenerateResponse, error)
}

// Recorder persists usage numbers for completed runs.
type Recorder interface {
	Record(r telemetry.Record) error
}

// PasteFunc injects a paste keystroke after a successful clipboard write.
type PasteFunc func() error

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline wires the stages of one enhancement together.
type Pipeline struct {
	clip     clipboard.Clipboard
	gen      Generator
	store    *config.Store
	notifier notify.Notifier
	usage    Recorder // nil disables usage recording
	paste    PasteFunc
	logger   *slog.Logger
}

// Options configures optional pipeline behavior.
type Options struct {
	// Usage, when non-nil, receives a record per completed run.
	Usage Recorder

	// Paste, when non-nil and auto-paste is enabled in settings, is
	// invoked after the enhanced text lands on the clipboard.
	Paste PasteFunc
}

// New creates a pipeline. Cheap; one pipeline serves all triggers.
func New(clip clipboard.Clipboard, gen Generator, store *config.Store, notifier notify.Notifier, logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		clip:     clip,
		gen:      gen,
		store:    store,
		notifier: notifier,
		usage:    opts.Usage,
		paste:    opts.Paste,
		logger:   logger,
	}
}

// Run performs one enhancement. It never panics on bad input; every
// failure is logged, surfaced as a notification, and returned.
func (p *Pipeline) Run(ctx context.Context) error {
	id := uuid.NewString()
	start := time.Now()
	log := p.logger.With("trigger_id", id)

	log.Debug("trigger received")

	// ----- Reading -----
	raw, err := p.clip.ReadText()
	if err != nil {
		log.Error("clipboard read failed", "error", err)
		p.notifier.Show(notificationTitle, "Could not read the clipboard.")
		return fmt.Errorf("reading clipboard: %w", err)
	}

	if prompt.IsBlank(raw) {
		// Informational only: nothing to enhance, nothing touched.
		log.Info("clipboard empty, skipping")
		p.notifier.Show(notificationTitle, "Clipboard is empty, nothing to enhance.")
		return nil
	}

	model := p.store.Model()
	if model == "" {
		log.Error("no model configured")
		p.notifier.Show(notificationTitle, "No model configured. Run `clipenhance setup` to pick one.")
		return fmt.Errorf("no model configured")
	}

	// ----- Enhancing -----
	log.Info("enhancing", "model", model, "input_chars", len(raw))
	resp, err := p.gen.Generate(ctx, raw, model, p.store.Template())
	if err != nil {
		log.Error("enhancement failed", "model", model, "error", err)
		p.notifier.Show(notificationTitle, failureMessage(err))
		p.record(telemetry.Record{
			TriggerID: id,
			Model:     model,
			Succeeded: false,
			Timestamp: start,
		}, log)
		return fmt.Errorf("enhancing clipboard text: %w", err)
	}

	// ----- Writing -----
	if err := p.clip.WriteText(resp.Response); err != nil {
		log.Error("clipboard write failed", "error", err)
		p.notifier.Show(notificationTitle, "Enhancement succeeded but the clipboard could not be updated.")
		return fmt.Errorf("writing clipboard: %w", err)
	}

	if p.paste != nil {
		if err := p.paste(); err != nil {
			// The enhanced text is on the clipboard; paste is a
			// convenience, not part of the contract.
			log.Warn("auto-paste failed", "error", err)
		}
	}

	log.Info("enhancement complete",
		"model", model,
		"output_chars", len(resp.Response),
		"elapsed", time.Since(start),
		"eval_count", resp.EvalCount,
	)
	p.notifier.Show(notificationTitle, "Enhanced text copied to clipboard.")

	p.record(telemetry.Record{
		TriggerID:        id,
		Model:            model,
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
		TotalDuration:    resp.TotalTime(),
		EvalDuration:     time.Duration(resp.EvalDuration),
		Succeeded:        true,
		Timestamp:        start,
	}, log)
	return nil
}

func (p *Pipeline) record(r telemetry.Record, log *slog.Logger) {
	if p.usage == nil {
		return
	}
	if err := p.usage.Record(r); err != nil {
		log.Warn("usage recording failed", "error", err)
	}
}

// failureMessage maps a generation error onto a short user-facing line.
func failureMessage(err error) string {
	switch {
	case ollama.IsTransport(err):
		return "Could not reach the Ollama server. Is it running?"
	case ollama.IsHTTPStatus(err):
		return "The Ollama server rejected the request: " + err.Error()
	case ollama.IsDecode(err):
		return "The Ollama server returned an unreadable response."
	default:
		return "Enhancement failed: " + err.Error()
	}
}
