// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// daemon.go - The clipenhance background daemon.
//
// The daemon registers the global hotkey, watches the config file, and
// runs one enhancement pipeline per trigger. It shuts down cleanly on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/clipenhance/internal/cli"
	"github.com/jeranaias/clipenhance/internal/clipboard"
	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/hotkey"
	"github.com/jeranaias/clipenhance/internal/logger"
	"github.com/jeranaias/clipenhance/internal/notify"
	"github.com/jeranaias/clipenhance/internal/ollama"
	"github.com/jeranaias/clipenhance/internal/pipeline"
	"github.com/jeranaias/clipenhance/internal/telemetry"
)

// startupProbeTimeout bounds the initial server liveness check.
const startupProbeTimeout = 3 * time.Second

// triggerInterval throttles key auto-repeat: holding the hotkey fires one
// enhancement, not a stream of them. Deliberate re-triggers still race and
// the last clipboard write wins.
const triggerInterval = 500 * time.Millisecond

// hotkeyEventSource registers the global hotkey and returns its event
// channel. On platforms without a hotkey backend the daemon degrades
// instead of failing: it returns a nil channel (never ready), so the
// config watcher and one-shot CLI enhancement keep working and an
// autostart-registered `clipenhance run` login item stays up.
func hotkeyEventSource(combo hotkey.Combo, log *slog.Logger) (<-chan hotkey.Event, func(), error) {
	listener, err := hotkey.Listen(combo)
	if errors.Is(err, hotkey.ErrUnsupported) {
		log.Warn("global hotkey not supported on this platform; running without a trigger",
			"hotkey", combo.String())
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("registering hotkey %q: %w", combo.String(), err)
	}
	return listener.Events(), func() { listener.Close() }, nil
}

func runDaemon(args cli.Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := settings.Log.Level
	if args.Verbose {
		level = "debug"
	} else if args.Quiet {
		level = "error"
	}
	log := logger.New(logger.FromSettings(level, settings.Log.Format))

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("preparing config directory: %w", err)
	}

	store := config.NewStore(settings)

	var notifier notify.Notifier = notify.Silent{}
	if settings.Notify.Enabled {
		notifier = notify.NewDesktop()
	}

	clientCfg := ollama.DefaultConfig()
	clientCfg.BaseURL = store.Endpoint()
	client := ollama.NewClientWithConfig(clientCfg)

	// Startup liveness probe. A down server is not fatal: it may come up
	// before the first trigger.
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), startupProbeTimeout)
	if err := client.CheckReachable(probeCtx); err != nil {
		log.Warn("ollama server unreachable at startup", "url", store.Endpoint(), "error", err)
		notifier.Show("ClipEnhance", "Ollama is not reachable yet. Enhancements will fail until it starts.")
	} else {
		log.Info("ollama server reachable", "url", store.Endpoint())
	}
	cancelProbe()

	if store.Model() == "" {
		log.Warn("no model configured; triggers will fail until one is set")
	}

	// Usage telemetry is best-effort.
	var usage pipeline.Recorder
	if dir, err := config.ConfigDir(); err == nil {
		if db, err := telemetry.Open(filepath.Join(dir, "usage.db")); err != nil {
			log.Warn("usage telemetry disabled", "error", err)
		} else {
			defer db.Close()
			usage = db
		}
	}

	// Watch the config file so edits from the CLI or an editor reach the
	// running daemon.
	watcher, err := config.NewWatcher(store, config.DefaultWatchDebounce)
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	watcher.OnReload = func(s *config.Settings) {
		log.Info("configuration reloaded", "model", s.Enhance.Model)
	}
	watcher.OnError = func(err error) {
		log.Warn("configuration reload failed, keeping previous settings", "error", err)
	}
	if err := watcher.Watch(); err != nil {
		return fmt.Errorf("watching config directory: %w", err)
	}
	defer watcher.Close()

	var paste pipeline.PasteFunc
	if settings.Enhance.AutoPaste {
		paste = clipboard.SendPaste
	}

	p := pipeline.New(clipboard.NewSystem(), client, store, notifier, log, pipeline.Options{
		Usage: usage,
		Paste: paste,
	})

	combo, err := hotkey.ParseCombo(settings.Hotkey.Combo)
	if err != nil {
		return fmt.Errorf("invalid hotkey %q: %w", settings.Hotkey.Combo, err)
	}
	events, closeListener, err := hotkeyEventSource(combo, log)
	if err != nil {
		return err
	}
	defer closeListener()

	log.Info("daemon started", "hotkey", combo.String(), "url", store.Endpoint(), "model", store.Model())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(triggerInterval), 1)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil

		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("hotkey listener stopped unexpectedly")
			}
			if !ev.Pressed {
				continue
			}
			if !limiter.Allow() {
				log.Debug("trigger throttled (auto-repeat)")
				continue
			}
			// Each trigger runs independently; overlapping runs are
			// allowed and the later clipboard write wins.
			go func() {
				if err := p.Run(ctx); err != nil {
					log.Debug("trigger finished with error", "error", err)
				}
			}()
		}
	}
}
