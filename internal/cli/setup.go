// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - Interactive model picker for clipenhance.
//
// Command: setup
// Short:   Pick the model used for enhancement
// Aliases: init
//
// Examples:
//   clipenhance setup             Interactive picker (arrow keys, enter)
//
// The picker lists the models installed on the Ollama server in server
// order and persists the selection. In a non-interactive context (piped
// stdin) it falls back to a numbered prompt.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/clipenhance/internal/config"
	"github.com/jeranaias/clipenhance/internal/ollama"
)

// HandleSetup handles the "setup" command.
func HandleSetup(args Args) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if !IsTTY() {
		return setupPrompt(settings)
	}

	cfg := ollama.DefaultConfig()
	cfg.BaseURL = settings.Server.OllamaURL
	client := ollama.NewClientWithConfig(cfg)

	m := newSetupModel(client, settings.Enhance.Model)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("running setup: %w", err)
	}

	result := final.(setupModel)
	if result.err != nil {
		return result.err
	}
	if result.choice == "" {
		fmt.Println(DimStyle.Render("Setup cancelled; nothing changed."))
		return nil
	}

	settings.Enhance.Model = result.choice
	if err := config.Save(settings); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	fmt.Println(SuccessStyle.Render("Model set to "+result.choice) +
		DimStyle.Render("  (hotkey: "+settings.Hotkey.Combo+")"))
	return nil
}

// =============================================================================
// BUBBLETEA PICKER
// =============================================================================

type modelsLoadedMsg struct {
	models []string
	err    error
}

type setupModel struct {
	client  *ollama.Client
	spinner spinner.Model
	loading bool
	models  []string
	cursor  int
	current string // previously configured model
	choice  string
	err     error
}

func newSetupModel(client *ollama.Client, current string) setupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = HighlightStyle
	return setupModel{
		client:  client,
		spinner: s,
		loading: true,
		current: current,
	}
}

func (m setupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadModels)
}

func (m setupModel) loadModels() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	models, err := m.client.ListModels(ctx)
	return modelsLoadedMsg{models: models, err: err}
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modelsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if ollama.IsTransport(msg.err) {
				m.err = fmt.Errorf("cannot reach Ollama at %s (is it running?)", m.client.BaseURL())
			} else {
				m.err = msg.err
			}
			return m, tea.Quit
		}
		if len(msg.models) == 0 {
			m.err = fmt.Errorf("no models installed; pull one with `ollama pull <name>` and rerun setup")
			return m, tea.Quit
		}
		m.models = msg.models
		for i, name := range m.models {
			if name == m.current {
				m.cursor = i
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.models)-1 {
				m.cursor++
			}
		case "enter":
			if !m.loading && len(m.models) > 0 {
				m.choice = m.models[m.cursor]
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m setupModel) View() string {
	if m.err != nil {
		return ""
	}
	if m.loading {
		return fmt.Sprintf("\n %s Fetching models from %s...\n", m.spinner.View(), m.client.BaseURL())
	}

	var b strings.Builder
	b.WriteString("\n" + TitleStyle.Render("Pick a model for enhancement") + "\n")
	for i, name := range m.models {
		line := "  " + name
		if name == m.current {
			line += DimStyle.Render("  (current)")
		}
		if i == m.cursor {
			line = HighlightStyle.Render("> " + name)
			if name == m.current {
				line += DimStyle.Render("  (current)")
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(DimStyle.Render("\n up/down to move, enter to select, q to cancel\n"))
	return b.String()
}

// =============================================================================
// NON-INTERACTIVE FALLBACK
// =============================================================================

// setupPrompt is the numbered-list fallback for piped stdin.
func setupPrompt(settings *config.Settings) error {
	cfg := ollama.DefaultConfig()
	cfg.BaseURL = settings.Server.OllamaURL
	client := ollama.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("listing models: %w", err)
	}
	if len(models) == 0 {
		return fmt.Errorf("no models installed; pull one with `ollama pull <name>`")
	}

	fmt.Println("Available models:")
	for i, name := range models {
		marker := " "
		if name == settings.Enhance.Model {
			marker = "*"
		}
		fmt.Printf("  %s %d) %s\n", marker, i+1, name)
	}
	fmt.Print("Select a model by number: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return fmt.Errorf("no selection made")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(models) {
		return fmt.Errorf("invalid selection %q", strings.TrimSpace(scanner.Text()))
	}

	settings.Enhance.Model = models[n-1]
	if err := config.Save(settings); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	fmt.Printf("Model set to %s\n", settings.Enhance.Model)
	return nil
}
