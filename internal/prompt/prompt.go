// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt provides the built-in instruction template and prompt rendering.
package prompt

import (
	_ "embed"
	"strings"
)

// DefaultTemplate is the built-in instruction template used when the user has
// not configured a custom one. It instructs the model to rewrite the raw input
// into a more detailed prompt and to output nothing else.
//
//go:embed default_template.txt
var DefaultTemplate string

// Rendering markers. The raw user text is placed after the template,
// introduced by inputMarker and closed by outputMarker so the model knows
// where its completion should begin.
const (
	inputMarker  = "\n\nUser input: "
	outputMarker = "\n\nEnhanced prompt:"
)

// Render builds the full generation prompt from an instruction template and
// the raw user text. The template is passed through verbatim; callers that
// want the built-in behavior pass DefaultTemplate.
func Render(template, raw string) string {
	var b strings.Builder
	b.Grow(len(template) + len(inputMarker) + len(raw) + len(outputMarker))
	b.WriteString(template)
	b.WriteString(inputMarker)
	b.WriteString(raw)
	b.WriteString(outputMarker)
	return b.String()
}

// IsBlank reports whether s contains no visible text. Used by the pipeline to
// distinguish an expected no-op (nothing copied) from a clipboard failure.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
