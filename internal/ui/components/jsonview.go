// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// =============================================================================
// JSON INSPECTOR
// =============================================================================

// RenderJSON pretty-prints and syntax-highlights a raw JSON payload for the
// record inspector. Highlighting failures fall back to the plain indented
// form; the inspector is a debugging aid and must never block on cosmetics.
func RenderJSON(raw []byte, dark bool) string {
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		// Not valid JSON. Show it as-is.
		return string(raw)
	}

	style := "monokai"
	if !dark {
		style = "friendly"
	}

	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, indented.String(), "json", "terminal256", style); err != nil {
		return indented.String()
	}
	return highlighted.String()
}

// RenderJSONValue marshals any value and highlights it. Used when the
// caller has a decoded record rather than raw payload bytes.
func RenderJSONValue(v any, dark bool) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return RenderJSON(raw, dark)
}

// ClampLines truncates rendered output to at most n lines, appending an
// ellipsis marker when content was cut.
func ClampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
