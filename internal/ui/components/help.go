// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpMarkdown is the full keyboard reference shown by the help overlay.
const helpMarkdown = `# DenimHouse Admin

## Navigasi

| Tombol | Fungsi |
|--------|--------|
| j / k, panah | pindah baris |
| g / G | baris pertama / terakhir |
| h / l | halaman sebelumnya / berikutnya |
| enter | buka / pilih |
| esc | kembali |
| / | cari |
| r | muat ulang |
| ? | bantuan ini |
| q | keluar |

## Data

| Tombol | Fungsi |
|--------|--------|
| n | buat baru |
| e | ubah |
| d | hapus |
| i | inspeksi JSON |

Sesi berakhir otomatis setelah tidak ada aktivitas. Tekan tombol apa
saja saat peringatan muncul untuk memperpanjang sesi.
`

// HelpOverlay renders the keyboard reference as a centered overlay.
type HelpOverlay struct {
	visible  bool
	rendered string
	theme    *styles.Theme
}

// NewHelpOverlay builds the overlay, rendering the markdown once up front.
// A glamour failure degrades to the raw markdown text.
func NewHelpOverlay(theme *styles.Theme, dark bool) *HelpOverlay {
	style := "dark"
	if !dark {
		style = "light"
	}
	rendered := helpMarkdown
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(64),
	)
	if err == nil {
		if out, rErr := renderer.Render(helpMarkdown); rErr == nil {
			rendered = out
		}
	}
	return &HelpOverlay{
		rendered: strings.TrimRight(rendered, "\n"),
		theme:    theme,
	}
}

// Visible reports whether the overlay is showing.
func (h *HelpOverlay) Visible() bool {
	return h.visible
}

// Toggle flips overlay visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// Hide dismisses the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// View renders the overlay centered in the given area. Returns an empty
// string when hidden.
func (h *HelpOverlay) View(width, height int) string {
	if !h.visible {
		return ""
	}
	box := h.theme.DetailBox.Render(h.rendered)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
