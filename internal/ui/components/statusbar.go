// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"strings"

	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
	"github.com/jeranaias/denimhouse-admin/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBarData feeds one render of the bottom status bar.
type StatusBarData struct {
	UserName  string
	UserRole  string
	SessionOK bool
	Screen    string
	Shortcuts []Shortcut
	Width     int
}

// RenderStatusBar draws the single-line status bar: identity on the left,
// active screen in the middle, shortcut hints on the right.
func RenderStatusBar(theme *styles.Theme, data StatusBarData) string {
	var left strings.Builder
	if data.UserName != "" {
		left.WriteString(theme.StatusUser.Render(data.UserName))
		if data.UserRole != "" {
			left.WriteString(" ")
			left.WriteString(theme.StatusRole.Render("(" + data.UserRole + ")"))
		}
	} else {
		left.WriteString(theme.StatusRole.Render("belum masuk"))
	}
	if data.Screen != "" {
		left.WriteString("  |  ")
		left.WriteString(data.Screen)
	}

	var right strings.Builder
	for i, sc := range data.Shortcuts {
		if i > 0 {
			right.WriteString("  ")
		}
		right.WriteString(theme.ShortcutKey.Render(sc.Key))
		right.WriteString(" ")
		right.WriteString(theme.ShortcutDesc.Render(sc.Desc))
	}

	leftStr := left.String()
	rightStr := right.String()

	gap := data.Width - util.StringWidth(stripForWidth(leftStr)) - util.StringWidth(stripForWidth(rightStr)) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.StatusBar.Render(" " + leftStr + strings.Repeat(" ", gap) + rightStr + " ")
}

// stripForWidth removes ANSI escape sequences for width math.
func stripForWidth(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
