// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
)

// =============================================================================
// INACTIVITY WARNING OVERLAY
// =============================================================================

// DefaultWarningThreshold is when to show the warning before the inactivity
// logout fires.
const DefaultWarningThreshold = 2 * time.Minute

// InactivityOverlay warns the operator shortly before the idle session is
// ended. Any key press dismisses it and counts as activity.
type InactivityOverlay struct {
	visible       bool
	timeRemaining time.Duration

	warningThreshold time.Duration

	width  int
	height int
}

// NewInactivityOverlay creates a new inactivity warning overlay.
func NewInactivityOverlay() InactivityOverlay {
	return InactivityOverlay{
		warningThreshold: DefaultWarningThreshold,
	}
}

// SetSize sets the overlay dimensions.
func (o *InactivityOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// WarningThreshold returns how long before logout the warning appears.
func (o *InactivityOverlay) WarningThreshold() time.Duration {
	return o.warningThreshold
}

// Show displays the overlay with the given time remaining.
func (o *InactivityOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.timeRemaining = remaining
}

// Hide hides the overlay.
func (o *InactivityOverlay) Hide() {
	o.visible = false
}

// UpdateTime updates the countdown timer.
func (o *InactivityOverlay) UpdateTime(remaining time.Duration) {
	o.timeRemaining = remaining
}

// IsVisible returns whether the overlay is currently visible.
func (o *InactivityOverlay) IsVisible() bool {
	return o.visible
}

// TimeRemaining returns the current time remaining.
func (o *InactivityOverlay) TimeRemaining() time.Duration {
	return o.timeRemaining
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// InactivityTickMsg signals a countdown tick for the warning overlay.
type InactivityTickMsg struct {
	Time time.Time
}

// InactivityExtendedMsg signals the operator pressed a key while the warning
// was visible.
type InactivityExtendedMsg struct{}

// InactivityTickCmd returns a command that ticks the countdown every second.
func InactivityTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return InactivityTickMsg{Time: t}
	})
}

// Update handles messages for the overlay.
func (o InactivityOverlay) Update(msg tea.Msg) (InactivityOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height

	case tea.KeyMsg:
		if o.visible {
			o.Hide()
			return o, func() tea.Msg {
				return InactivityExtendedMsg{}
			}
		}
	}
	return o, nil
}

// View renders the warning overlay.
func (o InactivityOverlay) View() string {
	if !o.visible {
		return ""
	}

	width := o.width
	if width == 0 {
		width = 60
	}
	height := o.height
	if height == 0 {
		height = 24
	}

	maxWidth := width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	if maxWidth > 60 {
		maxWidth = 60
	}

	timeStr := formatTimeRemaining(o.timeRemaining)

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Warning+" Sesi Akan Berakhir"))

	parts = append(parts, "")

	timeStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)

	parts = append(parts, msgStyle.Render(
		"Sesi berakhir dalam "+timeStyle.Render(timeStr)+" karena tidak ada aktivitas."))

	parts = append(parts, "")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Align(lipgloss.Center)
	parts = append(parts, hintStyle.Render("Tekan tombol apa saja untuk melanjutkan"))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(content),
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

// formatTimeRemaining formats a duration as M:SS for display.
func formatTimeRemaining(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}
	totalSecs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", totalSecs/60, totalSecs%60)
}
