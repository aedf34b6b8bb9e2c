// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the DenimHouse
// admin console.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MENU STYLES
	// ==========================================================================

	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuHint         lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableHeader      lipgloss.Style
	TableRow         lipgloss.Style
	TableRowSelected lipgloss.Style
	TableFooter      lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldError        lipgloss.Style
	FormTitle         lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusUser   lipgloss.Style
	StatusRole   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY / BOX STYLES
	// ==========================================================================

	LoginBox   lipgloss.Style
	DetailBox  lipgloss.Style
	WarningBox lipgloss.Style
	ErrorBox   lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY STATUS STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Menu
	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 2)

	t.MenuItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 2)

	t.MenuHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Tables
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableRowSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.TableFooter = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Forms
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldLabelFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusUser = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusRole = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Boxes
	t.LoginBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3)

	t.DetailBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.WarningBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 3).
		Align(lipgloss.Center)

	// Accessibility status styles
	t.SuccessStyle = lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true)
}
