// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timeout.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg, tea.MouseMsg:
		// Every routed input event counts as activity.
		m.client.Session().Touch()
		m.lastActivity = time.Now()

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case components.InactivityTickMsg:
		return m, m.handleInactivityTick()

	case components.InactivityExtendedMsg:
		m.toasts.AddInfo("Sesi diperpanjang.")
		return m, nil

	case NotifyMsg:
		switch msg.Kind {
		case NotifySuccess:
			m.toasts.AddSuccess(msg.Message)
		case NotifyError:
			m.toasts.AddError(msg.Message)
		default:
			m.toasts.AddInfo(msg.Message)
		}
		return m, nil

	case GotoLoginMsg:
		m.resetToLogin()
		return m, nil

	case loginDoneMsg:
		m.screen = screenMenu
		m.menuCursor = 0
		if msg.user != nil {
			m.toasts.AddSuccess("Selamat datang, " + msg.user.Name + ".")
		}
		m.lastActivity = time.Now()
		return m, nil

	case listLoadedMsg:
		return m, m.handleListLoaded(msg)

	case orderLoadedMsg:
		m.order = msg.order
		m.screen = screenDetail
		return m, nil

	case actionDoneMsg:
		m.toasts.AddSuccess(msg.message)
		if m.screen == screenForm {
			m.screen = m.formBack
			m.form = nil
			m.formSubmit = nil
		}
		if m.screen == screenList && m.resource == msg.resource {
			return m, m.reload()
		}
		return m, nil

	case reportLoadedMsg:
		m.report = msg.report
		m.screen = screenReport
		m.form = nil
		m.formSubmit = nil
		return m, nil

	case exportDoneMsg:
		m.toasts.AddSuccess("Laporan disimpan: " + msg.path)
		return m, nil

	case errorMsg:
		return m, m.handleError(msg)
	}

	// The warning overlay swallows the key that dismisses it.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.timeout.IsVisible() {
		var cmd tea.Cmd
		m.timeout, cmd = m.timeout.Update(keyMsg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	// Everything else (blink ticks etc.) goes to the focused input.
	switch m.screen {
	case screenLogin:
		cmds = append(cmds, m.loginForm.Update(msg))
	case screenForm:
		if m.form != nil {
			cmds = append(cmds, m.form.Update(msg))
		}
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// resetToLogin tears the UI back to the login screen after any logout.
func (m *Model) resetToLogin() {
	m.screen = screenLogin
	m.loginForm = newLoginForm(m.theme)
	m.table = nil
	m.listIDs = nil
	m.records = nil
	m.order = nil
	m.report = nil
	m.form = nil
	m.formSubmit = nil
	m.confirmPrompt = ""
	m.confirmCmd = nil
	m.inspecting = false
	m.searching = false
	m.timeout.Hide()
	m.help.Hide()
	m.client.PurgeSnapshots()
}

// handleInactivityTick drives the warning overlay countdown. The hard logout
// itself belongs to the session manager; the overlay only mirrors its clock.
func (m *Model) handleInactivityTick() tea.Cmd {
	if m.client.Session().Authenticated() {
		remaining := m.client.Session().InactivityWindow() - time.Since(m.lastActivity)
		switch {
		case remaining <= 0:
			m.timeout.Hide()
		case remaining <= m.timeout.WarningThreshold():
			if m.timeout.IsVisible() {
				m.timeout.UpdateTime(remaining)
			} else {
				m.timeout.Show(remaining)
			}
		default:
			m.timeout.Hide()
		}
	} else {
		m.timeout.Hide()
	}
	return components.InactivityTickCmd()
}

func (m *Model) handleListLoaded(msg listLoadedMsg) tea.Cmd {
	m.loading = false
	if m.screen != screenList || msg.resource != m.resource {
		// A slow response for a screen the admin already left.
		return nil
	}
	m.table.SetRows(msg.rows, msg.page)
	m.listIDs = msg.ids
	m.records = msg.records
	m.stale = msg.stale
	if msg.stale {
		m.toasts.AddInfo("Menampilkan data tersimpan. Server tidak terjangkau.")
	}
	return nil
}

func (m *Model) handleError(msg errorMsg) tea.Cmd {
	m.loading = false

	apiErr := api.AsError(msg.err)

	// Session errors already produced a toast and navigation through the
	// manager's own logout path.
	if apiErr != nil && (apiErr.Kind == api.KindUnauthenticated || apiErr.Kind == api.KindSessionExpired) {
		return nil
	}

	if m.screen == screenForm && m.form != nil && apiErr != nil && apiErr.Kind == api.KindValidationFailed {
		m.form.ApplyFieldErrors(msg.err)
		m.toasts.AddError(apiErr.Message)
		return nil
	}
	if m.screen == screenLogin && apiErr != nil && apiErr.Kind == api.KindValidationFailed {
		m.loginForm.ApplyFieldErrors(msg.err)
		m.toasts.AddError(apiErr.Message)
		return nil
	}

	if apiErr != nil && apiErr.Kind == api.KindNetworkFailure {
		// The session layer already raised the connectivity toast.
		return nil
	}

	if apiErr != nil && apiErr.Message != "" {
		m.toasts.AddError(apiErr.Message)
		return nil
	}
	m.toasts.AddError("Gagal memuat " + msg.scope + ".")
	return nil
}

// handleKey routes keystrokes by screen.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirm prompt intercepts everything.
	if m.confirmPrompt != "" {
		switch msg.String() {
		case "y", "Y":
			cmd := m.confirmCmd
			m.confirmPrompt = ""
			m.confirmCmd = nil
			return m, cmd
		default:
			m.confirmPrompt = ""
			m.confirmCmd = nil
			return m, nil
		}
	}

	// Help overlay: any key closes it.
	if m.help.Visible() {
		m.help.Hide()
		return m, nil
	}

	// JSON inspector: any key closes it.
	if m.inspecting {
		m.inspecting = false
		m.inspectBody = ""
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch m.screen {
	case screenLogin:
		return m.handleLoginKey(msg)
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenList:
		return m.handleListKey(msg)
	case screenForm:
		return m.handleFormKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenReport:
		return m.handleReportKey(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search = m.searchInput.Value()
		m.page = 1
		return m, m.reload()
	case tea.KeyEsc:
		m.searching = false
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := menuEntries()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(entries)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Select):
		entry := entries[m.menuCursor]
		if entry.isReport {
			return m, m.openReportForm()
		}
		return m, m.openList(entry.resource)
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Logout):
		m.client.Session().Logout("", "")
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.order = nil
		m.screen = screenList
		return m, nil
	case key.Matches(msg, m.keys.Inspect):
		if m.order != nil {
			m.inspecting = true
			m.inspectBody = components.RenderJSONValue(m.order, m.cfg.UI.Theme != "light")
		}
		return m, nil
	case msg.String() == "s":
		if m.order != nil {
			return m, m.openOrderStatusForm(m.order)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}
