// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
//
// The root model is a small screen router: login, main menu, resource
// lists, record forms, the order detail view, and the sales report. Session
// lifecycle events arrive through the Bridge as ordinary messages, so a
// forced logout lands on the login screen no matter which screen is active.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/client"
	"github.com/jeranaias/denimhouse-admin/internal/config"
	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/ui/components"
	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenList
	screenForm
	screenDetail
	screenReport
)

// menuEntry pairs a menu row with its target.
type menuEntry struct {
	title    string
	resource resource
	isReport bool
}

func menuEntries() []menuEntry {
	return []menuEntry{
		{title: "Produk", resource: resProducts},
		{title: "Kategori", resource: resCategories},
		{title: "Pesanan", resource: resOrders},
		{title: "Pembayaran", resource: resPayments},
		{title: "Pengiriman", resource: resShipments},
		{title: "Pelanggan", resource: resUsers},
		{title: "Ulasan", resource: resReviews},
		{title: "Admin", resource: resAdmins},
		{title: "Laporan Penjualan", isReport: true},
	}
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	client *client.Client
	cfg    *config.Config
	theme  *styles.Theme
	keys   KeyMap

	screen   screen
	resource resource
	width    int
	height   int

	// login
	loginForm *components.Form

	// menu
	menuCursor int

	// list
	table   *components.Table
	listIDs []int64
	records []any
	page    int
	search  string
	loading bool
	stale   bool

	// search prompt
	searching   bool
	searchInput textinput.Model

	// form; submit is built when the form opens and runs on final enter
	form       *components.Form
	formSubmit func(*components.Form) tea.Cmd
	formBack   screen

	// pending destructive action awaiting y/n
	confirmPrompt string
	confirmCmd    tea.Cmd

	// detail
	order *model.Order

	// report
	report *model.SalesReport

	// inspector
	inspecting  bool
	inspectBody string

	// overlays
	toasts  *components.ToastManager
	timeout components.InactivityOverlay
	help    *components.HelpOverlay

	// lastActivity mirrors the session manager's inactivity clock so the
	// warning overlay can show a countdown.
	lastActivity time.Time
}

// New builds the root model. The session manager inside the client decides
// the starting screen: a restored session skips login.
func New(cl *client.Client, cfg *config.Config) *Model {
	theme := styles.NewTheme()
	dark := cfg.UI.Theme != "light"

	m := &Model{
		client:       cl,
		cfg:          cfg,
		theme:        theme,
		keys:         DefaultKeyMap(),
		screen:       screenLogin,
		page:         1,
		toasts:       components.NewToastManager(),
		timeout:      components.NewInactivityOverlay(),
		help:         components.NewHelpOverlay(theme, dark),
		lastActivity: time.Now(),
	}
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "cari..."
	m.loginForm = newLoginForm(theme)

	if cl.Session().Authenticated() {
		m.screen = screenMenu
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		components.ToastTickCmd(),
		components.InactivityTickCmd(),
		textinput.Blink,
	)
}

func newLoginForm(theme *styles.Theme) *components.Form {
	return components.NewForm(theme, "DenimHouse Admin", []components.FieldSpec{
		{Key: "email", Label: "Email", Placeholder: "admin@denimhouse.id"},
		{Key: "password", Label: "Kata Sandi", Secret: true},
		{Key: "otp", Label: "Kode OTP (opsional)", CharLimit: 6},
	})
}

// listOptions assembles the query for the active list screen.
func (m *Model) listOptions() client.ListOptions {
	return client.ListOptions{
		Page:    m.page,
		PerPage: m.cfg.UI.PageSize,
		Search:  m.search,
	}
}

// selectedID returns the record ID under the table cursor, or 0.
func (m *Model) selectedID() int64 {
	if m.table == nil {
		return 0
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.listIDs) {
		return 0
	}
	return m.listIDs[idx]
}

// selectedRecord returns the record under the table cursor, or nil.
func (m *Model) selectedRecord() any {
	if m.table == nil {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return nil
	}
	return m.records[idx]
}

// columnsFor returns the table layout for a resource.
func columnsFor(res resource) []components.Column {
	switch res {
	case resProducts:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "SKU", Width: 12},
			{Title: "Nama", Width: 30},
			{Title: "Harga", Width: 14},
			{Title: "Stok", Width: 6},
			{Title: "Status", Width: 8},
		}
	case resCategories:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Nama", Width: 28},
			{Title: "Slug", Width: 28},
		}
	case resOrders:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Nomor", Width: 16},
			{Title: "Status", Width: 11},
			{Title: "Total", Width: 14},
			{Title: "Dibuat", Width: 17},
		}
	case resPayments:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Pesanan", Width: 8},
			{Title: "Metode", Width: 10},
			{Title: "Jumlah", Width: 14},
			{Title: "Status", Width: 10},
		}
	case resShipments:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Pesanan", Width: 8},
			{Title: "Kurir", Width: 10},
			{Title: "Resi", Width: 18},
			{Title: "Status", Width: 11},
		}
	case resUsers:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Nama", Width: 24},
			{Title: "Email", Width: 28},
			{Title: "Status", Width: 9},
		}
	case resReviews:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Produk", Width: 7},
			{Title: "Nilai", Width: 5},
			{Title: "Status", Width: 10},
			{Title: "Komentar", Width: 34},
		}
	case resAdmins:
		return []components.Column{
			{Title: "ID", Width: 5},
			{Title: "Nama", Width: 24},
			{Title: "Email", Width: 28},
			{Title: "Peran", Width: 10},
		}
	}
	return nil
}

// openList switches to a resource list and kicks off its load.
func (m *Model) openList(res resource) tea.Cmd {
	m.screen = screenList
	m.resource = res
	m.page = 1
	m.search = ""
	m.searching = false
	m.inspecting = false
	m.table = components.NewTable(m.theme, columnsFor(res))
	m.listIDs = nil
	m.records = nil
	m.loading = true
	m.stale = false
	return m.loadList(res, m.listOptions())
}

// reload refreshes the active list in place.
func (m *Model) reload() tea.Cmd {
	if m.screen != screenList {
		return nil
	}
	m.loading = true
	return m.loadList(m.resource, m.listOptions())
}
