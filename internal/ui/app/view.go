// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/denimhouse-admin/internal/export"
	"github.com/jeranaias/denimhouse-admin/internal/ui/components"
	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "memuat..."
	}

	// Overlays replace the screen entirely.
	if m.timeout.IsVisible() {
		return m.timeout.View()
	}
	if m.help.Visible() {
		return m.help.View(m.width, m.height)
	}
	if m.inspecting {
		body := components.ClampLines(m.inspectBody, m.height-6)
		box := m.theme.DetailBox.Render(body + "\n\n" + m.theme.ShortcutDesc.Render("tekan tombol apa saja untuk menutup"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenMenu:
		body = m.viewMenu()
	case screenList:
		body = m.viewList()
	case screenForm:
		body = m.viewForm()
	case screenDetail:
		body = m.viewDetail()
	case screenReport:
		body = m.viewReport()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
	)

	page := lipgloss.Place(m.width, m.height-1, lipgloss.Left, lipgloss.Top, content)
	out := page + "\n" + m.viewStatusBar()

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.Toasts(), m.width, m.height)
		if stack != "" {
			out = out + "\n" + stack
		}
	}
	return out
}

func (m *Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("DenimHouse Admin")
	subtitle := m.theme.HeaderSubtitle.Render(m.screenTitle())
	return m.theme.Header.Width(m.width).Render(title + "  " + subtitle)
}

func (m *Model) screenTitle() string {
	switch m.screen {
	case screenLogin:
		return "Masuk"
	case screenMenu:
		return "Menu Utama"
	case screenList:
		if m.stale {
			return m.resource.label() + " (data tersimpan)"
		}
		return m.resource.label()
	case screenForm:
		if m.form != nil {
			return m.form.Title
		}
		return "Formulir"
	case screenDetail:
		if m.order != nil {
			return "Pesanan " + m.order.Number
		}
		return "Pesanan"
	case screenReport:
		return "Laporan Penjualan"
	}
	return ""
}

func (m *Model) viewLogin() string {
	box := m.theme.LoginBox.Render(m.loginForm.View() + "\n" + m.theme.ShortcutDesc.Render("enter: masuk"))
	return lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, entry := range menuEntries() {
		if i == m.menuCursor {
			b.WriteString(m.theme.MenuItemSelected.Render("> " + entry.title))
		} else {
			b.WriteString(m.theme.MenuItem.Render("  " + entry.title))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MenuHint.Render("  enter: buka   ?: bantuan   ctrl+l: logout   q: keluar"))
	return b.String()
}

func (m *Model) viewList() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.searching {
		b.WriteString("  cari: " + m.searchInput.View())
		b.WriteString("\n\n")
	} else if m.search != "" {
		b.WriteString(m.theme.MenuHint.Render("  pencarian: " + m.search + "  (/ untuk mengubah)"))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.theme.MenuHint.Render("  memuat..."))
		b.WriteString("\n\n")
	}

	if m.table != nil {
		b.WriteString(m.table.View())
	}

	if m.confirmPrompt != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderWarning(m.confirmPrompt))
	}
	return b.String()
}

func (m *Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	box := m.theme.DetailBox.Render(
		m.form.View() + "\n" + m.theme.ShortcutDesc.Render("enter: simpan   esc: batal"),
	)
	return lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewDetail() string {
	if m.order == nil {
		return ""
	}
	o := m.order

	var b strings.Builder
	b.WriteString("Nomor     : " + o.Number + "\n")
	b.WriteString("Status    : ")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.OrderStatusColor(o.Status)).Render(o.Status))
	b.WriteString("\n")
	b.WriteString("Pelanggan : #" + strconv.FormatInt(o.UserID, 10) + "\n")
	b.WriteString("Dibuat    : " + o.CreatedAt.Format("2006-01-02 15:04") + "\n")
	b.WriteString("Total     : " + export.FormatRupiah(o.Total) + "\n")

	if len(o.Items) > 0 {
		b.WriteString("\nItem:\n")
		for _, item := range o.Items {
			line := "  " + item.Name
			if item.Size != "" {
				line += " (" + item.Size + ")"
			}
			line += "  x" + strconv.Itoa(item.Quantity) + "  " + export.FormatRupiah(item.Price)
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("s: ubah status   i: inspeksi   esc: kembali"))
	return m.theme.DetailBox.Render(b.String())
}

func (m *Model) viewReport() string {
	if m.report == nil {
		return ""
	}
	r := m.report

	var b strings.Builder
	b.WriteString("\n  Periode " + r.From + " s.d. " + r.To + "\n\n")

	header := padCell("Tanggal", 12) + padCell("Pesanan", 9) + padCell("Terjual", 9) + "Pendapatan"
	b.WriteString(m.theme.TableHeader.Render("  " + header))
	b.WriteString("\n")
	for _, row := range r.Rows {
		line := padCell(row.Date, 12) +
			padCell(strconv.Itoa(row.OrderCount), 9) +
			padCell(strconv.Itoa(row.ItemsSold), 9) +
			export.FormatRupiah(row.Revenue)
		b.WriteString(m.theme.TableRow.Render("  " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  Total pesanan   : " + strconv.Itoa(r.TotalOrders) + "\n")
	b.WriteString("  Total pendapatan: " + export.FormatRupiah(r.TotalRevenue) + "\n\n")
	b.WriteString(m.theme.ShortcutDesc.Render("  x: ekspor (" + m.cfg.Export.Format + ")   esc: kembali"))
	return b.String()
}

func (m *Model) viewStatusBar() string {
	data := components.StatusBarData{
		Screen: m.screenTitle(),
		Width:  m.width,
	}
	if user := m.client.Session().User(); user != nil {
		data.UserName = user.Name
		data.UserRole = user.Role
		data.SessionOK = true
	}
	switch m.screen {
	case screenList:
		data.Shortcuts = []components.Shortcut{
			{Key: "enter", Desc: "buka"},
			{Key: "/", Desc: "cari"},
			{Key: "r", Desc: "muat ulang"},
			{Key: "?", Desc: "bantuan"},
		}
	case screenMenu:
		data.Shortcuts = []components.Shortcut{
			{Key: "enter", Desc: "buka"},
			{Key: "?", Desc: "bantuan"},
			{Key: "q", Desc: "keluar"},
		}
	}
	return components.RenderStatusBar(m.theme, data)
}

func padCell(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
