// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/client"
	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/ui/components"
)

// =============================================================================
// LOGIN SCREEN
// =============================================================================

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.loginForm.Next()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.loginForm.Prev()
		return m, nil
	case tea.KeyEnter:
		if !m.loginForm.AtLast() {
			m.loginForm.Next()
			return m, nil
		}
		email := m.loginForm.Value("email")
		password := m.loginForm.Value("password")
		if email == "" || password == "" {
			m.toasts.AddError("Email dan kata sandi wajib diisi.")
			return m, nil
		}
		m.loginForm.ClearErrors()
		return m, m.login(client.Credentials{
			Email:    email,
			Password: password,
			OTP:      m.loginForm.Value("otp"),
		})
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, m.loginForm.Update(msg)
}

// =============================================================================
// LIST SCREEN
// =============================================================================

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown()
	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			return m, m.reload()
		}
	case key.Matches(msg, m.keys.NextPage):
		if page := m.table.Page(); page.Last == 0 || m.page < page.Last {
			m.page++
			return m, m.reload()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Select):
		if m.resource == resOrders {
			if id := m.selectedID(); id != 0 {
				return m, m.loadOrder(id)
			}
		}
	case key.Matches(msg, m.keys.Inspect):
		if record := m.selectedRecord(); record != nil {
			m.inspecting = true
			m.inspectBody = components.RenderJSONValue(record, m.cfg.UI.Theme != "light")
		}

	case key.Matches(msg, m.keys.New):
		return m, m.openCreateForm()
	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditForm()
	case key.Matches(msg, m.keys.Delete):
		return m, m.requestDelete()
	case msg.String() == "c":
		return m, m.confirmPaymentAction()
	case msg.String() == "t":
		return m, m.toggleUserActive()
	case msg.String() == "a":
		return m, m.approveReviewAction()

	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Logout):
		m.client.Session().Logout("", "")
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// =============================================================================
// FORM SCREEN
// =============================================================================

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.form.Next()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.Prev()
		return m, nil
	case tea.KeyEsc:
		m.screen = m.formBack
		m.form = nil
		m.formSubmit = nil
		return m, nil
	case tea.KeyEnter:
		if !m.form.AtLast() {
			m.form.Next()
			return m, nil
		}
		m.form.ClearErrors()
		return m, m.formSubmit(m.form)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, m.form.Update(msg)
}

// openForm installs a form and remembers where esc returns to.
func (m *Model) openForm(form *components.Form, submit func(*components.Form) tea.Cmd) tea.Cmd {
	m.form = form
	m.formSubmit = submit
	m.formBack = m.screen
	m.screen = screenForm
	return nil
}

// =============================================================================
// CREATE / EDIT FORMS PER RESOURCE
// =============================================================================

func productSpecs(p *model.Product) []components.FieldSpec {
	specs := []components.FieldSpec{
		{Key: "name", Label: "Nama"},
		{Key: "sku", Label: "SKU"},
		{Key: "category_id", Label: "ID Kategori"},
		{Key: "price", Label: "Harga (Rp)"},
		{Key: "stock", Label: "Stok"},
		{Key: "sizes", Label: "Ukuran (pisahkan koma)"},
		{Key: "description", Label: "Deskripsi"},
		{Key: "published", Label: "Tayang (y/n)", Value: "n"},
	}
	if p != nil {
		specs[0].Value = p.Name
		specs[1].Value = p.SKU
		specs[2].Value = strconv.FormatInt(p.CategoryID, 10)
		specs[3].Value = strconv.FormatInt(p.Price, 10)
		specs[4].Value = strconv.Itoa(p.Stock)
		specs[5].Value = strings.Join(p.Sizes, ",")
		specs[6].Value = p.Description
		if p.Published {
			specs[7].Value = "y"
		}
	}
	return specs
}

func productInputFromForm(f *components.Form) client.ProductInput {
	categoryID, _ := strconv.ParseInt(f.Value("category_id"), 10, 64)
	price, _ := strconv.ParseInt(f.Value("price"), 10, 64)
	stock, _ := strconv.Atoi(f.Value("stock"))
	var sizes []string
	for _, s := range strings.Split(f.Value("sizes"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sizes = append(sizes, s)
		}
	}
	return client.ProductInput{
		Name:        f.Value("name"),
		SKU:         f.Value("sku"),
		CategoryID:  categoryID,
		Price:       price,
		Stock:       stock,
		Sizes:       sizes,
		Description: f.Value("description"),
		Published:   strings.EqualFold(f.Value("published"), "y"),
	}
}

func (m *Model) openCreateForm() tea.Cmd {
	switch m.resource {
	case resProducts:
		return m.openForm(
			components.NewForm(m.theme, "Produk Baru", productSpecs(nil)),
			func(f *components.Form) tea.Cmd {
				input := productInputFromForm(f)
				return m.mutate(resProducts, "Produk dibuat.", func(ctx context.Context) error {
					_, err := m.client.CreateProduct(ctx, input)
					return err
				})
			},
		)
	case resCategories:
		return m.openForm(
			components.NewForm(m.theme, "Kategori Baru", []components.FieldSpec{
				{Key: "name", Label: "Nama"},
				{Key: "slug", Label: "Slug"},
			}),
			func(f *components.Form) tea.Cmd {
				input := client.CategoryInput{Name: f.Value("name"), Slug: f.Value("slug")}
				return m.mutate(resCategories, "Kategori dibuat.", func(ctx context.Context) error {
					_, err := m.client.CreateCategory(ctx, input)
					return err
				})
			},
		)
	case resAdmins:
		return m.openForm(
			components.NewForm(m.theme, "Admin Baru", []components.FieldSpec{
				{Key: "name", Label: "Nama"},
				{Key: "email", Label: "Email"},
				{Key: "password", Label: "Kata Sandi", Secret: true},
				{Key: "role", Label: "Peran (admin/superadmin)", Value: "admin"},
			}),
			func(f *components.Form) tea.Cmd {
				input := client.AdminInput{
					Name:     f.Value("name"),
					Email:    f.Value("email"),
					Password: f.Value("password"),
					Role:     f.Value("role"),
				}
				return m.mutate(resAdmins, "Admin dibuat.", func(ctx context.Context) error {
					_, err := m.client.CreateAdmin(ctx, input)
					return err
				})
			},
		)
	}
	return nil
}

func (m *Model) openEditForm() tea.Cmd {
	id := m.selectedID()
	if id == 0 {
		return nil
	}
	switch m.resource {
	case resProducts:
		product, ok := m.selectedRecord().(model.Product)
		if !ok {
			return nil
		}
		return m.openForm(
			components.NewForm(m.theme, "Ubah Produk", productSpecs(&product)),
			func(f *components.Form) tea.Cmd {
				input := productInputFromForm(f)
				return m.mutate(resProducts, "Produk diperbarui.", func(ctx context.Context) error {
					_, err := m.client.UpdateProduct(ctx, id, input)
					return err
				})
			},
		)
	case resCategories:
		category, ok := m.selectedRecord().(model.Category)
		if !ok {
			return nil
		}
		return m.openForm(
			components.NewForm(m.theme, "Ubah Kategori", []components.FieldSpec{
				{Key: "name", Label: "Nama", Value: category.Name},
				{Key: "slug", Label: "Slug", Value: category.Slug},
			}),
			func(f *components.Form) tea.Cmd {
				input := client.CategoryInput{Name: f.Value("name"), Slug: f.Value("slug")}
				return m.mutate(resCategories, "Kategori diperbarui.", func(ctx context.Context) error {
					_, err := m.client.UpdateCategory(ctx, id, input)
					return err
				})
			},
		)
	case resShipments:
		shipment, ok := m.selectedRecord().(model.Shipment)
		if !ok {
			return nil
		}
		return m.openForm(
			components.NewForm(m.theme, "Ubah Pengiriman", []components.FieldSpec{
				{Key: "courier", Label: "Kurir", Value: shipment.Courier},
				{Key: "tracking_no", Label: "Nomor Resi", Value: shipment.TrackingNo},
				{Key: "status", Label: "Status", Value: shipment.Status},
			}),
			func(f *components.Form) tea.Cmd {
				update := client.TrackingUpdate{
					Courier:    f.Value("courier"),
					TrackingNo: f.Value("tracking_no"),
					Status:     f.Value("status"),
				}
				return m.mutate(resShipments, "Pengiriman diperbarui.", func(ctx context.Context) error {
					_, err := m.client.UpdateTracking(ctx, id, update)
					return err
				})
			},
		)
	}
	return nil
}

// =============================================================================
// ROW ACTIONS
// =============================================================================

// requestDelete arms the y/n confirm prompt for the selected row. Payments
// reuse the delete key for rejection, which needs a reason instead.
func (m *Model) requestDelete() tea.Cmd {
	id := m.selectedID()
	if id == 0 {
		return nil
	}
	switch m.resource {
	case resProducts:
		m.confirmPrompt = "Hapus produk #" + strconv.FormatInt(id, 10) + "? (y/n)"
		m.confirmCmd = m.mutate(resProducts, "Produk dihapus.", func(ctx context.Context) error {
			return m.client.DeleteProduct(ctx, id)
		})
	case resCategories:
		m.confirmPrompt = "Hapus kategori #" + strconv.FormatInt(id, 10) + "? (y/n)"
		m.confirmCmd = m.mutate(resCategories, "Kategori dihapus.", func(ctx context.Context) error {
			return m.client.DeleteCategory(ctx, id)
		})
	case resReviews:
		m.confirmPrompt = "Hapus ulasan #" + strconv.FormatInt(id, 10) + "? (y/n)"
		m.confirmCmd = m.mutate(resReviews, "Ulasan dihapus.", func(ctx context.Context) error {
			return m.client.DeleteReview(ctx, id)
		})
	case resAdmins:
		m.confirmPrompt = "Hapus admin #" + strconv.FormatInt(id, 10) + "? (y/n)"
		m.confirmCmd = m.mutate(resAdmins, "Admin dihapus.", func(ctx context.Context) error {
			return m.client.DeleteAdmin(ctx, id)
		})
	case resPayments:
		return m.openForm(
			components.NewForm(m.theme, "Tolak Pembayaran", []components.FieldSpec{
				{Key: "reason", Label: "Alasan"},
			}),
			func(f *components.Form) tea.Cmd {
				reason := f.Value("reason")
				return m.mutate(resPayments, "Pembayaran ditolak.", func(ctx context.Context) error {
					_, err := m.client.RejectPayment(ctx, id, reason)
					return err
				})
			},
		)
	}
	return nil
}

func (m *Model) confirmPaymentAction() tea.Cmd {
	if m.resource != resPayments {
		return nil
	}
	id := m.selectedID()
	if id == 0 {
		return nil
	}
	return m.mutate(resPayments, "Pembayaran dikonfirmasi.", func(ctx context.Context) error {
		_, err := m.client.ConfirmPayment(ctx, id)
		return err
	})
}

func (m *Model) toggleUserActive() tea.Cmd {
	if m.resource != resUsers {
		return nil
	}
	user, ok := m.selectedRecord().(model.SiteUser)
	if !ok {
		return nil
	}
	message := "Pelanggan dinonaktifkan."
	if !user.Active {
		message = "Pelanggan diaktifkan."
	}
	return m.mutate(resUsers, message, func(ctx context.Context) error {
		_, err := m.client.SetSiteUserActive(ctx, user.ID, !user.Active)
		return err
	})
}

func (m *Model) approveReviewAction() tea.Cmd {
	if m.resource != resReviews {
		return nil
	}
	id := m.selectedID()
	if id == 0 {
		return nil
	}
	return m.mutate(resReviews, "Ulasan disetujui.", func(ctx context.Context) error {
		_, err := m.client.ApproveReview(ctx, id)
		return err
	})
}

// openOrderStatusForm changes an order's fulfillment status from the detail
// screen.
func (m *Model) openOrderStatusForm(order *model.Order) tea.Cmd {
	id := order.ID
	return m.openForm(
		components.NewForm(m.theme, "Ubah Status Pesanan "+order.Number, []components.FieldSpec{
			{
				Key:         "status",
				Label:       "Status (pending/paid/processed/shipped/completed/cancelled)",
				Value:       order.Status,
				Placeholder: model.OrderProcessed,
			},
		}),
		func(f *components.Form) tea.Cmd {
			status := f.Value("status")
			return m.mutate(resOrders, "Status pesanan diperbarui.", func(ctx context.Context) error {
				updated, err := m.client.UpdateOrderStatus(ctx, id, status)
				if err == nil && updated != nil {
					m.order = updated
				}
				return err
			})
		},
	)
}

// =============================================================================
// REPORT SCREEN
// =============================================================================

func (m *Model) openReportForm() tea.Cmd {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return m.openForm(
		components.NewForm(m.theme, "Laporan Penjualan", []components.FieldSpec{
			{Key: "from", Label: "Dari (YYYY-MM-DD)", Value: monthStart.Format("2006-01-02")},
			{Key: "to", Label: "Sampai (YYYY-MM-DD)", Value: now.Format("2006-01-02")},
		}),
		func(f *components.Form) tea.Cmd {
			from, err := time.Parse("2006-01-02", f.Value("from"))
			if err != nil {
				m.toasts.AddError("Tanggal awal tidak valid.")
				return nil
			}
			to, err := time.Parse("2006-01-02", f.Value("to"))
			if err != nil {
				m.toasts.AddError("Tanggal akhir tidak valid.")
				return nil
			}
			if to.Before(from) {
				m.toasts.AddError("Rentang tanggal terbalik.")
				return nil
			}
			return m.loadReport(from, to)
		},
	)
}

func (m *Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.report = nil
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, m.keys.Export):
		if m.report != nil {
			return m, m.exportReport(m.report, m.cfg.Export.Format, m.cfg.Export.Dir)
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
