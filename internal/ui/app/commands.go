// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/client"
	"github.com/jeranaias/denimhouse-admin/internal/export"
	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// COMMANDS
// =============================================================================

// callCtx returns a context bounded by the session's request timeout, with a
// little slack so the HTTP client's own deadline fires first.
func (m *Model) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.client.Session().RequestTimeout()+5*time.Second)
}

// loadList fetches one page of the given resource.
func (m *Model) loadList(res resource, opts client.ListOptions) tea.Cmd {
	cl := m.client
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()

		switch res {
		case resProducts:
			products, page, err := cl.ListProducts(ctx, opts)
			if err != nil {
				if msg, ok := snapshotProducts(cl); ok && api.IsNetworkFailure(err) {
					return msg
				}
				return errorMsg{err: err, scope: "produk"}
			}
			return productsMsg(products, page, false)

		case resCategories:
			categories, err := cl.ListCategories(ctx)
			if err != nil {
				return errorMsg{err: err, scope: "kategori"}
			}
			msg := listLoadedMsg{resource: resCategories}
			for _, c := range categories {
				msg.rows = append(msg.rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Slug})
				msg.ids = append(msg.ids, c.ID)
				msg.records = append(msg.records, c)
			}
			return msg

		case resOrders:
			orders, page, err := cl.ListOrders(ctx, opts)
			if err != nil {
				if msg, ok := snapshotOrders(cl); ok && api.IsNetworkFailure(err) {
					return msg
				}
				return errorMsg{err: err, scope: "pesanan"}
			}
			return ordersMsg(orders, page, false)

		case resPayments:
			payments, err := cl.ListPayments(ctx, opts)
			if err != nil {
				return errorMsg{err: err, scope: "pembayaran"}
			}
			msg := listLoadedMsg{resource: resPayments}
			for _, p := range payments {
				msg.rows = append(msg.rows, []string{
					strconv.FormatInt(p.ID, 10),
					strconv.FormatInt(p.OrderID, 10),
					p.Method,
					export.FormatRupiah(p.Amount),
					p.Status,
				})
				msg.ids = append(msg.ids, p.ID)
				msg.records = append(msg.records, p)
			}
			return msg

		case resShipments:
			shipments, err := cl.ListShipments(ctx, opts)
			if err != nil {
				return errorMsg{err: err, scope: "pengiriman"}
			}
			msg := listLoadedMsg{resource: resShipments}
			for _, s := range shipments {
				msg.rows = append(msg.rows, []string{
					strconv.FormatInt(s.ID, 10),
					strconv.FormatInt(s.OrderID, 10),
					s.Courier,
					s.TrackingNo,
					s.Status,
				})
				msg.ids = append(msg.ids, s.ID)
				msg.records = append(msg.records, s)
			}
			return msg

		case resUsers:
			users, page, err := cl.ListSiteUsers(ctx, opts)
			if err != nil {
				return errorMsg{err: err, scope: "pelanggan"}
			}
			msg := listLoadedMsg{resource: resUsers, page: page}
			for _, u := range users {
				status := "nonaktif"
				if u.Active {
					status = "aktif"
				}
				msg.rows = append(msg.rows, []string{
					strconv.FormatInt(u.ID, 10), u.Name, u.Email, status,
				})
				msg.ids = append(msg.ids, u.ID)
				msg.records = append(msg.records, u)
			}
			return msg

		case resReviews:
			reviews, err := cl.ListReviews(ctx, opts)
			if err != nil {
				return errorMsg{err: err, scope: "ulasan"}
			}
			msg := listLoadedMsg{resource: resReviews}
			for _, r := range reviews {
				status := "menunggu"
				if r.Approved {
					status = "disetujui"
				}
				msg.rows = append(msg.rows, []string{
					strconv.FormatInt(r.ID, 10),
					strconv.FormatInt(r.ProductID, 10),
					strconv.Itoa(r.Rating) + "/5",
					status,
					r.Comment,
				})
				msg.ids = append(msg.ids, r.ID)
				msg.records = append(msg.records, r)
			}
			return msg

		case resAdmins:
			admins, err := cl.ListAdmins(ctx)
			if err != nil {
				return errorMsg{err: err, scope: "admin"}
			}
			msg := listLoadedMsg{resource: resAdmins}
			for _, a := range admins {
				msg.rows = append(msg.rows, []string{
					strconv.FormatInt(a.ID, 10), a.Name, a.Email, a.Role,
				})
				msg.ids = append(msg.ids, a.ID)
				msg.records = append(msg.records, a)
			}
			return msg
		}
		return nil
	}
}

func productsMsg(products []model.Product, page model.Page, stale bool) listLoadedMsg {
	msg := listLoadedMsg{resource: resProducts, page: page, stale: stale}
	for _, p := range products {
		status := "draf"
		if p.Published {
			status = "tayang"
		}
		msg.rows = append(msg.rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.SKU,
			p.Name,
			export.FormatRupiah(p.Price),
			strconv.Itoa(p.Stock),
			status,
		})
		msg.ids = append(msg.ids, p.ID)
		msg.records = append(msg.records, p)
	}
	return msg
}

func ordersMsg(orders []model.Order, page model.Page, stale bool) listLoadedMsg {
	msg := listLoadedMsg{resource: resOrders, page: page, stale: stale}
	for _, o := range orders {
		msg.rows = append(msg.rows, []string{
			strconv.FormatInt(o.ID, 10),
			o.Number,
			o.Status,
			export.FormatRupiah(o.Total),
			o.CreatedAt.Format("2006-01-02 15:04"),
		})
		msg.ids = append(msg.ids, o.ID)
		msg.records = append(msg.records, o)
	}
	return msg
}

// snapshotProducts serves the last cached product page after a network
// failure. Only the first page is cached, which is where the admin lands.
func snapshotProducts(cl *client.Client) (listLoadedMsg, bool) {
	snap, err := cl.Snapshot("products")
	if err != nil {
		return listLoadedMsg{}, false
	}
	var envelope struct {
		Data []model.Product `json:"data"`
		model.Page
	}
	if err := json.Unmarshal(snap.Payload, &envelope); err != nil {
		return listLoadedMsg{}, false
	}
	return productsMsg(envelope.Data, envelope.Page, true), true
}

func snapshotOrders(cl *client.Client) (listLoadedMsg, bool) {
	snap, err := cl.Snapshot("orders")
	if err != nil {
		return listLoadedMsg{}, false
	}
	var envelope struct {
		Data []model.Order `json:"data"`
		Meta model.Page    `json:"meta"`
	}
	if err := json.Unmarshal(snap.Payload, &envelope); err != nil {
		return listLoadedMsg{}, false
	}
	return ordersMsg(envelope.Data, envelope.Meta, true), true
}

// loadOrder fetches one order with its line items.
func (m *Model) loadOrder(id int64) tea.Cmd {
	cl := m.client
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		order, err := cl.GetOrder(ctx, id)
		if err != nil {
			return errorMsg{err: err, scope: "pesanan"}
		}
		return orderLoadedMsg{order: order}
	}
}

// login authenticates and installs the session.
func (m *Model) login(creds client.Credentials) tea.Cmd {
	cl := m.client
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		user, err := cl.Login(ctx, creds)
		if err != nil {
			return errorMsg{err: err, scope: "login"}
		}
		return loginDoneMsg{user: user}
	}
}

// mutate runs one mutation and reports its outcome; the active list reloads
// on success.
func (m *Model) mutate(res resource, successMessage string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		if err := fn(ctx); err != nil {
			return errorMsg{err: err, scope: res.label()}
		}
		return actionDoneMsg{message: successMessage, resource: res}
	}
}

// loadReport fetches the sales report for a date range.
func (m *Model) loadReport(from, to time.Time) tea.Cmd {
	cl := m.client
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		report, err := cl.SalesReport(ctx, from, to)
		if err != nil {
			return errorMsg{err: err, scope: "laporan"}
		}
		return reportLoadedMsg{report: report}
	}
}

// exportReport writes the current report to disk in the configured format.
func (m *Model) exportReport(report *model.SalesReport, format, dir string) tea.Cmd {
	return func() tea.Msg {
		exporter, err := export.ForFormat(format)
		if err != nil {
			return errorMsg{err: err, scope: "ekspor"}
		}
		path, err := export.ExportToFile(report, exporter, &export.Options{OutputDir: dir})
		if err != nil {
			return errorMsg{err: err, scope: "ekspor"}
		}
		return exportDoneMsg{path: path}
	}
}
