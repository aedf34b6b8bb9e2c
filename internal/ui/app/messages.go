// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// RESOURCES
// =============================================================================

// resource identifies one of the console's managed collections.
type resource int

const (
	resProducts resource = iota
	resCategories
	resOrders
	resPayments
	resShipments
	resUsers
	resReviews
	resAdmins
)

// label returns the Indonesian screen title for a resource.
func (r resource) label() string {
	switch r {
	case resProducts:
		return "Produk"
	case resCategories:
		return "Kategori"
	case resOrders:
		return "Pesanan"
	case resPayments:
		return "Pembayaran"
	case resShipments:
		return "Pengiriman"
	case resUsers:
		return "Pelanggan"
	case resReviews:
		return "Ulasan"
	case resAdmins:
		return "Admin"
	}
	return "?"
}

// =============================================================================
// MESSAGES
// =============================================================================

// listLoadedMsg delivers one loaded list page. ids and records run parallel
// to rows so selection maps back to the underlying record.
type listLoadedMsg struct {
	resource resource
	rows     [][]string
	page     model.Page
	ids      []int64
	records  []any

	// stale is set when the rows came from the local snapshot cache after
	// a network failure.
	stale bool
}

// orderLoadedMsg delivers a full order for the detail screen.
type orderLoadedMsg struct {
	order *model.Order
}

// loginDoneMsg signals a successful login.
type loginDoneMsg struct {
	user *model.User
}

// actionDoneMsg signals a completed mutation; the list reloads afterwards.
type actionDoneMsg struct {
	message  string
	resource resource
}

// reportLoadedMsg delivers a sales report.
type reportLoadedMsg struct {
	report *model.SalesReport
}

// exportDoneMsg signals a finished report export.
type exportDoneMsg struct {
	path string
}

// errorMsg carries a failed command's error plus where it happened.
type errorMsg struct {
	err   error
	scope string
}
