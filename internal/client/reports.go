// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// REPORTS
// =============================================================================

// reportDateFormat is the wire format for report range bounds.
const reportDateFormat = "2006-01-02"

// SalesReport fetches the aggregated sales report for [from, to] inclusive.
// The report endpoint wraps its payload in "report" rather than "data".
func (c *Client) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	query := url.Values{}
	query.Set("from", from.Format(reportDateFormat))
	query.Set("to", to.Format(reportDateFormat))

	var envelope struct {
		Report model.SalesReport `json:"report"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/reports/sales",
		Query:  query,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Report, nil
}
