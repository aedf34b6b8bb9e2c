// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// SHIPMENTS
// =============================================================================

// TrackingUpdate carries courier details for a shipment.
type TrackingUpdate struct {
	Courier    string `json:"courier"`
	TrackingNo string `json:"tracking_no"`
	Status     string `json:"status,omitempty"`
}

// ListShipments fetches shipments, filterable by status via opts.Filters.
func (c *Client) ListShipments(ctx context.Context, opts ListOptions) ([]model.Shipment, error) {
	var envelope struct {
		Data []model.Shipment `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/shipments",
		Query:  opts.query(),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateTracking records courier and tracking number on a shipment. Setting
// a tracking number on a preparing shipment moves it to in_transit and the
// order to shipped.
func (c *Client) UpdateTracking(ctx context.Context, id int64, update TrackingUpdate) (*model.Shipment, error) {
	var envelope struct {
		Data model.Shipment `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/shipments/" + strconv.FormatInt(id, 10) + "/tracking",
		Body:   update,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
