// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// ORDERS
// =============================================================================

// ListOrders fetches one page of orders, newest first. Unlike the product
// paginator, this endpoint nests the page fields under "meta".
func (c *Client) ListOrders(ctx context.Context, opts ListOptions) ([]model.Order, model.Page, error) {
	payload, err := c.fetch(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/orders",
		Query:  opts.query(),
	})
	if err != nil {
		return nil, model.Page{}, err
	}
	if payload == nil {
		return nil, model.Page{}, nil
	}

	var envelope struct {
		Data []model.Order `json:"data"`
		Meta model.Page    `json:"meta"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, model.Page{}, fmt.Errorf("failed to decode order list: %w", err)
	}
	c.snapshot("orders", payload)
	return envelope.Data, envelope.Meta, nil
}

// GetOrder fetches one order with its line items.
func (c *Client) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var envelope struct {
		Data model.Order `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/orders/" + strconv.FormatInt(id, 10),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateOrderStatus moves an order along the fulfillment pipeline. The
// backend enforces legal transitions and answers 422 for an illegal one.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	var envelope struct {
		Data model.Order `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/orders/" + strconv.FormatInt(id, 10) + "/status",
		Body:   map[string]string{"status": status},
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
