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
// PAYMENTS
// =============================================================================

// ListPayments fetches payments, optionally filtered by status via
// opts.Filters (e.g. status=pending). Returns a "data"-wrapped array with no
// pagination; payment queues stay short.
func (c *Client) ListPayments(ctx context.Context, opts ListOptions) ([]model.Payment, error) {
	var envelope struct {
		Data []model.Payment `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/payments",
		Query:  opts.query(),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ConfirmPayment marks a pending payment as received. The backend advances
// the linked order to paid.
func (c *Client) ConfirmPayment(ctx context.Context, id int64) (*model.Payment, error) {
	return c.resolvePayment(ctx, id, "confirm", "")
}

// RejectPayment rejects a pending payment with a reason shown to the
// customer.
func (c *Client) RejectPayment(ctx context.Context, id int64, reason string) (*model.Payment, error) {
	return c.resolvePayment(ctx, id, "reject", reason)
}

func (c *Client) resolvePayment(ctx context.Context, id int64, action, reason string) (*model.Payment, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var envelope struct {
		Data model.Payment `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/payments/" + strconv.FormatInt(id, 10) + "/" + action,
		Body:   body,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
