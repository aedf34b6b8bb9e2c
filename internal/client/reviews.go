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
// REVIEWS
// =============================================================================

// ListReviews fetches reviews for moderation; filter with
// opts.Filters.Set("approved", "0") for the pending queue.
func (c *Client) ListReviews(ctx context.Context, opts ListOptions) ([]model.Review, error) {
	var envelope struct {
		Data []model.Review `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/reviews",
		Query:  opts.query(),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ApproveReview publishes a pending review on the storefront.
func (c *Client) ApproveReview(ctx context.Context, id int64) (*model.Review, error) {
	var envelope struct {
		Data model.Review `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/reviews/" + strconv.FormatInt(id, 10) + "/approve",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteReview removes a review permanently.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	_, err := c.fetch(ctx, session.Request{
		Method: http.MethodDelete,
		Path:   "/api/admin/reviews/" + strconv.FormatInt(id, 10),
	})
	return err
}
