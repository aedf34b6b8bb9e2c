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
// SITE USERS
// =============================================================================

// ListSiteUsers fetches one page of storefront customer accounts. Same
// Laravel paginator shape as the product list.
func (c *Client) ListSiteUsers(ctx context.Context, opts ListOptions) ([]model.SiteUser, model.Page, error) {
	payload, err := c.fetch(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/users",
		Query:  opts.query(),
	})
	if err != nil {
		return nil, model.Page{}, err
	}
	if payload == nil {
		return nil, model.Page{}, nil
	}

	var envelope struct {
		Data []model.SiteUser `json:"data"`
		model.Page
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, model.Page{}, fmt.Errorf("failed to decode user list: %w", err)
	}
	return envelope.Data, envelope.Page, nil
}

// SetSiteUserActive enables or disables a customer account. Disabled
// accounts cannot sign in to the storefront.
func (c *Client) SetSiteUserActive(ctx context.Context, id int64, active bool) (*model.SiteUser, error) {
	var envelope struct {
		Data model.SiteUser `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/users/" + strconv.FormatInt(id, 10) + "/active",
		Body:   map[string]bool{"active": active},
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
