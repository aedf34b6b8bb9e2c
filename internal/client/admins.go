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
// ADMIN ACCOUNTS (superadmin only)
// =============================================================================

// AdminInput is the payload for creating an admin account.
type AdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // "admin" or "superadmin"
}

// ListAdmins fetches all console accounts. Non-superadmins get 403, which
// surfaces as a server-error kind with the backend's message.
func (c *Client) ListAdmins(ctx context.Context) ([]model.User, error) {
	var envelope struct {
		Data []model.User `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/admins",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateAdmin creates a console account.
func (c *Client) CreateAdmin(ctx context.Context, input AdminInput) (*model.User, error) {
	var envelope struct {
		Data model.User `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/admins",
		Body:   input,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteAdmin removes a console account. The backend refuses to delete the
// caller's own account.
func (c *Client) DeleteAdmin(ctx context.Context, id int64) error {
	_, err := c.fetch(ctx, session.Request{
		Method: http.MethodDelete,
		Path:   "/api/admin/admins/" + strconv.FormatInt(id, 10),
	})
	return err
}
