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
// CATEGORIES
// =============================================================================

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// ListCategories fetches all categories. This endpoint is not paginated and
// returns a bare JSON array.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/categories",
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category. The endpoint echoes the bare record.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error) {
	var category model.Category
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/categories",
		Body:   input,
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*model.Category, error) {
	var category model.Category
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/categories/" + strconv.FormatInt(id, 10),
		Body:   input,
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category. Products keep their category_id; the
// backend rejects deletion while products still reference it.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.fetch(ctx, session.Request{
		Method: http.MethodDelete,
		Path:   "/api/admin/categories/" + strconv.FormatInt(id, 10),
	})
	return err
}
