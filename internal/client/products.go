// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// PRODUCTS
// =============================================================================

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	CategoryID  int64    `json:"category_id"`
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes,omitempty"`
	Published   bool     `json:"published"`
}

// ProductImage is one image file attached to a multipart product create.
type ProductImage struct {
	Filename string
	Reader   io.Reader
}

// ListProducts fetches one page of products. The endpoint returns a Laravel
// paginator: items under "data" with the page fields at the top level.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]model.Product, model.Page, error) {
	payload, err := c.fetch(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/products",
		Query:  opts.query(),
	})
	if err != nil {
		return nil, model.Page{}, err
	}
	if payload == nil {
		// Normalize reports ok-but-empty bodies as a nil payload.
		return nil, model.Page{}, nil
	}

	var envelope struct {
		Data []model.Product `json:"data"`
		model.Page
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, model.Page{}, fmt.Errorf("failed to decode product list: %w", err)
	}
	c.snapshot("products", payload)
	return envelope.Data, envelope.Page, nil
}

// GetProduct fetches one product by id. The detail endpoint wraps the record
// in "data".
func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var envelope struct {
		Data model.Product `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/products/" + strconv.FormatInt(id, 10),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateProduct creates a product without images.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	var envelope struct {
		Data model.Product `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/products",
		Body:   input,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateProductWithImages creates a product as multipart form data so image
// files ride along. The multipart body passes through AuthFetch untouched;
// only the Content-Type header here carries the boundary.
func (c *Client) CreateProductWithImages(ctx context.Context, input ProductInput, images []ProductImage) (*model.Product, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product fields: %w", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(fields, &flat); err != nil {
		return nil, fmt.Errorf("failed to flatten product fields: %w", err)
	}
	for key, value := range flat {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				if err := writer.WriteField(key+"[]", fmt.Sprint(item)); err != nil {
					return nil, fmt.Errorf("failed to write field %s: %w", key, err)
				}
			}
		default:
			if err := writer.WriteField(key, fmt.Sprint(v)); err != nil {
				return nil, fmt.Errorf("failed to write field %s: %w", key, err)
			}
		}
	}

	for _, image := range images {
		part, err := writer.CreateFormFile("images[]", image.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy image %s: %w", image.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", writer.FormDataContentType())

	var envelope struct {
		Data model.Product `json:"data"`
	}
	err = c.fetchInto(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/products",
		Body:   &buf,
		Header: header,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*model.Product, error) {
	var envelope struct {
		Data model.Product `json:"data"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/products/" + strconv.FormatInt(id, 10),
		Body:   input,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.fetch(ctx, session.Request{
		Method: http.MethodDelete,
		Path:   "/api/admin/products/" + strconv.FormatInt(id, 10),
	})
	return err
}
