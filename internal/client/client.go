// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/cache"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// CLIENT
// =============================================================================

// Client issues typed requests against the admin API through an injected
// session manager. It never holds a token itself.
type Client struct {
	sess  *session.Manager
	snaps *cache.Snapshots // nil disables snapshotting
}

// New creates a Client. snaps may be nil when offline snapshots are disabled.
func New(sess *session.Manager, snaps *cache.Snapshots) *Client {
	return &Client{sess: sess, snaps: snaps}
}

// Session exposes the underlying manager for callers that need session state.
func (c *Client) Session() *session.Manager {
	return c.sess
}

// =============================================================================
// LIST OPTIONS
// =============================================================================

// ListOptions carries the common pagination and filter knobs for list
// endpoints. The zero value asks for the backend's defaults.
type ListOptions struct {
	Page    int
	PerPage int
	Search  string
	Filters url.Values
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	for key, values := range o.Filters {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// fetch runs one authenticated request and normalizes the response.
func (c *Client) fetch(ctx context.Context, req session.Request) (json.RawMessage, error) {
	resp, err := c.sess.AuthFetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return api.Normalize(resp)
}

// fetchInto runs one authenticated request and decodes the payload into out.
func (c *Client) fetchInto(ctx context.Context, req session.Request, out any) error {
	payload, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}
	if payload == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

// snapshot persists a successful list payload for offline review. Failures
// are logged, never surfaced; a stale snapshot beats a failed request.
func (c *Client) snapshot(resource string, payload json.RawMessage) {
	if c.snaps == nil || payload == nil {
		return
	}
	if err := c.snaps.Put(resource, payload); err != nil {
		log.Printf("failed to snapshot %s: %v", resource, err)
	}
}

// PurgeSnapshots drops every cached list payload. Runs when the session
// ends so one admin's data never leaks into the next session on a shared
// machine. Failures are logged, never surfaced.
func (c *Client) PurgeSnapshots() {
	if c.snaps == nil {
		return
	}
	if err := c.snaps.Purge(); err != nil {
		log.Printf("failed to purge snapshots: %v", err)
	}
}

// Snapshot returns the last cached list payload for a resource, if any.
func (c *Client) Snapshot(resource string) (cache.Snapshot, error) {
	if c.snaps == nil {
		return cache.Snapshot{}, cache.ErrNoSnapshot
	}
	snap, err := c.snaps.Get(resource)
	if err != nil {
		return cache.Snapshot{}, err
	}
	return *snap, nil
}
