// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API. Every authenticated call goes through session.Manager.AuthFetch, so
// missing-token and expired-session handling is centralized there; this
// package only knows each endpoint's path, payload, and response envelope.
//
// Envelope shapes vary by endpoint (bare arrays, Laravel paginators, keyed
// wrappers), so each request function unwraps its own response instead of
// assuming a uniform schema.
package client
