// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api defines the error taxonomy and response normalization layer
// shared by every request function in the admin console.
//
// The package is deliberately free of network and session dependencies:
// Normalize is a pure function over an *http.Response, and Error is the one
// structured error type the rest of the application pattern-matches on.
package api
