// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
//
// Manager is the single source of truth for the token/user pair and the only
// permitted gateway for authenticated network calls (AuthFetch). It tracks
// user activity, forces logout on inactivity or server-signaled expiry, and
// mirrors its state into a Store so a session survives a process restart.
//
// Collaborators (persistence, toasts, navigation) are injected as interfaces;
// the package has no ambient globals.
package session
