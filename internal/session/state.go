// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

// State is the session lifecycle state.
//
// Logout side effects run on the single transition into StateLoggingOut; the
// machine returns to StateUnauthenticated after a short delay so a fresh
// login/logout cycle is never permanently blocked.
type State int

const (
	// StateUnauthenticated means no token is held; AuthFetch rejects
	// without a network call and the login screen is the only destination.
	StateUnauthenticated State = iota

	// StateAuthenticated means a token is held and the inactivity timer is
	// armed.
	StateAuthenticated

	// StateLoggingOut is the transient guard state: logout side effects
	// have run (or are running) and duplicate triggers are absorbed.
	StateLoggingOut
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "UNAUTHENTICATED"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateLoggingOut:
		return "LOGGING_OUT"
	default:
		return "UNKNOWN"
	}
}
