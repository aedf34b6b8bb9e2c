// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the denimhouse-admin command line interface.
//
// The default invocation starts the Bubble Tea console; everything else is a
// one-shot command (login, logout, status, mfa, report, config, cache) that
// shares the same wired session manager and API client as the console.
//
// Error handling follows one rule: handlers return errors, main displays
// them and exits with the code from GetExitCode. API error kinds map to
// distinct exit codes so scripts can tell an expired session (4) from an
// unreachable server (5).
package cli
