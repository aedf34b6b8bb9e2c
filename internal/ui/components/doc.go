// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console: toast notifications, data tables, validated forms, the
// inactivity warning overlay, a JSON inspector, and the status bar.
package components
