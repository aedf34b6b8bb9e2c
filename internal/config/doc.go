// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the DenimHouse admin console.
//
// Configuration lives in TOML with sensible defaults, environment variable
// overrides, and validation. File location precedence:
//   - path given on the command line (--config)
//   - ~/.denimhouse/config.toml
//   - built-in defaults
//
// A Watcher can observe the config file and deliver reloaded, validated
// snapshots while the console runs.
package config
