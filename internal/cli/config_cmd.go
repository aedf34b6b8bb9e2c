// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - configuration show/set/path commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/config"
)

// =============================================================================
// CONFIG
// =============================================================================

// HandleConfig dispatches the config subcommands.
func HandleConfig(deps Deps, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(deps)
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "set":
		return handleConfigSet(deps, args)
	default:
		return &UsageError{Message: "unknown config subcommand: " + args.Subcommand + " (expected: show, set, path)"}
	}
}

func handleConfigShow(deps Deps) error {
	cfg := deps.Config
	fmt.Println("Konfigurasi DenimHouse Admin")
	fmt.Printf("  api.base_url               : %s\n", cfg.API.BaseURL)
	fmt.Printf("  api.timeout_secs           : %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("  api.requests_per_second    : %g\n", cfg.API.RequestsPerSecond)
	fmt.Printf("  session.inactivity_minutes : %d\n", cfg.Session.InactivityMinutes)
	fmt.Printf("  session.store              : %s\n", cfg.Session.Store)
	fmt.Printf("  cache.enabled              : %t\n", cfg.Cache.Enabled)
	fmt.Printf("  export.format              : %s\n", cfg.Export.Format)
	fmt.Printf("  export.dir                 : %s\n", cfg.Export.Dir)
	fmt.Printf("  ui.theme                   : %s\n", cfg.UI.Theme)
	fmt.Printf("  ui.page_size               : %d\n", cfg.UI.PageSize)
	return nil
}

// handleConfigSet updates one key, validates the result, and saves. An
// invalid value never reaches the config file.
func handleConfigSet(deps Deps, args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key/value", "denimhouse-admin config set ui.theme light")
	}

	cfg := deps.Config
	key, value := args.ConfigKey, args.ConfigVal

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &UsageError{Message: "api.timeout_secs must be a number"}
		}
		cfg.API.TimeoutSecs = n
	case "session.inactivity_minutes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &UsageError{Message: "session.inactivity_minutes must be a number"}
		}
		cfg.Session.InactivityMinutes = n
	case "session.store":
		cfg.Session.Store = value
	case "export.format":
		cfg.Export.Format = value
	case "export.dir":
		cfg.Export.Dir = value
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.page_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &UsageError{Message: "ui.page_size must be a number"}
		}
		cfg.UI.PageSize = n
	default:
		return &UsageError{Message: "unknown config key: " + key}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("%s = %s\n", key, value)
	}
	return nil
}
