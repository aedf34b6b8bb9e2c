// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cache_cmd.go - offline snapshot cache management.
package cli

import (
	"fmt"

	"github.com/jeranaias/denimhouse-admin/internal/cache"
)

// =============================================================================
// CACHE
// =============================================================================

// HandleCache dispatches the cache subcommands.
func HandleCache(deps Deps, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleCacheShow(deps)
	case "clear":
		return handleCacheClear(deps, args)
	default:
		return &UsageError{Message: "unknown cache subcommand: " + args.Subcommand + " (expected: show, clear)"}
	}
}

func handleCacheShow(deps Deps) error {
	if !deps.Config.Cache.Enabled {
		fmt.Println("Cache snapshot dinonaktifkan.")
		return nil
	}
	fmt.Printf("Cache snapshot: %s\n", deps.CachePath)

	snaps, err := cache.Open(deps.CachePath)
	if err != nil {
		return err
	}
	defer snaps.Close()

	for _, res := range []string{"products", "orders"} {
		snap, err := snaps.Get(res)
		if err != nil {
			fmt.Printf("  %-8s : kosong\n", res)
			continue
		}
		fmt.Printf("  %-8s : %d byte, usia %s\n", res, len(snap.Payload), snap.Age().Round(1e9))
	}
	return nil
}

func handleCacheClear(deps Deps, args Args) error {
	snaps, err := cache.Open(deps.CachePath)
	if err != nil {
		return err
	}
	defer snaps.Close()

	if err := snaps.Purge(); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println("Cache snapshot dikosongkan.")
	}
	return nil
}
