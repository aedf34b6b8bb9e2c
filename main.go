// DenimHouse Admin - terminal console for the DenimHouse denim store.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/cache"
	"github.com/jeranaias/denimhouse-admin/internal/cli"
	"github.com/jeranaias/denimhouse-admin/internal/client"
	"github.com/jeranaias/denimhouse-admin/internal/config"
	"github.com/jeranaias/denimhouse-admin/internal/session"
	"github.com/jeranaias/denimhouse-admin/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion()
		return
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}

	if cmd == cli.CmdTUI {
		runTUI(cfg, args)
		return
	}
	runCommand(cmd, cfg, args)
}

func loadConfig(args cli.Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		return config.LoadFromPath(args.ConfigPath)
	}
	return config.Load()
}

// =============================================================================
// WIRING
// =============================================================================

func sessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		BaseURL:           cfg.API.BaseURL,
		InactivityWindow:  cfg.InactivityWindow(),
		GuardReset:        cfg.GuardReset(),
		RequestTimeout:    cfg.RequestTimeout(),
		LogoutRetries:     cfg.API.LogoutRetries,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	}
}

func openStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.Store == "memory" {
		return session.NewMemoryStore(), nil
	}
	dir, err := cfg.SessionDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return session.NewFileStore(dir), nil
}

func openSnapshots(cfg *config.Config) (*cache.Snapshots, string) {
	if !cfg.Cache.Enabled {
		return nil, ""
	}
	path, err := cfg.CachePath()
	if err != nil {
		log.Printf("snapshot cache disabled: %v", err)
		return nil, ""
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.Printf("snapshot cache disabled: %v", err)
		return nil, path
	}
	snaps, err := cache.Open(path)
	if err != nil {
		log.Printf("snapshot cache disabled: %v", err)
		return nil, path
	}
	return snaps, path
}

// =============================================================================
// CLI MODE
// =============================================================================

// consoleNotifier prints session notifications to stderr for one-shot
// commands, where no TUI exists to show a toast.
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Fprintln(os.Stderr, message) }
func (consoleNotifier) Info(message string)    { fmt.Fprintln(os.Stderr, message) }
func (consoleNotifier) Error(message string)   { fmt.Fprintln(os.Stderr, message) }

// consoleNavigator is inert: a one-shot command has no login screen.
type consoleNavigator struct{}

func (consoleNavigator) GotoLogin() {}

func runCommand(cmd cli.Command, cfg *config.Config, args cli.Args) {
	store, err := openStore(cfg)
	if err != nil {
		cli.Exit(err)
	}
	snaps, cachePath := openSnapshots(cfg)
	if snaps != nil {
		defer snaps.Close()
	}

	sess := session.NewManager(sessionConfig(cfg), store, consoleNotifier{}, consoleNavigator{})
	deps := cli.Deps{
		Client:    client.New(sess, snaps),
		Config:    cfg,
		CachePath: cachePath,
	}

	switch cmd {
	case cli.CmdLogin:
		cli.Exit(cli.HandleLogin(deps, args))
	case cli.CmdLogout:
		cli.Exit(cli.HandleLogout(deps, args))
	case cli.CmdStatus:
		cli.Exit(cli.HandleStatus(deps, args))
	case cli.CmdMFA:
		cli.Exit(cli.HandleMFA(deps, args))
	case cli.CmdReport:
		cli.Exit(cli.HandleReport(deps, args))
	case cli.CmdConfig:
		cli.Exit(cli.HandleConfig(deps, args))
	case cli.CmdCache:
		cli.Exit(cli.HandleCache(deps, args))
	}
}

// =============================================================================
// TUI MODE
// =============================================================================

func runTUI(cfg *config.Config, args cli.Args) {
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
	snaps, _ := openSnapshots(cfg)
	if snaps != nil {
		defer snaps.Close()
	}

	// Session events flow into the program through the bridge; it queues
	// anything that fires before the program is running.
	bridge := app.NewBridge()
	sess := session.NewManager(sessionConfig(cfg), store, bridge, bridge)
	cl := client.New(sess, snaps)

	// Keep diagnostics off the alternate screen.
	if logPath := os.Getenv("DENIMHOUSE_LOG"); logPath != "" {
		if f, err := tea.LogToFile(logPath, "denimhouse"); err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	model := app.New(cl, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go bridge.Attach(program)

	// Config edits on disk apply to the next run; a live reload of session
	// timings would silently rearm the inactivity timer mid-session.
	watcher := startConfigWatcher(args)
	if watcher != nil {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}

func startConfigWatcher(args cli.Args) *config.Watcher {
	path := args.ConfigPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return nil
		}
	}
	watcher, err := config.NewWatcher(path, func(next *config.Config) {
		log.Printf("config reloaded from %s; timing changes apply on restart", path)
	})
	if err != nil {
		return nil
	}
	if err := watcher.Watch(); err != nil {
		return nil
	}
	return watcher
}
