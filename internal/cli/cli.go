// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for denimhouse-admin.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdMFA
	CmdReport
	CmdConfig
	CmdCache
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Quiet      bool
	Verbose    bool
	JSON       bool

	// Command-specific
	Email      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --from, --format)
	Options map[string]string
}

const usageText = `denimhouse-admin - DenimHouse store administration console

DenimHouse Admin manages the DenimHouse denim store from the terminal.

It provides:
  - Product, category, and order management
  - Payment confirmation and shipment tracking
  - Customer account and review moderation
  - Sales reports with CSV/JSON export
  - Session persistence with automatic inactivity logout

Usage:
  denimhouse-admin                   Start the console (default)
  denimhouse-admin login             Authenticate and persist a session
  denimhouse-admin logout            End the current session
  denimhouse-admin status, s         Show session and connectivity status
  denimhouse-admin mfa [subcommand]  Two-factor authentication management
  denimhouse-admin report            Fetch and export a sales report
  denimhouse-admin config [show|set|path]  Configuration
  denimhouse-admin cache [clear]     Offline snapshot cache management

Login Command:
  denimhouse-admin login             Prompt for email and password
    --email ADDR                     Skip the email prompt
                                     The password is always prompted,
                                     never taken from argv.

Report Commands:
  denimhouse-admin report            Current month, configured format
    --from YYYY-MM-DD                Range start (default: first of month)
    --to YYYY-MM-DD                  Range end (default: today)
    --format csv|json                Override configured export format
    --output DIR                     Override configured export directory
    --stdout                         Print to stdout instead of a file

MFA Commands:
  denimhouse-admin mfa setup         Enroll an authenticator app
  denimhouse-admin mfa verify CODE   Confirm enrollment with a code

Config Commands:
  denimhouse-admin config show       Show current configuration
  denimhouse-admin config path       Print the config file location
  denimhouse-admin config set KEY VALUE
                                     Set a configuration value
                                     Keys: api.base_url, session.inactivity_minutes,
                                           export.format, export.dir, ui.theme,
                                           ui.page_size

Global Flags:
  --config PATH   Use an alternate config file
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Output in JSON format

Examples:
  denimhouse-admin                                Start the console
  denimhouse-admin login --email admin@denimhouse.id
  denimhouse-admin status                         Check the session
  denimhouse-admin report --from 2026-08-01 --to 2026-08-29 --format csv
  denimhouse-admin config set ui.theme light
  denimhouse-admin cache clear                    Drop offline snapshots

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("denimhouse-admin version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out of Parse for tests.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		parseLoginArgs(&parsedArgs, remaining)
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "mfa", "totp", "2fa":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
			parsedArgs.Raw = remaining[1:]
		}
		return CmdMFA, parsedArgs

	case "report", "reports":
		parseReportArgs(&parsedArgs, remaining)
		return CmdReport, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "cache":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdCache, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseLoginArgs parses login command specific arguments.
func parseLoginArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--email" && i+1 < len(remaining):
			args.Email = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--email="):
			args.Email = strings.TrimPrefix(arg, "--email=")
		}
	}
}

// parseReportArgs parses report command specific arguments.
func parseReportArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--from" && i+1 < len(remaining):
			args.Options["from"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--from="):
			args.Options["from"] = strings.TrimPrefix(arg, "--from=")
		case arg == "--to" && i+1 < len(remaining):
			args.Options["to"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--to="):
			args.Options["to"] = strings.TrimPrefix(arg, "--to=")
		case arg == "--format" && i+1 < len(remaining):
			args.Options["format"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			args.Options["format"] = strings.TrimPrefix(arg, "--format=")
		case arg == "--output" && i+1 < len(remaining):
			args.Options["output"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--output="):
			args.Options["output"] = strings.TrimPrefix(arg, "--output=")
		case arg == "--stdout":
			args.Options["stdout"] = "true"
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
