// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/jeranaias/denimhouse-admin/internal/api"
)

func TestParseDefaultIsTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("expected CmdTUI for empty args, got %v", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"mfa", "setup"}, CmdMFA},
		{[]string{"report"}, CmdReport},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"cache", "clear"}, CmdCache},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := ParseArgs(tt.args)
		if cmd != tt.want {
			t.Errorf("ParseArgs(%v) = %v, want %v", tt.args, cmd, tt.want)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--config", "/tmp/dh.toml", "--json", "-q", "status"})
	if cmd != CmdStatus {
		t.Fatalf("expected CmdStatus, got %v", cmd)
	}
	if args.ConfigPath != "/tmp/dh.toml" {
		t.Errorf("ConfigPath = %q", args.ConfigPath)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("flags not parsed: %+v", args)
	}
}

func TestParseLoginEmail(t *testing.T) {
	_, args := ParseArgs([]string{"login", "--email=rina@denimhouse.id"})
	if args.Email != "rina@denimhouse.id" {
		t.Errorf("Email = %q", args.Email)
	}

	_, args = ParseArgs([]string{"login", "--email", "budi@denimhouse.id"})
	if args.Email != "budi@denimhouse.id" {
		t.Errorf("Email = %q", args.Email)
	}
}

func TestParseReportOptions(t *testing.T) {
	_, args := ParseArgs([]string{"report", "--from", "2026-08-01", "--to=2026-08-29", "--format", "json", "--stdout"})
	if args.Options["from"] != "2026-08-01" {
		t.Errorf("from = %q", args.Options["from"])
	}
	if args.Options["to"] != "2026-08-29" {
		t.Errorf("to = %q", args.Options["to"])
	}
	if args.Options["format"] != "json" {
		t.Errorf("format = %q", args.Options["format"])
	}
	if args.Options["stdout"] != "true" {
		t.Error("stdout flag not parsed")
	}
}

func TestParseConfigSet(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "ui.theme", "light"})
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "light" {
		t.Errorf("unexpected parse: %+v", args)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{&UsageError{Message: "bad"}, ExitUsageError},
		{api.NewUnauthenticated(), ExitAuthError},
		{api.NewSessionExpired(), ExitAuthError},
		{api.NewNetworkFailure(nil), ExitNetworkError},
		{&api.Error{Kind: api.KindValidationFailed}, ExitValidationError},
		{&api.Error{Kind: api.KindServerError}, ExitGeneralError},
	}
	for _, tt := range tests {
		if got := GetExitCode(tt.err); got != tt.want {
			t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
