// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, and status commands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/jeranaias/denimhouse-admin/internal/client"
	"github.com/jeranaias/denimhouse-admin/internal/config"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Deps carries the wired application pieces into command handlers.
type Deps struct {
	Client    *client.Client
	Config    *config.Config
	CachePath string
}

func (d Deps) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.Config.RequestTimeout()+5*time.Second)
}

// =============================================================================
// LOGIN
// =============================================================================

// HandleLogin authenticates interactively and persists the session. The
// password never appears in argv or the process environment.
func HandleLogin(deps Deps, args Args) error {
	email := args.Email
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return ErrMissingArgument("email", "denimhouse-admin login --email admin@denimhouse.id")
	}

	fmt.Print("Kata sandi: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Kode OTP (kosongkan jika tidak ada): ")
	otpLine, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read OTP: %w", err)
	}

	ctx, cancel := deps.callCtx()
	defer cancel()
	user, err := deps.Client.Login(ctx, client.Credentials{
		Email:    email,
		Password: string(passwordBytes),
		OTP:      strings.TrimSpace(otpLine),
	})
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("Masuk sebagai %s (%s).\n", user.Name, user.Role)
	}
	return nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// HandleLogout ends the current session.
func HandleLogout(deps Deps, args Args) error {
	sess := deps.Client.Session()
	if !sess.Authenticated() {
		if !args.Quiet {
			fmt.Println("Tidak ada sesi aktif.")
		}
		return nil
	}
	sess.Logout("", "")
	deps.Client.PurgeSnapshots()
	if !args.Quiet {
		fmt.Println("Logout berhasil.")
	}
	return nil
}

// =============================================================================
// STATUS
// =============================================================================

// statusData is the JSON shape of the status command.
type statusData struct {
	Authenticated bool   `json:"authenticated"`
	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	UserRole      string `json:"user_role,omitempty"`
	BaseURL       string `json:"base_url"`
	Inactivity    string `json:"inactivity_window"`
	SessionStore  string `json:"session_store"`
}

// HandleStatus reports session and configuration state.
func HandleStatus(deps Deps, args Args) error {
	sess := deps.Client.Session()
	data := statusData{
		Authenticated: sess.Authenticated(),
		BaseURL:       deps.Config.API.BaseURL,
		Inactivity:    deps.Config.InactivityWindow().String(),
		SessionStore:  deps.Config.Session.Store,
	}
	if user := sess.User(); user != nil {
		data.UserName = user.Name
		data.UserEmail = user.Email
		data.UserRole = user.Role
	}

	if args.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	fmt.Println("DenimHouse Admin")
	fmt.Printf("  Server          : %s\n", data.BaseURL)
	fmt.Printf("  Penyimpanan sesi: %s\n", data.SessionStore)
	fmt.Printf("  Batas inaktif   : %s\n", data.Inactivity)
	if data.Authenticated {
		fmt.Printf("  Sesi            : aktif\n")
		fmt.Printf("  Admin           : %s <%s> (%s)\n", data.UserName, data.UserEmail, data.UserRole)
	} else {
		fmt.Printf("  Sesi            : tidak ada\n")
	}
	return nil
}
