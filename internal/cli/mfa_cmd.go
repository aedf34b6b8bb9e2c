// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// mfa_cmd.go - two-factor authentication enrollment commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// MFA
// =============================================================================

// HandleMFA dispatches the mfa subcommands.
func HandleMFA(deps Deps, args Args) error {
	switch args.Subcommand {
	case "", "setup":
		return handleMFASetup(deps, args)
	default:
		return &UsageError{Message: "unknown mfa subcommand: " + args.Subcommand + " (expected: setup)"}
	}
}

// handleMFASetup enrolls an authenticator app. The secret is generated
// locally, shown once, and confirmed against the server with a live code so
// a mistyped secret can never lock the admin out.
func handleMFASetup(deps Deps, args Args) error {
	sess := deps.Client.Session()
	user := sess.User()
	if user == nil {
		return fmt.Errorf("authentication required: run `denimhouse-admin login` first")
	}

	enrollment, err := session.NewTOTPEnrollment(user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	fmt.Println("Pindai atau masukkan data berikut di aplikasi autentikator Anda:")
	fmt.Println()
	fmt.Printf("  Secret : %s\n", enrollment.Secret)
	fmt.Printf("  URL    : %s\n", enrollment.URL)
	fmt.Println()
	fmt.Print("Masukkan kode 6 digit untuk konfirmasi: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}
	code := strings.TrimSpace(line)

	// Local check first so an obviously wrong code never reaches the server.
	if !enrollment.Verify(code) {
		return fmt.Errorf("kode tidak cocok, pendaftaran dibatalkan")
	}

	ctx, cancel := deps.callCtx()
	defer cancel()
	if err := deps.Client.ConfirmTOTP(ctx, enrollment.Secret, code); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println("Autentikasi dua faktor aktif.")
	}
	return nil
}
