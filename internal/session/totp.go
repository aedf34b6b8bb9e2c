// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"fmt"

	"github.com/pquerna/otp/totp"
)

// TOTPIssuer is the issuer shown in authenticator apps.
const TOTPIssuer = "DenimHouse Admin"

// TOTPEnrollment is a freshly generated second-factor secret for an admin
// account. The secret is submitted to the backend only after one code has
// been verified locally, so an admin can never enroll a secret their
// authenticator app did not actually capture.
type TOTPEnrollment struct {
	// Secret is the base32 shared secret.
	Secret string

	// URL is the otpauth:// provisioning URI for QR display.
	URL string
}

// NewTOTPEnrollment generates a new TOTP secret for the given account email.
func NewTOTPEnrollment(account string) (*TOTPEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      TOTPIssuer,
		AccountName: account,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	return &TOTPEnrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
	}, nil
}

// Verify checks a code against the enrollment secret.
func (e *TOTPEnrollment) Verify(code string) bool {
	return totp.Validate(code, e.Secret)
}
