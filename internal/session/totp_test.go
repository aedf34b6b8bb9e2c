// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestTOTPEnrollment(t *testing.T) {
	enrollment, err := NewTOTPEnrollment("admin@denimhouse.id")
	if err != nil {
		t.Fatalf("NewTOTPEnrollment failed: %v", err)
	}
	if enrollment.Secret == "" {
		t.Fatal("empty secret")
	}
	if !strings.HasPrefix(enrollment.URL, "otpauth://totp/") {
		t.Errorf("URL = %q, want otpauth://totp/ provisioning URI", enrollment.URL)
	}
	if !strings.Contains(enrollment.URL, "admin%40denimhouse.id") {
		t.Errorf("URL = %q, want account name embedded", enrollment.URL)
	}

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if !enrollment.Verify(code) {
		t.Error("current code should verify")
	}
	if enrollment.Verify("000000") && code != "000000" {
		t.Error("bogus code should not verify")
	}
}
