// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")
	data := []byte("hello, world!")

	err := AtomicWriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "subdir", "deep", "test.txt")

	err := AtomicWriteFile(path, []byte("test data"), 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("replaced"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "replaced" {
		t.Errorf("Content = %q, want %q", string(content), "replaced")
	}
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if os.Getenv("GOOS") == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "secret.bin")

	if err := AtomicWriteFile(path, []byte("sealed"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Permissions = %o, want 0600", perm)
	}
}

func TestAtomicWriteFile_NoTempLeftover(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Directory has %d entries, want 1: %v", len(entries), entries)
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"short string unchanged", "celana", 10, "celana"},
		{"exact length unchanged", "denim", 5, "denim"},
		{"truncated with ellipsis", "Celana Jeans Slim Fit Premium", 15, "Celana Jeans..."},
		{"zero max", "denim", 0, ""},
		{"tiny max no ellipsis", "denim", 2, "de"},
		{"multibyte safe", "ジーンズストレート", 6, "ジーン..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters occupy two columns each.
	if got := TruncateWidth("ジーンズ", 8); got != "ジーンズ" {
		t.Errorf("untruncated = %q", got)
	}
	got := TruncateWidth("ジーンズストレート", 9)
	if StringWidth(got) > 9 {
		t.Errorf("width of %q = %d, want <= 9", got, StringWidth(got))
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("denim"); got != 5 {
		t.Errorf("StringWidth(denim) = %d, want 5", got)
	}
	if got := StringWidth("ジーンズ"); got != 8 {
		t.Errorf("StringWidth(CJK) = %d, want 8", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight over width = %q", got)
	}
}
