// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := store.SetUser([]byte(`{"id":1,"name":"Admin"}`)); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	tok, ok := store.Token()
	if !ok || tok != "tok-123" {
		t.Errorf("Token() = %q, %v", tok, ok)
	}
	user, ok := store.User()
	if !ok || string(user) != `{"id":1,"name":"Admin"}` {
		t.Errorf("User() = %s, %v", user, ok)
	}
}

func TestFileStoreClearRemovesPair(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetUser([]byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, ok := store.Token(); ok {
		t.Error("token survived Clear")
	}
	if _, ok := store.User(); ok {
		t.Error("user survived Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, "session.bin")); !os.IsNotExist(err) {
		t.Error("session file should be gone after Clear")
	}
}

func TestFileStoreEmptyTokenDeletesEntry(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetToken(""); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Token(); ok {
		t.Error("empty token should delete the entry")
	}
}

func TestFileStoreCiphertextAtRest(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.SetToken("super-secret-token"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "session.bin"))
	if err != nil {
		t.Fatalf("failed to read session file: %v", err)
	}
	if bytes.Contains(raw, []byte("super-secret-token")) {
		t.Error("token stored in plaintext")
	}
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"session.bin", "session.key"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("%s permissions = %o, want 0600", name, perm)
		}
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := NewFileStore(dir)
	if err := first.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := first.SetUser([]byte(`{"id":9}`)); err != nil {
		t.Fatal(err)
	}

	second := NewFileStore(dir)
	tok, ok := second.Token()
	if !ok || tok != "tok" {
		t.Errorf("reopened Token() = %q, %v", tok, ok)
	}
}

func TestFileStoreCorruptFileReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}

	// Flip bytes in the sealed file.
	path := filepath.Join(dir, "session.bin")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xFF
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Token(); ok {
		t.Error("corrupt session file must read as logged out")
	}
}
