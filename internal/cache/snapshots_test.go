// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Snapshots {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTest(t)

	if err := s.Put("products", []byte(`{"data":[]}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	snap, err := s.Get("products")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(snap.Payload) != `{"data":[]}` {
		t.Errorf("payload = %s", snap.Payload)
	}
	if snap.Age() < 0 {
		t.Error("negative snapshot age")
	}
}

func TestSnapshotReplace(t *testing.T) {
	s := openTest(t)

	if err := s.Put("orders", []byte(`v1`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("orders", []byte(`v2`)); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Get("orders")
	if err != nil {
		t.Fatal(err)
	}
	if string(snap.Payload) != "v2" {
		t.Errorf("payload = %s, want v2", snap.Payload)
	}
}

func TestSnapshotMissing(t *testing.T) {
	s := openTest(t)
	if _, err := s.Get("nothing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("err = %v, want ErrNoSnapshot", err)
	}
}

func TestPurge(t *testing.T) {
	s := openTest(t)
	if err := s.Put("products", []byte(`x`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Purge(); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if _, err := s.Get("products"); !errors.Is(err, ErrNoSnapshot) {
		t.Error("snapshot survived purge")
	}
}
