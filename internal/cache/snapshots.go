// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache keeps a local snapshot of the most recent list responses.
//
// When a list refresh fails with a network error, screens fall back to the
// last snapshot instead of going blank. Snapshots are read-only data: nothing
// written here is ever pushed back to the API.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSnapshot indicates no snapshot exists for the requested resource.
var ErrNoSnapshot = errors.New("no snapshot for resource")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	resource   TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// Snapshot is one cached list payload.
type Snapshot struct {
	Resource  string
	Payload   []byte
	FetchedAt time.Time
}

// Age returns how stale the snapshot is.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}

// Snapshots is a SQLite-backed snapshot store, one row per resource.
type Snapshots struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*Snapshots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}
	return &Snapshots{db: db}, nil
}

// Close closes the underlying database.
func (s *Snapshots) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Put stores the latest payload for a resource, replacing any prior snapshot.
func (s *Snapshots) Put(resource string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO snapshots (resource, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		resource, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Get returns the snapshot for a resource, or ErrNoSnapshot.
func (s *Snapshots) Get(resource string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT payload, fetched_at FROM snapshots WHERE resource = ?`, resource)
	var payload []byte
	var fetchedAt int64
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return &Snapshot{
		Resource:  resource,
		Payload:   payload,
		FetchedAt: time.Unix(fetchedAt, 0),
	}, nil
}

// Purge drops every snapshot. Called on logout so one admin's data never
// leaks into the next session on a shared machine.
func (s *Snapshots) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to purge snapshots: %w", err)
	}
	return nil
}
