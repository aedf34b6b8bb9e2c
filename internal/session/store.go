// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/jeranaias/denimhouse-admin/internal/util"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the persistence boundary for the session pair.
//
// Implementations hold exactly two entries: the token and the serialized user
// record. The pair discipline is enforced by Manager (both are cleared
// together); a store only has to keep each entry's persisted copy in step with
// what it was last told.
type Store interface {
	// SetToken persists the token. An empty token deletes the entry.
	SetToken(token string) error
	// Token returns the persisted token and whether one exists.
	Token() (string, bool)
	// SetUser persists the serialized user record. Nil deletes the entry.
	SetUser(data []byte) error
	// User returns the persisted user record and whether one exists.
	User() ([]byte, bool)
	// Clear removes both entries as a pair.
	Clear() error
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore is an in-process Store. It backs tests and the --no-persist
// mode, where a session should not outlive the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	has   bool
	user  []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetToken persists the token in memory.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = token != ""
	return nil
}

// Token returns the stored token.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has
}

// SetUser persists the serialized user in memory.
func (s *MemoryStore) SetUser(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		s.user = nil
		return nil
	}
	s.user = append([]byte(nil), data...)
	return nil
}

// User returns the stored user record.
func (s *MemoryStore) User() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	return append([]byte(nil), s.user...), true
}

// Clear removes both entries.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.has = false
	s.user = nil
	return nil
}

// =============================================================================
// ENCRYPTED FILE STORE
// =============================================================================

// Argon2id parameters for deriving the sealing key from the key material.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64MB
	argonThreads = 4
	saltSize     = 16
)

// storePayload is the plaintext shape sealed into the session file.
type storePayload struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// FileStore persists the session pair in a single sealed file.
//
// The file holds salt || nonce || ciphertext; the ciphertext is the JSON
// payload sealed with ChaCha20-Poly1305 under an Argon2id-derived key. Key
// material comes from a 0600 keyfile next to the session file, generated on
// first use. Writes are atomic (temp file + fsync + rename).
type FileStore struct {
	mu      sync.Mutex
	path    string
	keyPath string
}

// NewFileStore creates a file store rooted at dir (e.g. ~/.denimhouse).
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		path:    filepath.Join(dir, "session.bin"),
		keyPath: filepath.Join(dir, "session.key"),
	}
}

// SetToken persists the token. An empty token deletes the entry.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.load()
	if err != nil {
		return err
	}
	payload.Token = token
	return s.save(payload)
}

// Token returns the persisted token.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.load()
	if err != nil || payload.Token == "" {
		return "", false
	}
	return payload.Token, true
}

// SetUser persists the serialized user record. Nil deletes the entry.
func (s *FileStore) SetUser(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.load()
	if err != nil {
		return err
	}
	payload.User = json.RawMessage(data)
	return s.save(payload)
}

// User returns the persisted user record.
func (s *FileStore) User() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := s.load()
	if err != nil || len(payload.User) == 0 {
		return nil, false
	}
	return append([]byte(nil), payload.User...), true
}

// Clear removes both entries as a pair by deleting the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}

// load reads and opens the sealed session file. A missing or undecryptable
// file yields an empty payload; a corrupt session is treated as logged out.
func (s *FileStore) load() (storePayload, error) {
	var payload storePayload

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return payload, nil
		}
		return payload, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSize {
		return payload, nil
	}

	material, err := s.keyMaterial()
	if err != nil {
		return payload, err
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSize]
	ciphertext := raw[saltSize+chacha20poly1305.NonceSize:]

	aead, err := chacha20poly1305.New(deriveKey(material, salt))
	if err != nil {
		return payload, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return storePayload{}, nil
	}
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return storePayload{}, nil
	}
	return payload, nil
}

// save seals the payload and writes it atomically. An empty payload removes
// the file so no stale entry survives a cleared session.
func (s *FileStore) save(payload storePayload) error {
	if payload.Token == "" && len(payload.User) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}

	material, err := s.keyMaterial()
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode session payload: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := chacha20poly1305.New(deriveKey(material, salt))
	if err != nil {
		return fmt.Errorf("failed to initialize cipher: %w", err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)

	if err := util.AtomicWriteFile(s.path, out, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// keyMaterial returns the secret the sealing key is derived from.
// DENIMHOUSE_PASSPHRASE overrides the generated keyfile when set.
func (s *FileStore) keyMaterial() ([]byte, error) {
	if pass := os.Getenv("DENIMHOUSE_PASSPHRASE"); pass != "" {
		return []byte(pass), nil
	}

	material, err := os.ReadFile(s.keyPath)
	if err == nil && len(material) > 0 {
		return material, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session keyfile: %w", err)
	}

	material = make([]byte, 32)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := util.AtomicWriteFile(s.keyPath, material, 0600); err != nil {
		return nil, fmt.Errorf("failed to write session keyfile: %w", err)
	}
	return material, nil
}

// deriveKey derives the 32-byte sealing key from material and salt.
func deriveKey(material, salt []byte) []byte {
	return argon2.IDKey(material, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}
