// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// FAKE COLLABORATORS
// =============================================================================

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	infos     []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) toastCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes) + len(n.infos) + len(n.errors)
}

type fakeNavigator struct {
	logins atomic.Int64
}

func (n *fakeNavigator) GotoLogin() {
	n.logins.Add(1)
}

// testManager builds a Manager with fast timings against an in-memory store.
func testManager(t *testing.T, cfg Config) (*Manager, *MemoryStore, *fakeNotifier, *fakeNavigator) {
	t.Helper()
	if cfg.GuardReset == 0 {
		cfg.GuardReset = 20 * time.Millisecond
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 2 * time.Second
	}
	store := NewMemoryStore()
	notifier := &fakeNotifier{}
	navigator := &fakeNavigator{}
	return NewManager(cfg, store, notifier, navigator), store, notifier, navigator
}

func login(t *testing.T, m *Manager, token string) {
	t.Helper()
	if err := m.SetToken(token); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := m.SetUser(&model.User{ID: 1, Name: "Admin", Email: "admin@denimhouse.id"}); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
}

// =============================================================================
// TOKEN / PERSISTENCE INVARIANT
// =============================================================================

func TestTokenPersistenceInvariant(t *testing.T) {
	m, store, _, _ := testManager(t, Config{})

	check := func(step string) {
		_, persisted := store.Token()
		if (m.Token() != "") != persisted {
			t.Fatalf("%s: in-memory token %q but persisted=%v", step, m.Token(), persisted)
		}
	}

	check("initial")
	login(t, m, "tok-1")
	check("after login")
	if err := m.SetToken("tok-2"); err != nil {
		t.Fatal(err)
	}
	check("after token refresh")
	m.Logout("", "")
	check("after logout")
}

func TestSetTokenRoundTrip(t *testing.T) {
	m, store, _, _ := testManager(t, Config{})

	if err := m.SetToken("x"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetToken(""); err != nil {
		t.Fatal(err)
	}

	if m.Token() != "" {
		t.Errorf("in-memory token not cleared: %q", m.Token())
	}
	if _, ok := store.Token(); ok {
		t.Error("persisted token not cleared")
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("state = %v, want StateUnauthenticated", m.State())
	}
}

func TestRestorePersistedSession(t *testing.T) {
	store := NewMemoryStore()
	first := NewManager(Config{GuardReset: 20 * time.Millisecond}, store, &fakeNotifier{}, &fakeNavigator{})
	if err := first.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := first.SetUser(&model.User{ID: 7, Name: "Dewi"}); err != nil {
		t.Fatal(err)
	}

	second := NewManager(Config{GuardReset: 20 * time.Millisecond}, store, &fakeNotifier{}, &fakeNavigator{})
	if !second.Authenticated() {
		t.Fatal("restored manager should be authenticated")
	}
	if second.User() == nil || second.User().ID != 7 {
		t.Errorf("restored user = %+v, want ID 7", second.User())
	}
}

func TestRestoreHalfPairClearsStore(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken("orphan") // token without user: invalid state

	m := NewManager(Config{}, store, &fakeNotifier{}, &fakeNavigator{})
	if m.Authenticated() {
		t.Fatal("half a pair must not restore a session")
	}
	if _, ok := store.Token(); ok {
		t.Error("invalid pair should have been cleared from the store")
	}
}

// =============================================================================
// AUTHFETCH
// =============================================================================

func TestAuthFetchWithoutToken(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	m, _, notifier, navigator := testManager(t, Config{BaseURL: server.URL})

	_, err := m.AuthFetch(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/products"})
	if !api.IsUnauthenticated(err) {
		t.Fatalf("err = %v, want Unauthenticated", err)
	}
	if hits.Load() != 0 {
		t.Error("AuthFetch without a token must not hit the network")
	}

	// First failure forces one logout: one navigation, one toast.
	if got := navigator.logins.Load(); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
	if got := notifier.toastCount(); got != 1 {
		t.Errorf("toasts = %d, want 1", got)
	}

	// Later failures only reject.
	_, err = m.AuthFetch(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/orders"})
	if !api.IsUnauthenticated(err) {
		t.Fatalf("err = %v, want Unauthenticated", err)
	}
	if got := navigator.logins.Load(); got != 1 {
		t.Errorf("navigations after second failure = %d, want 1", got)
	}
	if hits.Load() != 0 {
		t.Error("network must stay untouched")
	}
}

func TestAuthFetchHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotContentType, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m, _, _, _ := testManager(t, Config{BaseURL: server.URL})
	login(t, m, "tok-abc")

	resp, err := m.AuthFetch(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/admin/products",
		Body:   map[string]string{"name": "Slim Fit 501"},
	})
	if err != nil {
		t.Fatalf("AuthFetch failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json for structured body", gotContentType)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestAuthFetchCallerHeaderOverride(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m, _, _, _ := testManager(t, Config{BaseURL: server.URL})
	login(t, m, "tok")

	header := make(http.Header)
	header.Set("Accept", "application/pdf")
	resp, err := m.AuthFetch(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/api/admin/reports/sales/export",
		Header: header,
	})
	if err != nil {
		t.Fatalf("AuthFetch failed: %v", err)
	}
	resp.Body.Close()

	if gotAccept != "application/pdf" {
		t.Errorf("Accept = %q, caller override should win", gotAccept)
	}
}

func TestAuthFetch401ForcesSingleLogout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m, store, notifier, navigator := testManager(t, Config{BaseURL: server.URL})
	login(t, m, "tok")

	// Two in-flight requests receive near-simultaneous 401s.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.AuthFetch(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/orders"})
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !api.IsSessionExpired(err) {
			t.Errorf("request %d: err = %v, want SessionExpired", i, err)
		}
	}
	if got := navigator.logins.Load(); got != 1 {
		t.Errorf("navigations = %d, want exactly 1", got)
	}
	if got := notifier.toastCount(); got != 1 {
		t.Errorf("toasts = %d, want exactly 1", got)
	}
	if _, ok := store.Token(); ok {
		t.Error("persisted token should be cleared after 401")
	}
}

func TestAuthFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close() // connection refused from here on

	m, _, notifier, _ := testManager(t, Config{BaseURL: base})
	login(t, m, "tok")

	_, err := m.AuthFetch(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/products"})
	if !api.IsNetworkFailure(err) {
		t.Fatalf("err = %v, want NetworkFailure", err)
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.errors) != 1 {
		t.Errorf("connectivity toasts = %d, want 1", len(notifier.errors))
	}
	// No logout on plain connectivity failure.
	if !m.Authenticated() {
		t.Error("network failure must not tear the session down")
	}
}

func TestAuthFetchAfterLogoutMatchesNeverAuthenticated(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	m, _, _, _ := testManager(t, Config{BaseURL: server.URL})
	login(t, m, "tok")
	m.Logout("", "")

	_, err := m.AuthFetch(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/products"})
	if !api.IsUnauthenticated(err) {
		t.Fatalf("err = %v, want Unauthenticated", err)
	}
	// The logout endpoint call is the only permitted hit.
	if hits.Load() > 1 {
		t.Errorf("server hits = %d, AuthFetch after logout must not reach the network", hits.Load())
	}
}

// =============================================================================
// LOGOUT
// =============================================================================

func TestLogoutSideEffectsRunOnce(t *testing.T) {
	var logoutCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/logout" {
			logoutCalls.Add(1)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m, store, notifier, navigator := testManager(t, Config{BaseURL: server.URL, GuardReset: time.Second})
	login(t, m, "tok")

	m.Logout("", "")
	m.Logout("", "") // duplicate trigger inside the guard window

	if got := logoutCalls.Load(); got != 1 {
		t.Errorf("server logout calls = %d, want 1", got)
	}
	if got := navigator.logins.Load(); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
	if got := notifier.toastCount(); got != 1 {
		t.Errorf("toasts = %d, want 1", got)
	}
	if _, ok := store.Token(); ok {
		t.Error("store should be cleared")
	}
	if _, ok := store.User(); ok {
		t.Error("user entry should be cleared with the token")
	}
}

func TestLogoutInfoMessageSurvivesGuard(t *testing.T) {
	m, _, notifier, _ := testManager(t, Config{GuardReset: time.Second})
	login(t, m, "tok")

	m.Logout("", "")                       // takes the guard
	m.Logout("", MsgInactivityLogout)      // inactivity racing in

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.infos) != 1 || notifier.infos[0] != MsgInactivityLogout {
		t.Errorf("infos = %v, inactivity message must surface despite the guard", notifier.infos)
	}
}

func TestLogoutGuardResets(t *testing.T) {
	m, _, _, navigator := testManager(t, Config{GuardReset: 20 * time.Millisecond})
	login(t, m, "tok")

	m.Logout("", "")
	time.Sleep(60 * time.Millisecond)
	if m.State() != StateUnauthenticated {
		t.Fatalf("state = %v, want StateUnauthenticated after guard reset", m.State())
	}

	// A fresh cycle is not blocked.
	login(t, m, "tok-2")
	m.Logout("", "")
	if got := navigator.logins.Load(); got != 2 {
		t.Errorf("navigations = %d, want 2 across two cycles", got)
	}
}

// A logout → login → logout sequence faster than the guard window must not
// leave the first cycle's reset timer running: if it fires mid-way through
// the second cycle's window, a duplicate trigger lands on an open guard and
// runs full side effects a third time.
func TestLogoutGuardSurvivesFastCycle(t *testing.T) {
	m, _, notifier, navigator := testManager(t, Config{GuardReset: 100 * time.Millisecond})
	login(t, m, "tok")

	m.Logout("", "")
	time.Sleep(40 * time.Millisecond)

	login(t, m, "tok-2")
	m.Logout("", "")

	// Past the first cycle's reset point, still inside the second's window.
	time.Sleep(80 * time.Millisecond)
	if got := m.State(); got != StateLoggingOut {
		t.Fatalf("state = %v, the second guard window must still be open", got)
	}

	m.Logout("", "") // duplicate trigger, must collapse into cycle two

	if got := navigator.logins.Load(); got != 2 {
		t.Errorf("navigations = %d, want 2", got)
	}
	if got := notifier.toastCount(); got != 2 {
		t.Errorf("toasts = %d, want 2", got)
	}
}

func TestLogoutSurvivesServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	m, store, _, navigator := testManager(t, Config{BaseURL: base})
	login(t, m, "tok")

	m.Logout("", "")

	if m.Authenticated() {
		t.Error("local teardown must succeed even when the logout call fails")
	}
	if _, ok := store.Token(); ok {
		t.Error("store should be cleared despite server failure")
	}
	if navigator.logins.Load() != 1 {
		t.Error("navigation should still happen")
	}
}

// =============================================================================
// INACTIVITY
// =============================================================================

func TestInactivityLogout(t *testing.T) {
	m, _, notifier, navigator := testManager(t, Config{
		InactivityWindow: 60 * time.Millisecond,
	})
	login(t, m, "tok")

	time.Sleep(150 * time.Millisecond)

	if m.Authenticated() {
		t.Fatal("session should be gone after the inactivity window")
	}
	notifier.mu.Lock()
	infos := len(notifier.infos)
	gotMsg := ""
	if infos > 0 {
		gotMsg = notifier.infos[0]
	}
	notifier.mu.Unlock()
	if infos != 1 || gotMsg != MsgInactivityLogout {
		t.Errorf("infos = %d (%q), want exactly one inactivity message", infos, gotMsg)
	}
	if navigator.logins.Load() != 1 {
		t.Errorf("navigations = %d, want 1", navigator.logins.Load())
	}
}

func TestActivityPreventsLogout(t *testing.T) {
	m, _, _, navigator := testManager(t, Config{
		InactivityWindow: 80 * time.Millisecond,
	})
	login(t, m, "tok")

	// One activity signal per half-window keeps the session alive.
	for i := 0; i < 8; i++ {
		time.Sleep(40 * time.Millisecond)
		m.Touch()
	}

	if !m.Authenticated() {
		t.Fatal("regular activity must never trigger the inactivity logout")
	}
	if navigator.logins.Load() != 0 {
		t.Errorf("navigations = %d, want 0", navigator.logins.Load())
	}
}

func TestNoTimerWithoutToken(t *testing.T) {
	m, _, _, navigator := testManager(t, Config{
		InactivityWindow: 40 * time.Millisecond,
	})

	m.Touch() // no token: nothing to arm
	time.Sleep(100 * time.Millisecond)

	if navigator.logins.Load() != 0 {
		t.Error("no inactivity logout may fire without a live session")
	}
}
