// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the admin console.
package session

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// USER-FACING MESSAGES
// =============================================================================

// Logout messages shown to the admin. The storefront is Indonesian; these are
// product copy, not diagnostics.
const (
	// MsgInvalidSession is shown when a request is attempted with no token.
	MsgInvalidSession = "Sesi tidak valid. Silakan login kembali."

	// MsgSessionExpired is shown when the server rejects the token.
	MsgSessionExpired = "Sesi Anda telah berakhir. Silakan login kembali."

	// MsgInactivityLogout is shown when the inactivity window elapses.
	MsgInactivityLogout = "Anda keluar otomatis karena tidak ada aktivitas."

	// MsgLogoutSuccess is the default explicit-logout toast.
	MsgLogoutSuccess = "Logout berhasil."

	// MsgConnectivity is the generic connectivity-failure toast.
	MsgConnectivity = "Tidak dapat terhubung ke server. Periksa koneksi Anda."
)

// =============================================================================
// COLLABORATOR BOUNDARIES
// =============================================================================

// Notifier is the notification boundary: one transient toast per outcome.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// Navigator is the navigation boundary: logout always lands on the login
// entry point.
type Navigator interface {
	GotoLogin()
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds Manager configuration. Timings are product-configurable, not
// structural: see internal/config.
type Config struct {
	// BaseURL is the API origin, e.g. "https://api.denimhouse.id".
	BaseURL string

	// InactivityWindow forces logout after this much input silence.
	// Default: 30 minutes.
	InactivityWindow time.Duration

	// GuardReset is how long the machine stays in StateLoggingOut before
	// accepting a fresh cycle. Default: 2 seconds.
	GuardReset time.Duration

	// RequestTimeout applies to non-streaming API calls. Default: 30s.
	RequestTimeout time.Duration

	// LogoutPath is the best-effort server logout endpoint.
	LogoutPath string

	// LogoutRetries is how many extra attempts the server logout call gets.
	// Default: 0 (one attempt, failure logged).
	LogoutRetries int

	// RequestsPerSecond paces outbound calls so bulk screens cannot hammer
	// the API. Default: 10.
	RequestsPerSecond float64
}

// DefaultConfig returns the reference behavior: a 30-minute inactivity window
// and a 2-second guard reset.
func DefaultConfig() Config {
	return Config{
		InactivityWindow:  30 * time.Minute,
		GuardReset:        2 * time.Second,
		RequestTimeout:    30 * time.Second,
		LogoutPath:        "/api/admin/logout",
		RequestsPerSecond: 10,
	}
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.InactivityWindow <= 0 {
		c.InactivityWindow = def.InactivityWindow
	}
	if c.GuardReset <= 0 {
		c.GuardReset = def.GuardReset
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.LogoutPath == "" {
		c.LogoutPath = def.LogoutPath
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
}

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// One pooled client serves every authenticated call.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: timeout,
	}
}

// =============================================================================
// REQUEST
// =============================================================================

// Request describes one authenticated API call.
//
// Body handling follows the content-type precondition: a structured body is
// JSON-encoded with Content-Type: application/json; an io.Reader body passes
// through untouched (multipart callers set their own Content-Type header so
// the transport keeps the multipart boundary).
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager is the session state machine and authenticated-fetch gateway.
type Manager struct {
	mu    sync.Mutex
	state State
	token string
	user  *model.User

	// first missing-token failure since the last successful login triggers
	// a forced logout; later ones only reject
	missingTokenSignaled bool

	inactivityTimer *time.Timer
	guardTimer      *time.Timer

	cfg       Config
	store     Store
	notifier  Notifier
	navigator Navigator

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewManager creates a Manager and restores a persisted session if the store
// holds one.
func NewManager(cfg Config, store Store, notifier Notifier, navigator Navigator) *Manager {
	cfg.fillDefaults()
	m := &Manager{
		cfg:        cfg,
		store:      store,
		notifier:   notifier,
		navigator:  navigator,
		httpClient: newHTTPClient(cfg.RequestTimeout),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1),
	}
	m.restore()
	return m
}

// restore loads a persisted token/user pair. Half a pair is an invariant
// breach the system must never produce; if found, the store is cleared.
func (m *Manager) restore() {
	token, hasToken := m.store.Token()
	userData, hasUser := m.store.User()

	if hasToken != hasUser {
		logSessionEvent("SESSION_RESTORE_INVALID", "half pair in store, clearing")
		if err := m.store.Clear(); err != nil {
			log.Printf("failed to clear invalid session store: %v", err)
		}
		return
	}
	if !hasToken {
		return
	}

	var user model.User
	if err := json.Unmarshal(userData, &user); err != nil {
		logSessionEvent("SESSION_RESTORE_INVALID", "unreadable user record, clearing")
		if err := m.store.Clear(); err != nil {
			log.Printf("failed to clear invalid session store: %v", err)
		}
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = &user
	m.state = StateAuthenticated
	m.armTimerLocked()
	m.mu.Unlock()

	logSessionEvent("SESSION_RESTORED", "token="+fingerprint(token))
}

// =============================================================================
// STATE ACCESSORS
// =============================================================================

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Authenticated reports whether a token is held.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Token returns the current token ("" when logged out).
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the current user record, or nil.
func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// InactivityWindow returns the configured inactivity timeout.
func (m *Manager) InactivityWindow() time.Duration {
	return m.cfg.InactivityWindow
}

// BaseURL returns the API origin the manager was configured with.
func (m *Manager) BaseURL() string {
	return m.cfg.BaseURL
}

// RequestTimeout returns the per-request deadline.
func (m *Manager) RequestTimeout() time.Duration {
	return m.cfg.RequestTimeout
}

// =============================================================================
// MUTATIONS
// =============================================================================

// SetToken sets the in-memory token and its persisted copy atomically: the
// store write happens first, and the in-memory value changes only if it
// succeeds, so the two never diverge. An empty token clears both.
func (m *Manager) SetToken(token string) error {
	if err := m.store.SetToken(token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	if token == "" {
		m.state = StateUnauthenticated
		m.stopTimerLocked()
		return nil
	}
	m.state = StateAuthenticated
	m.missingTokenSignaled = false
	m.stopGuardLocked()
	m.armTimerLocked()
	logSessionEvent("SESSION_CREATED", "token="+fingerprint(token))
	return nil
}

// SetUser sets the in-memory user and its persisted copy with the same
// discipline as SetToken. A nil user clears both.
func (m *Manager) SetUser(user *model.User) error {
	var data []byte
	if user != nil {
		var err error
		data, err = json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
	}
	if err := m.store.SetUser(data); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

// =============================================================================
// INACTIVITY TRACKING
// =============================================================================

// Touch records a qualifying activity signal and re-arms the inactivity
// timer. The UI calls this for every routed key and mouse message. Without a
// token there is no timer to re-arm.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return
	}
	m.armTimerLocked()
}

// armTimerLocked re-arms the single inactivity timer. The prior timer is
// always stopped first so a live session never has two pending firings.
func (m *Manager) armTimerLocked() {
	m.stopTimerLocked()
	m.inactivityTimer = time.AfterFunc(m.cfg.InactivityWindow, func() {
		logSessionEvent("SESSION_INACTIVITY", "window="+m.cfg.InactivityWindow.String())
		m.Logout("", MsgInactivityLogout)
	})
}

func (m *Manager) stopTimerLocked() {
	if m.inactivityTimer != nil {
		m.inactivityTimer.Stop()
		m.inactivityTimer = nil
	}
}

// =============================================================================
// AUTHENTICATED FETCH
// =============================================================================

// AuthFetch performs one authenticated API call and returns the raw response
// for the caller to pass to api.Normalize.
//
// Failure semantics: a missing token rejects without a network call (the
// first such failure since login also forces a logout); a 401 forces an
// idempotent logout and is never surfaced as a response; transport failures
// raise one connectivity toast and are returned for the caller's own retry
// decision. Nothing is retried automatically.
func (m *Manager) AuthFetch(ctx context.Context, req Request) (*http.Response, error) {
	m.mu.Lock()
	token := m.token
	if token == "" {
		first := !m.missingTokenSignaled
		m.missingTokenSignaled = true
		m.mu.Unlock()
		if first {
			m.Logout(MsgInvalidSession, "")
		}
		return nil, api.NewUnauthenticated()
	}
	m.mu.Unlock()

	httpReq, err := m.buildRequest(ctx, token, req)
	if err != nil {
		return nil, err
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, api.NewNetworkFailure(err)
	}

	start := time.Now()
	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("API request failed: %s %s (%v)", req.Method, httpReq.URL.Path, err)
		m.notifier.Error(MsgConnectivity)
		return nil, api.NewNetworkFailure(err)
	}
	log.Printf("API %s %s: %d (%v)", req.Method, httpReq.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		// The response never reaches the caller; the session is over.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		m.Logout(MsgSessionExpired, "")
		return nil, api.NewSessionExpired()
	}

	return resp, nil
}

// buildRequest assembles the HTTP request: JSON encoding for structured
// bodies, bearer and accept headers, caller overrides last.
func (m *Manager) buildRequest(ctx context.Context, token string, req Request) (*http.Request, error) {
	target := req.Path
	if !strings.Contains(target, "://") {
		target = strings.TrimSuffix(m.cfg.BaseURL, "/") + req.Path
	}
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	jsonBody := false
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		// Binary/multipart payloads pass through untouched.
		body = b
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		jsonBody = true
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if jsonBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	// Caller-supplied headers override the defaults.
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	return httpReq, nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// Logout tears the session down. Concurrent and repeated triggers collapse
// into a single effective logout: only the first transition out of a
// non-LoggingOut state performs side effects. An explicit infoMessage (the
// inactivity case) still surfaces when the guard is already taken, so the
// admin always learns why they were logged out.
//
// Side effects: best-effort server logout call (failure logged, never
// returned — local teardown always succeeds), clearing of the persisted
// pair, cancellation of the inactivity timer, navigation to the login
// screen, and exactly one toast.
func (m *Manager) Logout(successMessage, infoMessage string) {
	m.mu.Lock()
	if m.state == StateLoggingOut {
		m.mu.Unlock()
		if infoMessage != "" {
			m.notifier.Info(infoMessage)
		}
		return
	}
	token := m.token
	m.state = StateLoggingOut
	m.token = ""
	m.user = nil
	m.stopTimerLocked()
	m.mu.Unlock()

	if token != "" {
		m.serverLogout(token)
	}

	if err := m.store.Clear(); err != nil {
		// Local teardown must succeed even if the store is unhappy.
		log.Printf("failed to clear persisted session: %v", err)
	}

	m.navigator.GotoLogin()

	switch {
	case infoMessage != "":
		m.notifier.Info(infoMessage)
	case successMessage != "":
		m.notifier.Success(successMessage)
	default:
		m.notifier.Success(MsgLogoutSuccess)
	}

	logSessionEvent("SESSION_TERMINATED", "token="+fingerprint(token))

	// The guard resets after a short delay so in-flight duplicate triggers
	// observe it, without permanently blocking the next login cycle. Exactly
	// one reset timer may be live: a stale timer from an earlier cycle would
	// end this cycle's guard window early, so the previous one is stopped
	// before arming (and on re-login, in SetToken).
	m.mu.Lock()
	m.stopGuardLocked()
	m.guardTimer = time.AfterFunc(m.cfg.GuardReset, func() {
		m.mu.Lock()
		if m.state == StateLoggingOut {
			m.state = StateUnauthenticated
		}
		m.mu.Unlock()
	})
	m.mu.Unlock()
}

// stopGuardLocked cancels a pending guard reset. Caller holds m.mu.
func (m *Manager) stopGuardLocked() {
	if m.guardTimer != nil {
		m.guardTimer.Stop()
		m.guardTimer = nil
	}
}

// serverLogout notifies the backend, best-effort. Retries are configuration;
// the reference behavior is a single attempt.
func (m *Manager) serverLogout(token string) {
	target := strings.TrimSuffix(m.cfg.BaseURL, "/") + m.cfg.LogoutPath

	for attempt := 0; attempt <= m.cfg.LogoutRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
		if err != nil {
			cancel()
			log.Printf("server logout request build failed: %v", err)
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := m.httpClient.Do(req)
		cancel()
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return
		}
		log.Printf("server logout attempt %d failed: %v", attempt+1, err)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// fingerprint returns a short SHA-256 fingerprint of a token for log lines.
// SECURITY: Tokens are never logged directly.
func fingerprint(token string) string {
	if token == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:4])
}

// logSessionEvent logs a session lifecycle event.
func logSessionEvent(eventType, details string) {
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	log.Printf("%s | %s | %s", timestamp, eventType, details)
}
