// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api defines the error taxonomy and response normalization layer.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Kind categorizes API errors for handling.
type Kind int

const (
	// KindUnknown is the zero value; it should not appear in practice.
	KindUnknown Kind = iota

	// KindUnauthenticated indicates a request was attempted with no token.
	// Always resolves to a forced logout; never retried.
	KindUnauthenticated

	// KindSessionExpired indicates the server rejected the token (HTTP 401).
	// Always resolves to a forced logout; never retried.
	KindSessionExpired

	// KindValidationFailed indicates HTTP 422 with a field-error mapping.
	// Recovered locally by the calling form; no logout, no navigation.
	KindValidationFailed

	// KindServerError indicates any other non-ok HTTP status.
	KindServerError

	// KindNetworkFailure indicates a transport-level failure (no response).
	KindNetworkFailure
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindSessionExpired:
		return "SESSION_EXPIRED"
	case KindValidationFailed:
		return "VALIDATION_FAILED"
	case KindServerError:
		return "SERVER_ERROR"
	case KindNetworkFailure:
		return "NETWORK_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// =============================================================================
// STRUCTURED ERROR
// =============================================================================

// Error is the structured error returned by AuthFetch and Normalize.
//
// Status carries the HTTP status code when one exists (0 for transport
// failures). Errors carries the field-error mapping and is populated only for
// KindValidationFailed. Data carries the full raw payload for callers needing
// additional context.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Errors  map[string][]string
	Data    json.RawMessage
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// FieldErrors returns the ordered messages for a field, or nil.
func (e *Error) FieldErrors(field string) []string {
	if e.Errors == nil {
		return nil
	}
	return e.Errors[field]
}

// FirstFieldError returns the first message for a field, or "".
func (e *Error) FirstFieldError(field string) string {
	msgs := e.FieldErrors(field)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewUnauthenticated returns the error for a request attempted with no token.
func NewUnauthenticated() *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Message: "not authenticated",
		Status:  http.StatusUnauthorized,
	}
}

// NewSessionExpired returns the error for a server-rejected token.
func NewSessionExpired() *Error {
	return &Error{
		Kind:    KindSessionExpired,
		Message: "session expired",
		Status:  http.StatusUnauthorized,
	}
}

// NewNetworkFailure wraps a transport-level failure.
func NewNetworkFailure(cause error) *Error {
	return &Error{
		Kind:    KindNetworkFailure,
		Message: "network request failed",
		Cause:   cause,
	}
}

// statusError builds a ServerError-class error from a bare HTTP status.
func statusError(status int) *Error {
	return &Error{
		Kind:    kindForStatus(status, false),
		Message: genericStatusMessage(status),
		Status:  status,
	}
}

// kindForStatus maps an HTTP status to an error kind. hasFieldErrors reports
// whether a 422 payload actually carried a field-error mapping.
func kindForStatus(status int, hasFieldErrors bool) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindSessionExpired
	case status == http.StatusUnprocessableEntity && hasFieldErrors:
		return KindValidationFailed
	default:
		return KindServerError
	}
}

// genericStatusMessage returns the status-line message for a code.
func genericStatusMessage(status int) string {
	text := http.StatusText(status)
	if text == "" {
		text = "request failed"
	}
	return fmt.Sprintf("HTTP %d: %s", status, text)
}

// =============================================================================
// PREDICATES
// =============================================================================

// AsError extracts an *Error from err, or nil.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsUnauthenticated reports whether err is a missing-token failure.
func IsUnauthenticated(err error) bool {
	return hasKind(err, KindUnauthenticated)
}

// IsSessionExpired reports whether err is a server-rejected-token failure.
func IsSessionExpired(err error) bool {
	return hasKind(err, KindSessionExpired)
}

// IsValidation reports whether err carries field-level validation errors.
func IsValidation(err error) bool {
	return hasKind(err, KindValidationFailed)
}

// IsNetworkFailure reports whether err is a transport-level failure.
func IsNetworkFailure(err error) bool {
	return hasKind(err, KindNetworkFailure)
}

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
