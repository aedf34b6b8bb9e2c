// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api defines the error taxonomy and response normalization layer.
package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// fakeResponse builds an *http.Response without a network round-trip.
func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// =============================================================================
// NORMALIZE TESTS
// =============================================================================

func TestNormalize_NoContent(t *testing.T) {
	// 204 normalizes to an empty result regardless of body content.
	payload, err := Normalize(fakeResponse(http.StatusNoContent, `{"data":"ignored"}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if payload != nil {
		t.Errorf("expected nil payload for 204, got %s", payload)
	}
}

func TestNormalize_OkWithPayload(t *testing.T) {
	payload, err := Normalize(fakeResponse(http.StatusOK, `{"data":[1,2,3]}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if string(payload) != `{"data":[1,2,3]}` {
		t.Errorf("payload mismatch: got %s", payload)
	}
}

func TestNormalize_OkEmptyBody(t *testing.T) {
	// An empty-but-ok body is success-with-no-data.
	payload, err := Normalize(fakeResponse(http.StatusOK, ""))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if payload != nil {
		t.Errorf("expected nil payload for empty ok body, got %s", payload)
	}
}

func TestNormalize_ValidationError(t *testing.T) {
	body := `{"message":"Invalid","errors":{"email":["required"]}}`
	_, err := Normalize(fakeResponse(http.StatusUnprocessableEntity, body))
	if err == nil {
		t.Fatal("expected error for 422 response")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Kind != KindValidationFailed {
		t.Errorf("Kind = %v, want KindValidationFailed", apiErr.Kind)
	}
	if apiErr.Status != 422 {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Message != "Invalid" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Invalid")
	}
	if got := apiErr.FirstFieldError("email"); got != "required" {
		t.Errorf("errors.email[0] = %q, want %q", got, "required")
	}
	if len(apiErr.Data) == 0 {
		t.Error("Data should carry the full payload")
	}
	if !IsValidation(err) {
		t.Error("IsValidation should report true")
	}
}

func TestNormalize_UnparsableServerError(t *testing.T) {
	_, err := Normalize(fakeResponse(http.StatusInternalServerError, "<html>boom</html>"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != 500 {
		t.Errorf("Status = %d, want 500", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Error("Message should be a non-empty generic message")
	}
	if apiErr.Errors != nil {
		t.Errorf("Errors should be absent, got %v", apiErr.Errors)
	}
	if apiErr.Kind != KindServerError {
		t.Errorf("Kind = %v, want KindServerError", apiErr.Kind)
	}
}

func TestNormalize_ErrorsOnlyAttachedFor422(t *testing.T) {
	// A field-error mapping on any other status is ignored; errors is the
	// dedicated 422 validation channel.
	tests := []struct {
		name       string
		status     int
		wantErrors bool
		wantKind   Kind
	}{
		{"400 with mapping", http.StatusBadRequest, false, KindServerError},
		{"422 with mapping", http.StatusUnprocessableEntity, true, KindValidationFailed},
		{"500 with mapping", http.StatusInternalServerError, false, KindServerError},
	}

	body := `{"message":"nope","errors":{"name":["taken"]}}`
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(fakeResponse(tc.status, body))
			apiErr := AsError(err)
			if apiErr == nil {
				t.Fatalf("expected *api.Error, got %v", err)
			}
			if (apiErr.Errors != nil) != tc.wantErrors {
				t.Errorf("Errors present = %v, want %v", apiErr.Errors != nil, tc.wantErrors)
			}
			if apiErr.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", apiErr.Kind, tc.wantKind)
			}
		})
	}
}

func TestNormalize_ServerMessageFallback(t *testing.T) {
	// Without a server message the generic status-line text is used.
	_, err := Normalize(fakeResponse(http.StatusNotFound, `{"detail":"x"}`))
	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatal("expected *api.Error")
	}
	if !strings.Contains(apiErr.Message, "404") {
		t.Errorf("Message = %q, want generic 404 text", apiErr.Message)
	}
}

func TestNormalize_422WithoutMapping(t *testing.T) {
	// 422 without a mapping has no validation channel; it is a plain server
	// error from the caller's point of view.
	_, err := Normalize(fakeResponse(http.StatusUnprocessableEntity, `{"message":"Invalid"}`))
	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatal("expected *api.Error")
	}
	if apiErr.Kind != KindServerError {
		t.Errorf("Kind = %v, want KindServerError", apiErr.Kind)
	}
	if apiErr.Errors != nil {
		t.Error("Errors should be absent")
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	// Same status and body, same outcome, every time.
	body := `{"message":"Invalid","errors":{"email":["required"]}}`
	first := AsError(mustErr(t, fakeResponse(422, body)))
	second := AsError(mustErr(t, fakeResponse(422, body)))
	if first.Kind != second.Kind || first.Message != second.Message || first.Status != second.Status {
		t.Errorf("non-deterministic normalization: %+v vs %+v", first, second)
	}
}

func mustErr(t *testing.T, resp *http.Response) error {
	t.Helper()
	_, err := Normalize(resp)
	if err == nil {
		t.Fatal("expected error")
	}
	return err
}

// =============================================================================
// DECODE TESTS
// =============================================================================

func TestDecode_Payload(t *testing.T) {
	var out struct {
		Data []int `json:"data"`
	}
	if err := Decode(fakeResponse(http.StatusOK, `{"data":[4,5]}`), &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out.Data) != 2 || out.Data[0] != 4 {
		t.Errorf("decoded %v, want [4 5]", out.Data)
	}
}

func TestDecode_NoContentLeavesOutUntouched(t *testing.T) {
	out := map[string]string{"keep": "me"}
	if err := Decode(fakeResponse(http.StatusNoContent, ""), &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out["keep"] != "me" {
		t.Error("out should be untouched for 204")
	}
}

// =============================================================================
// ERROR TYPE TESTS
// =============================================================================

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{NewUnauthenticated(), KindUnauthenticated},
		{NewSessionExpired(), KindSessionExpired},
		{NewNetworkFailure(errors.New("refused")), KindNetworkFailure},
	}
	for _, tc := range tests {
		apiErr := AsError(tc.err)
		if apiErr == nil || apiErr.Kind != tc.want {
			t.Errorf("AsError(%v).Kind = %v, want %v", tc.err, apiErr, tc.want)
		}
	}

	if !IsUnauthenticated(NewUnauthenticated()) {
		t.Error("IsUnauthenticated failed")
	}
	if !IsSessionExpired(NewSessionExpired()) {
		t.Error("IsSessionExpired failed")
	}
	if !IsNetworkFailure(NewNetworkFailure(errors.New("x"))) {
		t.Error("IsNetworkFailure failed")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation should be false for plain errors")
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindServerError, Message: "boom", Status: 503}
	if got := e.Error(); !strings.Contains(got, "503") {
		t.Errorf("Error() = %q, want status in message", got)
	}

	wrapped := NewNetworkFailure(errors.New("connection refused"))
	if !strings.Contains(wrapped.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", wrapped.Error())
	}
	if !errors.Is(wrapped, wrapped.Cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnauthenticated, "UNAUTHENTICATED"},
		{KindSessionExpired, "SESSION_EXPIRED"},
		{KindValidationFailed, "VALIDATION_FAILED"},
		{KindServerError, "SERVER_ERROR"},
		{KindNetworkFailure, "NETWORK_FAILURE"},
		{KindUnknown, "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
