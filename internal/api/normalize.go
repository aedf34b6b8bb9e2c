// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api defines the error taxonomy and response normalization layer.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxResponseSize is the maximum allowed response body size.
// SECURITY: Response size limit prevents memory exhaustion.
const MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

// errorEnvelope is the failure shape the backend emits: an optional message
// plus, for 422 only, a field -> ordered messages mapping.
type errorEnvelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Normalize translates a raw HTTP response into either a parsed payload or a
// structured *Error. It closes the response body.
//
// Contract:
//   - ok + 204: returns (nil, nil); callers must not assume a payload.
//   - unparsable body + not ok: *Error with the HTTP status and a generic
//     status-line message, no field errors.
//   - unparsable body + ok: (nil, nil); an empty-but-ok body is success.
//   - parsed + ok: the raw payload as-is. Envelope unwrapping ({"data": ...})
//     is a per-call-site decision; shapes vary by endpoint.
//   - parsed + not ok: *Error with the server message (or generic status
//     text), the HTTP status, the field-error mapping only when the status is
//     exactly 422 and the mapping is present, and the full payload in Data.
//
// Normalize is pure: the same status and body always produce the same outcome.
func Normalize(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if ok && resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		if ok {
			return nil, nil
		}
		return nil, statusError(resp.StatusCode)
	}

	if !json.Valid(body) {
		if ok {
			return nil, nil
		}
		return nil, statusError(resp.StatusCode)
	}

	if ok {
		return json.RawMessage(body), nil
	}

	var envelope errorEnvelope
	// Body is known-valid JSON; a non-object payload simply leaves the
	// envelope zero-valued.
	json.Unmarshal(body, &envelope)

	message := envelope.Message
	if message == "" {
		message = genericStatusMessage(resp.StatusCode)
	}

	apiErr := &Error{
		Message: message,
		Status:  resp.StatusCode,
		Data:    json.RawMessage(body),
	}
	if resp.StatusCode == http.StatusUnprocessableEntity && len(envelope.Errors) > 0 {
		apiErr.Errors = envelope.Errors
	}
	apiErr.Kind = kindForStatus(resp.StatusCode, apiErr.Errors != nil)

	return nil, apiErr
}

// Decode normalizes a response and unmarshals the payload into out.
// A nil payload (204 or empty-but-ok body) leaves out untouched.
func Decode(resp *http.Response, out any) error {
	payload, err := Normalize(resp)
	if err != nil {
		return err
	}
	if payload == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
