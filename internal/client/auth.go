// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides typed request functions for the DenimHouse admin
// API.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// LOGIN
// =============================================================================

// Credentials is the login request payload. OTP is required only for
// accounts with TOTP enabled.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// loginEnvelope is the success shape of POST /api/admin/login.
type loginEnvelope struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates against the API and installs the returned token/user
// pair into the session manager. It runs outside AuthFetch: there is no
// token yet, and a failed login must not trigger the forced-logout path.
func (c *Client) Login(ctx context.Context, creds Credentials) (*model.User, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	target := strings.TrimSuffix(c.sess.BaseURL(), "/") + "/api/admin/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := anonClient(c.sess).Do(req)
	if err != nil {
		return nil, api.NewNetworkFailure(err)
	}

	var envelope loginEnvelope
	if err := api.Decode(resp, &envelope); err != nil {
		return nil, err
	}
	if envelope.Token == "" {
		return nil, &api.Error{
			Kind:    api.KindServerError,
			Message: "login succeeded without a token",
			Status:  resp.StatusCode,
		}
	}

	// Token and user install together or not at all.
	if err := c.sess.SetToken(envelope.Token); err != nil {
		return nil, err
	}
	if err := c.sess.SetUser(&envelope.User); err != nil {
		if clearErr := c.sess.SetToken(""); clearErr != nil {
			return nil, fmt.Errorf("failed to persist user (and failed to roll back token: %v): %w", clearErr, err)
		}
		return nil, err
	}
	return &envelope.User, nil
}

// anonClient builds the transport for unauthenticated calls, matching the
// session manager's timeout and TLS floor.
func anonClient(sess *session.Manager) *http.Client {
	return &http.Client{
		Timeout: sess.RequestTimeout(),
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}

// =============================================================================
// PROFILE
// =============================================================================

// ProfileUpdate carries editable fields of the signed-in admin.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateProfile updates the signed-in admin and refreshes the session's user
// record with the server's copy.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var envelope struct {
		User model.User `json:"user"`
	}
	err := c.fetchInto(ctx, session.Request{
		Method: http.MethodPut,
		Path:   "/api/admin/profile",
		Body:   update,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if err := c.sess.SetUser(&envelope.User); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// =============================================================================
// TOTP ENROLLMENT
// =============================================================================

// ConfirmTOTP submits a locally generated TOTP secret plus a current code so
// the server can enable two-factor login for the account. The secret never
// leaves the client before this call.
func (c *Client) ConfirmTOTP(ctx context.Context, secret, code string) error {
	_, err := c.fetch(ctx, session.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/mfa",
		Body: map[string]string{
			"secret": secret,
			"code":   code,
		},
	})
	return err
}
