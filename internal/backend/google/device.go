// Package google signs a user in with their Google account using the OAuth2
// device authorization flow, which needs no local callback server.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// ErrNotConfigured is returned when no OAuth client id is set
var ErrNotConfigured = errors.New("google sign-in is not configured")

// ErrNoIDToken is returned when Google issued a token without an id_token
var ErrNoIDToken = errors.New("google response did not include an id_token")

var defaultScopes = []string{"openid", "email", "profile"}

// DeviceFlow drives the device authorization grant
type DeviceFlow struct {
	config *oauth2.Config
	logger *slog.Logger
}

// NewDeviceFlow creates a flow for the given OAuth client. A zero endpoint
// selects Google's.
func NewDeviceFlow(clientID, clientSecret string, endpoint oauth2.Endpoint, logger *slog.Logger) *DeviceFlow {
	if logger == nil {
		logger = slog.Default()
	}
	if endpoint == (oauth2.Endpoint{}) {
		endpoint = endpoints.Google
	}
	return &DeviceFlow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       defaultScopes,
		},
		logger: logger,
	}
}

// Enabled reports whether a client id is configured
func (f *DeviceFlow) Enabled() bool {
	return f.config.ClientID != ""
}

// Start requests a user code. Show resp.UserCode and resp.VerificationURI
// to the user, then call Wait.
func (f *DeviceFlow) Start(ctx context.Context) (*oauth2.DeviceAuthResponse, error) {
	if !f.Enabled() {
		return nil, ErrNotConfigured
	}
	resp, err := f.config.DeviceAuth(ctx)
	if err != nil {
		f.logger.Error("device authorization failed", "error", err)
		return nil, fmt.Errorf("failed to start google sign-in: %w", err)
	}
	f.logger.Info("device code issued", "verification_uri", resp.VerificationURI, "expiry", resp.Expiry)
	return resp, nil
}

// Wait polls until the user approves the request and returns the ID token
func (f *DeviceFlow) Wait(ctx context.Context, resp *oauth2.DeviceAuthResponse) (string, error) {
	token, err := f.config.DeviceAccessToken(ctx, resp)
	if err != nil {
		f.logger.Error("device token exchange failed", "error", err)
		return "", fmt.Errorf("google sign-in failed: %w", err)
	}
	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return "", ErrNoIDToken
	}
	f.logger.Debug("received google id token")
	return idToken, nil
}
