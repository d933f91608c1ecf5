// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway wraps the SpaceDigest backend endpoints and normalizes
// every outcome into a success/failure result value. Nothing in this
// package panics or returns a raw error to the conversation layer: a
// transport failure, a non-2xx status, and a malformed body all collapse
// into the same failure shape with a human-readable message.
// Implements: prd002-paper-search (R2), prd003-claim-verification (R2);
//
//	docs/ARCHITECTURE § Gateways.
package gateway

import (
	"net/http"
	"strings"

	"github.com/pdiddy/claimchat/pkg/types"
)

const (
	sourcesPath = "/api/get-sources"
	verifyPath  = "/api/verify-claim"
	filtersPath = "/api/filters"
)

// Client talks to one SpaceDigest backend. Each call is a single attempt
// with no client-side retry or cancellation beyond the HTTP timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	apiKey     string
}

// NewClient creates a gateway client from backend configuration.
func NewClient(cfg types.BackendConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		apiKey:     cfg.APIKey,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}
