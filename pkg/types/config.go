// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for backend calls.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "claimchat/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BackendConfig holds settings for the SpaceDigest backend connection.
// Per prd002-paper-search R5.1-R5.3.
type BackendConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the backend root (e.g. "http://localhost:3000").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional bearer token for the backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// StoreConfig holds settings for the local transcript store.
type StoreConfig struct {
	// DBPath is the SQLite database file holding the chat history slot.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ChatConfig holds settings for the conversation workflow.
type ChatConfig struct {
	// SearchLimit is the number of papers requested per search (default 50).
	SearchLimit int `json:"search_limit" yaml:"search_limit"`

	// MaxVerifyPapers bounds the papers analyzed per verification (default 5).
	MaxVerifyPapers int `json:"max_verify_papers" yaml:"max_verify_papers"`
}

// ClientConfig groups all configuration for the claimchat client.
type ClientConfig struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Chat    ChatConfig    `json:"chat" yaml:"chat"`
}
