// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides JSON-over-HTTP helpers shared by the backend
// gateways. Calls are single-attempt: retry policy belongs to the backend
// and is deliberately absent here.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response body is read when
// building an error message.
const maxErrorBody = 512

// PostJSON sends body as a JSON POST to url and decodes the 2xx response
// into out. Non-2xx statuses and decode failures are returned as errors;
// the caller is responsible for converting them into result values.
func PostJSON(ctx context.Context, client *http.Client, url, userAgent, apiKey string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setCommonHeaders(req, userAgent, apiKey)

	return do(client, req, out)
}

// GetJSON sends a GET to url and decodes the 2xx response into out.
func GetJSON(ctx context.Context, client *http.Client, url, userAgent, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	setCommonHeaders(req, userAgent, apiKey)

	return do(client, req, out)
}

func setCommonHeaders(req *http.Request, userAgent, apiKey string) {
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(snippet) > 0 {
			return fmt.Errorf("HTTP %d: %s: %s", resp.StatusCode, resp.Status, bytes.TrimSpace(snippet))
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
