// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Claim string `json:"claim"`
}

func TestPostJSON_RoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "claimchat-test/0.1", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"claim":"echoed"}`))
	}))
	defer ts.Close()

	var out echoPayload
	err := PostJSON(context.Background(), ts.Client(), ts.URL, "claimchat-test/0.1", "sk-test",
		echoPayload{Claim: "original"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "echoed", out.Claim)
}

func TestPostJSON_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backend exploded"))
	}))
	defer ts.Close()

	var out echoPayload
	err := PostJSON(context.Background(), ts.Client(), ts.URL, "", "", echoPayload{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestPostJSON_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"claim": truncated`))
	}))
	defer ts.Close()

	var out echoPayload
	err := PostJSON(context.Background(), ts.Client(), ts.URL, "", "", echoPayload{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestPostJSON_SingleAttempt(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	var out echoPayload
	err := PostJSON(context.Background(), ts.Client(), ts.URL, "", "", echoPayload{}, &out)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "rate-limited calls must not be retried")
}

func TestGetJSON_OmitsAuthWhenNoKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"claim":"ok"}`))
	}))
	defer ts.Close()

	var out echoPayload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "claimchat-test/0.1", "", &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Claim)
}
