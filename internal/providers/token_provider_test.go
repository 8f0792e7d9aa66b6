package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ffc/aircraft-tracker/internal/common"
)

func newTestTokenProvider(url string) *TokenProvider {
	cache := common.NewCacheService(300, 600)
	return NewTokenProvider(url, "test-client", "test-secret", 5*time.Second, cache)
}

func TestTokenProvider_ReusesCachedToken(t *testing.T) {
	var exchanges int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&exchanges, 1)

		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("Expected grant_type client_credentials, got %s", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("client_id") != "test-client" {
			t.Errorf("Expected client_id test-client, got %s", r.PostForm.Get("client_id"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token": "token-abc", "expires_in": 1800}`))
	}))
	defer server.Close()

	provider := newTestTokenProvider(server.URL)
	ctx := context.Background()

	first, err := provider.GetToken(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := provider.GetToken(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first != "token-abc" || second != "token-abc" {
		t.Errorf("Expected token-abc from both calls, got %q and %q", first, second)
	}
	if n := atomic.LoadInt32(&exchanges); n != 1 {
		t.Errorf("Expected exactly 1 token exchange, got %d", n)
	}
}

func TestTokenProvider_FailureNotCached(t *testing.T) {
	var fail int32 = 1
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&fail) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "server_error"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token": "token-recovered"}`))
	}))
	defer server.Close()

	provider := newTestTokenProvider(server.URL)
	ctx := context.Background()

	if _, err := provider.GetToken(ctx); err == nil {
		t.Fatal("Expected error for failed exchange")
	} else if !IsAuthError(err) {
		t.Errorf("Expected auth error, got %v", err)
	}

	// The failure must not be cached: once the endpoint recovers, the next
	// call gets a real token.
	atomic.StoreInt32(&fail, 0)
	token, err := provider.GetToken(ctx)
	if err != nil {
		t.Fatalf("Expected no error after recovery, got %v", err)
	}
	if token != "token-recovered" {
		t.Errorf("Expected token-recovered, got %q", token)
	}
}

func TestTokenProvider_InvalidateForcesRefresh(t *testing.T) {
	var exchanges int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&exchanges, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token": "token-abc"}`))
	}))
	defer server.Close()

	provider := newTestTokenProvider(server.URL)
	ctx := context.Background()

	if _, err := provider.GetToken(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	provider.Invalidate()
	if _, err := provider.GetToken(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if n := atomic.LoadInt32(&exchanges); n != 2 {
		t.Errorf("Expected 2 token exchanges after invalidate, got %d", n)
	}
}

func TestTokenProvider_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := newTestTokenProvider(server.URL)

	if _, err := provider.GetToken(context.Background()); err == nil {
		t.Fatal("Expected error for malformed payload")
	} else if !IsAuthError(err) {
		t.Errorf("Expected auth error, got %v", err)
	}
}

func TestTokenProvider_EmptyTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token_type": "Bearer"}`))
	}))
	defer server.Close()

	provider := newTestTokenProvider(server.URL)

	if _, err := provider.GetToken(context.Background()); err == nil {
		t.Fatal("Expected error when access_token is missing")
	}
}
