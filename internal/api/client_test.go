package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New("test-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient == nil {
		t.Fatal("httpClient is nil")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
	if client.retry.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", client.retry.MaxRetries)
	}
}

func TestNew_WithOptions(t *testing.T) {
	client, err := New("test-key",
		WithBaseURL("https://example.com"),
		WithRetries(5),
		WithTimeout(60*time.Second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.baseURL != "https://example.com" {
		t.Errorf("baseURL = %s, want https://example.com", client.baseURL)
	}
	if client.retry.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", client.retry.MaxRetries)
	}
	if client.httpClient.Timeout != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", client.httpClient.Timeout)
	}
}

func TestWithRetryOn(t *testing.T) {
	client, err := New("test-key", WithRetryOn([]int{418}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !client.retry.RetryableOn(418) {
		t.Error("RetryableOn(418) = false, want true")
	}
	if client.retry.RetryableOn(500) {
		t.Error("RetryableOn(500) = true, want false after override")
	}
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %s, want application/json", r.Header.Get("Accept"))
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Errorf("api_key = %s, want test-key", q.Get("api_key"))
		}
		if q.Get("count") != "3" {
			t.Errorf("count = %s, want 3", q.Get("count"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "hello"}`))
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var result struct {
		Title string `json:"title"`
	}
	query := url.Values{"count": {"3"}}
	if err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", query, &result); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result.Title != "hello" {
		t.Errorf("Title = %q, want hello", result.Title)
	}
}

func TestClient_Do_DoesNotMutateCallerQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	query := url.Values{"date": {"2024-01-01"}}
	if err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", query, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if query.Get("api_key") != "" {
		t.Error("caller's query values were mutated with api_key")
	}
}

func TestClient_Do_ParsesKeyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": "API_KEY_INVALID", "message": "An invalid api_key was supplied."}}`))
	}))
	defer server.Close()

	client, _ := New("bad-key", WithBaseURL(server.URL))

	err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if apiErr.Code != "API_KEY_INVALID" {
		t.Errorf("Code = %q, want API_KEY_INVALID", apiErr.Code)
	}
}

func TestClient_Do_ParsesEndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code": 400, "msg": "Bad Request", "service_version": "v1"}`))
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Bad Request" {
		t.Errorf("Message = %q, want Bad Request", apiErr.Message)
	}
}

func TestClient_Do_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))
	client.retry.MaxRetries = 0

	err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("Message = %q, want raw body", apiErr.Message)
	}
}

func TestClient_Do_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))
	client.retry.BaseDelay = time.Millisecond
	client.retry.Jitter = 0

	var result struct {
		OK bool `json:"ok"`
	}
	if err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, &result); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !result.OK {
		t.Error("result not decoded after retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
}

func TestClient_Do_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code": 500, "msg": "Internal Service Error", "service_version": "v1"}`))
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))
	client.retry.MaxRetries = 2
	client.retry.BaseDelay = time.Millisecond
	client.retry.Jitter = 0

	err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3 (initial + 2 retries)", got)
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	client, _ := New("test-key", WithBaseURL("http://127.0.0.1:1"))
	client.retry.MaxRetries = 1
	client.retry.BaseDelay = time.Millisecond
	client.retry.Jitter = 0

	err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if netErr.Attempt != 2 {
		t.Errorf("Attempt = %d, want 2", netErr.Attempt)
	}
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))
	client.retry.BaseDelay = time.Hour // force the retry wait to block

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Do(ctx, http.MethodGet, "/planetary/apod", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestClient_RateLimitCapture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "40")
		w.Header().Set("X-RateLimit-Remaining", "39")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	if client.RateLimit().Known() {
		t.Error("RateLimit().Known() = true before any request")
	}

	if err := client.Do(context.Background(), http.MethodGet, "/planetary/apod", nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	limit := client.RateLimit()
	if limit.Limit != 40 || limit.Remaining != 39 {
		t.Errorf("RateLimit() = %d/%d, want 39/40", limit.Remaining, limit.Limit)
	}
}
