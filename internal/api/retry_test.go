package api

import (
	"context"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}

	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		if !cfg.RetryableOn(code) {
			t.Errorf("RetryableOn(%d) = false, want true", code)
		}
	}
	notRetryable := []int{200, 400, 403, 404}
	for _, code := range notRetryable {
		if cfg.RetryableOn(code) {
			t.Errorf("RetryableOn(%d) = true, want false", code)
		}
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()

	if !cfg.ShouldRetry(0, 503) {
		t.Error("ShouldRetry(0, 503) = false, want true")
	}
	if cfg.ShouldRetry(3, 503) {
		t.Error("ShouldRetry(3, 503) = true, want false at max retries")
	}
	if cfg.ShouldRetry(0, 404) {
		t.Error("ShouldRetry(0, 404) = true, want false")
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Second,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 5 * time.Second}, // capped at MaxDelay
		{10, 5 * time.Second},
	}

	for _, tt := range tests {
		if got := cfg.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetryConfig_DelayJitterBounds(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.2,
	}

	for i := 0; i < 100; i++ {
		delay := cfg.Delay(0)
		if delay < 800*time.Millisecond || delay > 1200*time.Millisecond {
			t.Fatalf("Delay(0) = %v, want within 20%% of 1s", delay)
		}
	}
}

func TestRetryConfig_WaitRespectsContext(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Hour,
		MaxDelay:   time.Hour,
		Multiplier: 1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cfg.Wait(ctx, 0); err == nil {
		t.Error("Wait() error = nil, want context error")
	}
}
