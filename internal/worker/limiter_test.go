package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://detector-a.local/v1/score/contradiction"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different host has its own bucket
	if err := limiter.Wait(ctx, "http://detector-b.local/v1/score/support"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://detector.local/v1/score/contradiction"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is consumed
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Another host is unaffected
	if !limiter.Allow("http://other.local") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	host := "slow.local"

	limiter.SetHostRate(host, 0.1, 1)

	if !limiter.Allow("http://" + host) {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("http://" + host) {
		t.Errorf("second request should fail")
	}

	if !limiter.Allow("http://fast.local") {
		t.Errorf("other host should pass")
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("http://detector.local:8001/v1/score/support")
	if err != nil {
		t.Fatalf("extractHost failed: %v", err)
	}
	if host != "detector.local:8001" {
		t.Errorf("expected detector.local:8001, got %s", host)
	}

	if _, err := extractHost("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
