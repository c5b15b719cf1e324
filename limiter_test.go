package pubadmin

import (
	"testing"
	"time"
)

func TestActionLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewActionLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first action to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second action to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third action to be blocked")
	}
	if got := limiter.Remaining(ip); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
}

func TestActionLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewActionLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first action to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second action to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected action after window to be allowed")
	}
}

func TestActionLimiterIsPerIP(t *testing.T) {
	limiter := NewActionLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
	if got := limiter.Remaining("203.0.113.31"); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
}

func TestActionLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewActionLimiter(1, time.Second)
	limiter.Stop()
	limiter.Stop()
}
