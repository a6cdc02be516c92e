package ratelimit

import (
	"testing"
	"time"
)

func TestFixedWindowLimiter(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(time.Minute, 3)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !limiter.Allow("contact:1.2.3.4") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if limiter.Allow("contact:1.2.3.4") {
		t.Error("fourth request should be limited")
	}

	// 其他键不受影响
	if !limiter.Allow("contact:5.6.7.8") {
		t.Error("other key should pass")
	}

	// 窗口过期后惰性重置
	current = current.Add(61 * time.Second)
	if !limiter.Allow("contact:1.2.3.4") {
		t.Error("request after window expiry should pass")
	}
}

func TestFixedWindowRemainingAndRetryAfter(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(time.Minute, 2)
	limiter.now = func() time.Time { return current }

	allowed, remaining := limiter.AllowN("k")
	if !allowed || remaining != 1 {
		t.Errorf("first request: allowed=%v remaining=%d", allowed, remaining)
	}
	allowed, remaining = limiter.AllowN("k")
	if !allowed || remaining != 0 {
		t.Errorf("second request: allowed=%v remaining=%d", allowed, remaining)
	}
	allowed, _ = limiter.AllowN("k")
	if allowed {
		t.Error("third request should be limited")
	}

	current = current.Add(30 * time.Second)
	if got := limiter.RetryAfter("k"); got != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", got)
	}

	if got := limiter.RetryAfter("unknown"); got != 0 {
		t.Errorf("RetryAfter for unknown key = %v, want 0", got)
	}
}
