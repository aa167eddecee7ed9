package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter(t *testing.T) {
	current := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(time.Minute, 3)
	l.now = func() time.Time { return current }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user:a")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !ok {
			t.Fatalf("request %d denied under the limit", i+1)
		}
	}

	ok, err := l.Allow(ctx, "user:a")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Error("request over the limit allowed")
	}

	// A different key has its own window.
	if ok, _ := l.Allow(ctx, "user:b"); !ok {
		t.Error("independent key denied")
	}

	// After the window passes, the key recovers.
	current = current.Add(time.Minute + time.Second)
	if ok, _ := l.Allow(ctx, "user:a"); !ok {
		t.Error("request denied after window expired")
	}
}

func TestMemoryLimiterSweepsExpiredWindows(t *testing.T) {
	current := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(time.Minute, 1)
	l.now = func() time.Time { return current }

	ctx := context.Background()
	l.Allow(ctx, "a")
	l.Allow(ctx, "b")
	l.Allow(ctx, "c")

	current = current.Add(2 * time.Minute)
	l.Allow(ctx, "d")

	if len(l.buckets) != 1 {
		t.Errorf("buckets = %d after expiry, want 1", len(l.buckets))
	}
}
