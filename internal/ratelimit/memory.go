package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a single-process fixed-window limiter used when no
// Redis address is configured, and in tests. Expired windows are swept
// on access.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewMemoryLimiter(windowSize time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window:  windowSize,
		max:     max,
		buckets: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, w := range l.buckets {
		if now.Sub(w.start) >= l.window {
			delete(l.buckets, k)
		}
	}

	w, ok := l.buckets[key]
	if !ok {
		w = &window{start: now}
		l.buckets[key] = w
	}
	w.count++
	return w.count <= l.max, nil
}
