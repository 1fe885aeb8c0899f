package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter reports whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type bucket struct {
	tokens float64
	last   time.Time
}

// TokenBucket is an in-process limiter: capacity tokens per key, refilled
// continuously over window. Keys idle for a full window are dropped, since
// they would be back at capacity anyway.
type TokenBucket struct {
	mu         sync.Mutex
	m          map[string]*bucket
	capacity   float64
	refillRate float64 // tokens per second
	window     time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewTokenBucket(capacity int, window time.Duration) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &TokenBucket{
		m:          make(map[string]*bucket),
		capacity:   float64(capacity),
		refillRate: float64(capacity) / window.Seconds(),
		window:     window,
		now:        time.Now,
	}
}

// Allow consumes one token for key if available.
func (l *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}
	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.m[key] = b
	}
	// refill
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * l.refillRate
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// sweep runs at most once per window, so Allow stays O(1) amortized.
func (l *TokenBucket) sweep(now time.Time) {
	for k, b := range l.m {
		if now.Sub(b.last) >= l.window {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys.
func (l *TokenBucket) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

var _ Limiter = (*TokenBucket)(nil)
