package utils

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is a client-side rate limiter with explicit capacity and refill
// rate, used by the content-generation CLI to stay under the generative API's
// requests-per-minute limit.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewTokenBucket returns a full bucket holding capacity tokens that refills at
// refillPerMinute tokens per minute.
func NewTokenBucket(capacity int, refillPerMinute float64) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillPerMinute / 60.0,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

// TryTake takes one token if available.
func (tb *TokenBucket) TryTake() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill(time.Now())
	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}

// Wait blocks until a token is available or the context is cancelled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		now := time.Now()
		tb.refill(now)
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		wait := time.Second
		if tb.refillRate > 0 {
			need := 1 - tb.tokens
			wait = time.Duration(need / tb.refillRate * float64(time.Second))
		}
		tb.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
