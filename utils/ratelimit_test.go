package utils

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketTryTake(t *testing.T) {
	// A slow refill rate keeps the bucket from topping back up mid-test.
	tb := NewTokenBucket(3, 1)

	for i := 0; i < 3; i++ {
		if !tb.TryTake() {
			t.Fatalf("TryTake() = false on take %d, want true while bucket has tokens", i+1)
		}
	}
	if tb.TryTake() {
		t.Error("TryTake() = true on an empty bucket, want false")
	}
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 6000) // 100 tokens per second

	if !tb.TryTake() {
		t.Fatal("TryTake() = false on a full bucket")
	}
	if tb.TryTake() {
		t.Fatal("TryTake() = true immediately after draining a capacity-1 bucket")
	}

	time.Sleep(50 * time.Millisecond)
	if !tb.TryTake() {
		t.Error("TryTake() = false after waiting long enough for a refill")
	}
}

func TestTokenBucketRefillCappedAtCapacity(t *testing.T) {
	tb := NewTokenBucket(2, 6000)

	time.Sleep(50 * time.Millisecond)

	taken := 0
	for tb.TryTake() {
		taken++
		if taken > 2 {
			break
		}
	}
	if taken > 2 {
		t.Errorf("bucket yielded %d tokens in one burst, capacity is 2", taken)
	}
}

func TestTokenBucketWait(t *testing.T) {
	tb := NewTokenBucket(1, 6000)

	if err := tb.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() on a full bucket returned %v", err)
	}

	start := time.Now()
	if err := tb.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() on a refilling bucket returned %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait() blocked %v, expected well under a second at 100 tokens/sec", elapsed)
	}
}

func TestTokenBucketWaitCancelled(t *testing.T) {
	tb := NewTokenBucket(1, 0.001) // effectively never refills
	tb.TryTake()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := tb.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() = %v, want context.DeadlineExceeded", err)
	}
}
