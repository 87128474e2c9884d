package gossipguard

import (
	"testing"
	"time"
)

func TestTokenBucketAllowsUpToCapacity(t *testing.T) {
	b := newTokenBucket(3, 1)
	now := time.Unix(0, 0)
	for i := 0; i < 3; i++ {
		if !b.tryConsume(now, 1) {
			t.Fatalf("expected token %d to be available", i)
		}
	}
	if b.tryConsume(now, 1) {
		t.Fatalf("expected bucket to be exhausted")
	}
}

func TestTokenBucketRefillsOverTime(t *testing.T) {
	b := newTokenBucket(1, 1)
	now := time.Unix(0, 0)
	if !b.tryConsume(now, 1) {
		t.Fatalf("expected initial token")
	}
	if b.tryConsume(now, 1) {
		t.Fatalf("expected bucket exhausted immediately after consuming")
	}
	later := now.Add(time.Second)
	if !b.tryConsume(later, 1) {
		t.Fatalf("expected refill after 1s at 1 token/s")
	}
}

func TestTokenBucketNonMonotonicClockDoesNotUnderflow(t *testing.T) {
	b := newTokenBucket(2, 1)
	now := time.Unix(100, 0)
	earlier := time.Unix(50, 0)
	if !b.tryConsume(now, 1) {
		t.Fatalf("expected initial token")
	}
	// A clock regression must not panic or permit unbounded consumption.
	b.tryConsume(earlier, 1)
}
