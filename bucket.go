package gossipguard

import (
	"time"

	"golang.org/x/time/rate"
)

// tokenBucket is a per-peer leaky-bucket rate limiter with real-time
// refill. It wraps golang.org/x/time/rate.Limiter, which implements the
// same fractional-token, wall-clock-refill semantics spec.md §4.2
// describes by hand: tokens accrue at a fixed rate up to a capacity, and
// a call either consumes a token and succeeds or leaves the bucket
// untouched and fails.
//
// Passing an explicit `now` (rather than relying on the limiter's
// internal clock) lets tests drive the refill deterministically without
// sleeping, and keeps the bucket immune to non-monotonic wall-clock
// jumps: x/time/rate clamps tokens to [0, capacity] internally and never
// lets elapsed time go negative in a way that would underflow.
type tokenBucket struct {
	limiter *rate.Limiter
}

// newTokenBucket creates a bucket at full capacity.
func newTokenBucket(capacity float64, refillPerSecond float64) *tokenBucket {
	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(refillPerSecond), int(capacity)),
	}
}

// tryConsume refills based on elapsed time since the last call, then
// consumes n tokens if at least that many are available. It reports
// whether the consumption happened.
func (b *tokenBucket) tryConsume(now time.Time, n int) bool {
	return b.limiter.AllowN(now, n)
}
