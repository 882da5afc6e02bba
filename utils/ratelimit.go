package utils

import (
	"math/rand"
	"time"
)

// RateLimiter enforces a randomized minimum spacing between consecutive
// browser interactions so the traffic pattern stays human-like.
type RateLimiter struct {
	minDelay time.Duration
	maxDelay time.Duration
	logger   *Logger

	lastRequest  time.Time
	hasRequested bool
	requestCount int
}

// NewRateLimiter creates a RateLimiter drawing delays uniformly from
// [minDelay, maxDelay].
func NewRateLimiter(minDelay, maxDelay time.Duration, logger *Logger) *RateLimiter {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}
	return &RateLimiter{minDelay: minDelay, maxDelay: maxDelay, logger: logger}
}

// Wait blocks until at least the chosen delay has elapsed since the
// previous call completed. The first call never blocks. Passing a
// customDelay overrides the random draw; a zero customDelay records the
// timestamp without sleeping.
func (r *RateLimiter) Wait(customDelay ...time.Duration) {
	var delay time.Duration
	if len(customDelay) > 0 {
		delay = customDelay[0]
	} else {
		delay = r.randomDelay()
	}

	if r.hasRequested {
		elapsed := time.Since(r.lastRequest)
		if elapsed < delay {
			sleep := delay - elapsed
			r.logger.Debug("[ratelimit] sleeping for %.2fs", sleep.Seconds())
			time.Sleep(sleep)
		}
	}

	r.lastRequest = time.Now()
	r.hasRequested = true
	r.requestCount++

	if r.requestCount%10 == 0 {
		r.logger.Info("[ratelimit] completed %d requests", r.requestCount)
	}
}

// Reset clears the last-request timestamp and the call counter.
func (r *RateLimiter) Reset() {
	r.lastRequest = time.Time{}
	r.hasRequested = false
	r.requestCount = 0
	r.logger.Debug("[ratelimit] reset")
}

// RequestCount returns the number of Wait calls since the last reset.
func (r *RateLimiter) RequestCount() int { return r.requestCount }

func (r *RateLimiter) randomDelay() time.Duration {
	if r.maxDelay <= r.minDelay {
		return r.minDelay
	}
	return r.minDelay + time.Duration(rand.Int63n(int64(r.maxDelay-r.minDelay)))
}
