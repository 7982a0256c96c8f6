package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Throttle is a per-key token bucket for general API traffic.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	overflow *rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewThrottle(perSecond float64, burst int) *Throttle {
	return &Throttle{
		limiters: make(map[string]*rate.Limiter),
		overflow: rate.NewLimiter(rate.Limit(perSecond), burst),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow consumes one token for key.
func (t *Throttle) Allow(key string) bool {
	return t.limiter(key).Allow()
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if limiter, ok := t.limiters[key]; ok {
		return limiter
	}
	if len(t.limiters) >= maxTrackedKeys {
		t.sweep()
	}
	// Keys that arrive while every tracked bucket is still draining share one
	// bucket.
	if len(t.limiters) >= maxTrackedKeys {
		return t.overflow
	}
	limiter := rate.NewLimiter(t.rate, t.burst)
	t.limiters[key] = limiter
	return limiter
}

// sweep drops buckets that have refilled completely; they hold no state a
// fresh bucket would not.
func (t *Throttle) sweep() {
	for key, limiter := range t.limiters {
		if limiter.Tokens() >= float64(t.burst) {
			delete(t.limiters, key)
		}
	}
}
