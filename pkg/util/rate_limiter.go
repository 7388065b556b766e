package util

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

// IPRateLimiter. one token bucket per client key. the least recently seen clients are evicted
// once maxTrackedClients buckets exist.
type IPRateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	r        rate.Limit
	burst    int
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	cache, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &IPRateLimiter{
		limiters: cache,
		r:        r,
		burst:    burst,
	}
}

// Get. bucket of key, created on first use.
func (l *IPRateLimiter) Get(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.r, l.burst)
	// another goroutine may have added key in between, keep whichever got in first
	if prev, ok, _ := l.limiters.PeekOrAdd(key, limiter); ok {
		return prev
	}
	return limiter
}
