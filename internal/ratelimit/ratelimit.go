package ratelimit

import (
	"sync/atomic"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all API requests
type RateLimiter struct {
	limiter *rate.Limiter
	enabled bool

	allowed  atomic.Int64
	rejected atomic.Int64
}

// Stats is a snapshot of limiter counters
type Stats struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`
	Allowed           int64   `json:"allowed"`
	Rejected          int64   `json:"rejected"`
}

// NewRateLimiter creates a limiter refilling at requestsPerSecond with the
// given burst. A disabled limiter allows everything but still counts.
func NewRateLimiter(requestsPerSecond float64, burst int, enabled bool) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		enabled: enabled,
	}
}

// AllowRequest checks if a request is allowed based on rate limits
// Returns true if allowed, false if rate limit exceeded
func (rl *RateLimiter) AllowRequest() bool {
	if rl.enabled && !rl.limiter.Allow() {
		rl.rejected.Add(1)
		return false
	}
	rl.allowed.Add(1)
	return true
}

// GetStats returns current statistics
func (rl *RateLimiter) GetStats() Stats {
	return Stats{
		Enabled:           rl.enabled,
		RequestsPerSecond: float64(rl.limiter.Limit()),
		Burst:             rl.limiter.Burst(),
		Allowed:           rl.allowed.Load(),
		Rejected:          rl.rejected.Load(),
	}
}
