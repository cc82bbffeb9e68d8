package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRequestBurst(t *testing.T) {
	// Near-zero refill so only the burst is available during the test.
	rl := NewRateLimiter(0.001, 3, true)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest(), "request %d", i)
	}
	assert.False(t, rl.AllowRequest())

	stats := rl.GetStats()
	assert.Equal(t, int64(3), stats.Allowed)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, 3, stats.Burst)
	assert.True(t, stats.Enabled)
}

func TestDisabledLimiterAllowsAll(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, false)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.AllowRequest())
	}
	assert.Equal(t, int64(10), rl.GetStats().Allowed)
	assert.Equal(t, int64(0), rl.GetStats().Rejected)
}

func TestBurstFloor(t *testing.T) {
	rl := NewRateLimiter(1, 0, true)
	assert.Equal(t, 1, rl.GetStats().Burst)
}
