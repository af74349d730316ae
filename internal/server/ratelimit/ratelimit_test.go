package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/v1/analyses", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/api/v1/analyses", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/api/v1/analyses", "POST")
	assert.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/api/v1/analyses", "POST")
	assert.False(t, allowed, "third request exceeds burst of 2")
	assert.Equal(t, 60, info.Limit)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/api/v1/analyses", "POST")
		require.True(t, allowed)
	}

	allowed, _ := limiter.Allow("5.6.7.8", "/api/v1/analyses", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_Refill(t *testing.T) {
	cfg := &Config{
		Enabled: true,
		Endpoints: []EndpointConfig{
			// 100 tokens/sec so the bucket refills within the test
			{Path: "/api/v1/analyses", Method: "POST", Limit: 100, Window: time.Second, Burst: 1},
		},
	}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("c", "/api/v1/analyses", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/api/v1/analyses", "POST")
	require.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, _ = limiter.Allow("c", "/api/v1/analyses", "POST")
	assert.True(t, allowed, "bucket refills over time")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("c", "/api/v1/analyses", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_ZeroDefaultWindowStillLimits(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:      true,
		DefaultLimit: 2,
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("c", "/api/v1/analyses/current", "GET")
		require.True(t, allowed)
	}

	allowed, _ := limiter.Allow("c", "/api/v1/analyses/current", "GET")
	assert.False(t, allowed, "default limit applies even without a configured window")
}

func TestConfig_Match(t *testing.T) {
	cfg := testConfig()

	endpoint := cfg.match("/api/v1/analyses", "POST")
	assert.Equal(t, 60, endpoint.Limit)

	endpoint = cfg.match("/healthz", "GET")
	assert.Equal(t, 0, endpoint.Limit, "health endpoint is unlimited")

	endpoint = cfg.match("/api/v1/analyses/current", "GET")
	assert.Equal(t, cfg.DefaultLimit, endpoint.Limit, "unmatched paths use the default")
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_ANALYZE_LIMIT", "7")

	cfg := LoadConfig()

	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 7, cfg.Endpoints[0].Limit)
}
