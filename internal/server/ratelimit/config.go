package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific
// endpoint. Paths ending in "/" are prefix-matched.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointConfig
}

// DefaultConfig returns the reviewer's endpoint tiers. Analysis calls are the
// expensive tier since each one is a provider API call.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/v1/analyses", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
			{Path: "/api/v1/analyses/current/export/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		},
	}
}

// LoadConfig builds a Config from environment variables, falling back to
// DefaultConfig values.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	if limit := getEnvInt("RATE_LIMIT_ANALYZE_LIMIT", 0); limit > 0 {
		cfg.Endpoints[0].Limit = limit
	}
	return cfg
}

// match finds the endpoint configuration for a request. The health endpoint
// is always unlimited; unmatched paths use the default limit.
func (c *Config) match(path, method string) *EndpointConfig {
	if path == "/healthz" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range c.Endpoints {
		endpoint := &c.Endpoints[i]
		if endpoint.Method != method {
			continue
		}
		if endpoint.Path == path {
			return endpoint
		}
		if strings.HasSuffix(endpoint.Path, "/") && strings.HasPrefix(path, endpoint.Path) {
			return endpoint
		}
	}

	window := c.DefaultWindow
	if window <= 0 {
		// A zero window would make the refill rate infinite
		window = time.Minute
	}
	return &EndpointConfig{
		Path:   path,
		Method: method,
		Limit:  c.DefaultLimit,
		Window: window,
		Burst:  c.DefaultLimit,
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
