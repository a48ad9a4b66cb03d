package ratelimit

import (
	"math"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	// DefaultBurst caps the default bucket; zero means DefaultLimit.
	DefaultBurst    int
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a Config whose default bucket refills at rps requests per
// second with the given burst. Embedding-backed endpoints get tighter buckets.
// A non-positive rps disables limiting.
func NewConfig(rps float64, burst int) *Config {
	if rps <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    int(math.Ceil(rps * 60)),
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Calls the embedding provider for every section
		{Path: "/v1/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 5},
		{Path: "/v1/insights", Method: "POST", Limit: 60, Window: time.Minute, Burst: 5},
		// One embedding per example, up to the batch size
		{Path: "/v1/examples", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
	}
}
