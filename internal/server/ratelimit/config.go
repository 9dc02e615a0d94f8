package ratelimit

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/blakehenkel24-eng/slidetheory/internal/config"
)

// EndpointConfig is the limit applied to one method and path.
// A Path ending in "/" matches every path under it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration // refill period for Limit tokens
	Burst  int           // bucket capacity; Limit when 0
}

// envConfig mirrors the RATE_LIMIT_* environment variables
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED"          envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT"    envDefault:"300"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW"   envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	GenerateLimit   int           `env:"RATE_LIMIT_GENERATE_LIMIT"   envDefault:"30"`
	GenerateWindow  time.Duration `env:"RATE_LIMIT_GENERATE_WINDOW"  envDefault:"1h"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST"        envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST"        envSeparator:","`
}

// LoadConfig reads rate limiting settings from the environment
func LoadConfig() (*Config, error) {
	var ec envConfig
	if err := config.ParseEnv(&ec); err != nil {
		return nil, fmt.Errorf("rate limit config: %w", err)
	}
	if !ec.Enabled {
		return &Config{Enabled: false}, nil
	}
	if ec.DefaultLimit <= 0 || ec.DefaultWindow <= 0 {
		return nil, fmt.Errorf("rate limit config: default limit and window must be positive")
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    ec.DefaultLimit,
		DefaultWindow:   ec.DefaultWindow,
		CleanupInterval: ec.CleanupInterval,
		Whitelist:       ipSet(ec.Whitelist),
		Blacklist:       ipSet(ec.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(ec.GenerateLimit, ec.GenerateWindow),
	}, nil
}

// DefaultEndpointConfigs returns the per-endpoint limits. Generation calls the
// model and gets the strictest budget; scoring and search are cheap but still bounded.
func DefaultEndpointConfigs(generateLimit int, generateWindow time.Duration) []EndpointConfig {
	generateBurst := max(1, generateLimit/6)
	return []EndpointConfig{
		{Path: "/slides/generate", Method: http.MethodPost, Limit: generateLimit, Window: generateWindow, Burst: generateBurst},
		{Path: "/slides/generate/stream", Method: http.MethodPost, Limit: generateLimit, Window: generateWindow, Burst: generateBurst},
		{Path: "/slides/validate", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/slides/search", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/slides/", Method: http.MethodGet, Limit: 120, Window: time.Minute, Burst: 30},
	}
}

func ipSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
