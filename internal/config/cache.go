package config

import (
	"strings"
	"time"
)

// CacheConfig controls the response cache middleware. Caching only
// ever applies to public browse and calendar reads — registration
// endpoints are never cached.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment with
// sensible defaults. The short default TTL keeps attendance counts
// in browse responses close to live.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      parseBool(getenv("CACHE_ENABLED", "true")),
		TTL:          parseCacheDur(getenv("CACHE_TTL", "15s")),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoiDefault(getenv("CACHE_MAX_BODY_BYTES", "1048576"), 1<<20),
	}
}

func parseCacheDur(s string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
