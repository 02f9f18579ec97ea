// Package config loads application configuration from environment
// variables. A .env file, when present, is loaded by main before
// Load runs.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Strings for
// identifiers and secrets, ints for costs and TTLs. Everything has a
// development-friendly default except the JWT secret, which has no
// safe default.
type Config struct {
	Env            string        // application environment (dev/test/prod)
	Port           string        // HTTP port to listen on
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for password hashing
	PaymentDelay   time.Duration // artificial delay of the payment simulator
	ConsumerOn     bool          // run the registration event consumer
}

// Load reads configuration from the environment. The JWT secret is
// required; a missing value exits with a fatal log message.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   atoiDefault(getenv("ACCESS_TOKEN_TTL_MIN", "15"), 15),
		RefreshTTLDays: atoiDefault(getenv("REFRESH_TOKEN_TTL_DAYS", "7"), 7),
		BcryptCost:     atoiDefault(getenv("BCRYPT_COST", "10"), 10),
		PaymentDelay:   parseDur(getenv("PAYMENT_SIM_DELAY", "500ms")),
		ConsumerOn:     parseBool(getenv("NOTIFY_CONSUMER_ENABLED", "false")),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
