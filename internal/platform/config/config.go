package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Server struct {
	Addr        string
	Environment string

	// Mock auth
	JWTSigningKey string
	TokenTTL      time.Duration

	// Registry identifiers assigned on approval
	RegistryIDPrefix string

	// External collaborators; empty values mean "use in-memory"
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	AuditTopic   string

	// Async audit buffer size; 0 means synchronous appends
	AuditBuffer int

	// Lookup cache retention for verified creators
	LookupCacheTTL time.Duration

	// Per-IP sliding window over public endpoints; 0 disables limiting
	RateLimit       int
	RateLimitWindow time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:             envOr("VEDO_ADDR", ":8080"),
		Environment:      envOr("VEDO_ENV", "development"),
		JWTSigningKey:    envOr("VEDO_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:         durationOr("VEDO_TOKEN_TTL", 8*time.Hour),
		RegistryIDPrefix: envOr("VEDO_REGISTRY_PREFIX", "VEDO"),
		DatabaseURL:      os.Getenv("VEDO_DATABASE_URL"),
		RedisURL:         os.Getenv("VEDO_REDIS_URL"),
		KafkaBrokers:     os.Getenv("VEDO_KAFKA_BROKERS"),
		AuditTopic:       envOr("VEDO_AUDIT_TOPIC", "vedo.audit"),
		AuditBuffer:      intOr("VEDO_AUDIT_BUFFER", 0),
		LookupCacheTTL:   durationOr("VEDO_LOOKUP_CACHE_TTL", 5*time.Minute),
		RateLimit:        intOr("VEDO_RATE_LIMIT", 120),
		RateLimitWindow:  durationOr("VEDO_RATE_LIMIT_WINDOW", time.Minute),
	}
	return cfg
}

// RedisConfig holds connection settings for the lookup cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns sensible pool defaults.
func DefaultRedisConfig(url string) RedisConfig {
	return RedisConfig{
		URL:          url,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
