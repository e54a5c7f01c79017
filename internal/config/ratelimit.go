package config

import "time"

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        parseBoolEnv("RATE_LIMIT_ENABLED", true),
		Capacity:       parseIntEnv("RATE_LIMIT_CAPACITY", 30),
		RefillTokens:   parseIntEnv("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: time.Second,
		TTL:            10 * time.Minute,
		Prefix:         getEnv("RATE_LIMIT_PREFIX", "rl"),
	}
	if d, err := parseDurationEnv("RATE_LIMIT_REFILL_INTERVAL", "1s"); err == nil && d > 0 {
		cfg.RefillInterval = d
	}
	if d, err := parseDurationEnv("RATE_LIMIT_TTL", "10m"); err == nil && d > 0 {
		cfg.TTL = d
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}
