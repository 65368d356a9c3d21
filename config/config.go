// Package config provides environment-driven configuration for the routing
// server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Mammutor/NINA/routing"
)

// Config holds all application configuration values.
type Config struct {
	Port          string
	ListenHost    string
	AdminPort     string
	GraphPath     string
	AddressesPath string
	CORSOrigins   []string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int

	RateLimit float64
	RateBurst int

	AbortFactor            float64
	FallbackAbortDistanceM float64
	SearchTimeout          time.Duration
	BidirectionalGraph     bool

	WeightsFile string
	Weights     routing.WeightTable
}

// Load reads configuration from a .env file (when present) and environment
// variables with sensible defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               envOrDefault("PORT", "8080"),
		ListenHost:         envOrDefault("LISTEN_HOST", "0.0.0.0"),
		AdminPort:          envOrDefault("ADMIN_PORT", "9090"),
		GraphPath:          envOrDefault("GRAPH_PATH", "data/graph.json"),
		AddressesPath:      envOrDefault("ADDRESSES_PATH", ""),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFile:            envOrDefault("LOG_FILE", ""),
		WeightsFile:        envOrDefault("WEIGHTS_FILE", ""),
		BidirectionalGraph: envOrDefault("BIDIRECTIONAL_GRAPH", "false") == "true",
	}

	var err error
	if cfg.LogMaxSizeMB, err = envInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.LogMaxAgeDays, err = envInt("LOG_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = envFloat("RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = envInt("RATE_BURST", 40); err != nil {
		return nil, err
	}
	if cfg.AbortFactor, err = envFloat("ABORT_FACTOR", 2.0); err != nil {
		return nil, err
	}
	if cfg.FallbackAbortDistanceM, err = envFloat("FALLBACK_ABORT_DISTANCE_M", 20000); err != nil {
		return nil, err
	}

	timeout := envOrDefault("SEARCH_TIMEOUT", "30s")
	if cfg.SearchTimeout, err = time.ParseDuration(timeout); err != nil {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be a duration: %w", err)
	}

	origins := envOrDefault("CORS_ORIGINS", "*")
	cfg.CORSOrigins = strings.Split(origins, ",")
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	cfg.Weights = routing.DefaultWeightTable()
	if cfg.WeightsFile != "" {
		if cfg.Weights, err = LoadWeights(cfg.WeightsFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the public listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// AdminAddr returns the admin listen address in host:port format.
func (c *Config) AdminAddr() string {
	return c.ListenHost + ":" + c.AdminPort
}

// AllowsAllOrigins reports whether CORS is configured with the wildcard.
func (c *Config) AllowsAllOrigins() bool {
	return len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v, err := strconv.ParseFloat(envOrDefault(key, strconv.FormatFloat(fallback, 'f', -1, 64)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}
