package config

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

func (c *Config) validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateSearch(); err != nil {
		return err
	}

	if c.GraphPath == "" {
		return fmt.Errorf("GRAPH_PATH is required")
	}

	return nil
}

func validPort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be a valid integer: %w", name, err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535", name)
	}

	return nil
}

func (c *Config) validateNetwork() error {
	if err := validPort("PORT", c.Port); err != nil {
		return err
	}
	if err := validPort("ADMIN_PORT", c.AdminPort); err != nil {
		return err
	}
	if c.Port == c.AdminPort {
		return fmt.Errorf("ADMIN_PORT must differ from PORT")
	}

	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: (got %q)", c.ListenHost)
	}

	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("RATE_LIMIT must be positive and RATE_BURST at least 1")
	}

	return nil
}

func (c *Config) validateCORS() error {
	if c.AllowsAllOrigins() {
		return nil
	}
	for _, origin := range c.CORSOrigins {
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must be '*' or a list of origins without glob characters, got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogMaxSizeMB < 1 || c.LogMaxAgeDays < 0 {
		return fmt.Errorf("LOG_MAX_SIZE_MB must be at least 1 and LOG_MAX_AGE_DAYS not negative")
	}

	return nil
}

func (c *Config) validateSearch() error {
	if !(c.AbortFactor > 0) || math.IsInf(c.AbortFactor, 0) {
		return fmt.Errorf("ABORT_FACTOR must be a positive number, got %v", c.AbortFactor)
	}
	if !(c.FallbackAbortDistanceM > 0) {
		return fmt.Errorf("FALLBACK_ABORT_DISTANCE_M must be positive, got %v", c.FallbackAbortDistanceM)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive")
	}

	return nil
}
