package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	// Config holds configuration settings for the flowd service
	Config struct {
		// API Server
		APIHost  string
		APIPort  int
		LogLevel string

		// Registry
		HomeURL   string
		FlowDebug bool

		ShutdownTimeout time.Duration
	}
)

const (
	DefaultShutdownTimeout = 10 * time.Second

	DefaultAPIPort  = 8080
	DefaultAPIHost  = "0.0.0.0"
	DefaultHomeURL  = "http://localhost:8080/"
	DefaultLogLevel = "info"
	MaxTCPPort      = 65535

	MaxShutdownSeconds = 600
)

var (
	ErrInvalidAPIPort         = errors.New("invalid API port")
	ErrInvalidHomeURL         = errors.New("home URL must be absolute")
	ErrInvalidLogLevel        = errors.New("invalid log level")
	ErrInvalidShutdownTimeout = errors.New(
		"shutdown timeout must be positive",
	)
)

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// NewDefaultConfig creates a configuration with sensible defaults for the
// HTTP API and the flow registry
func NewDefaultConfig() *Config {
	return &Config{
		APIPort:         DefaultAPIPort,
		APIHost:         DefaultAPIHost,
		LogLevel:        DefaultLogLevel,
		HomeURL:         DefaultHomeURL,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}
	if homeURL := os.Getenv("HOME_URL"); homeURL != "" {
		c.HomeURL = homeURL
	}
	if debug := os.Getenv("FLOW_DEBUG"); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("invalid FLOW_DEBUG: %q", debug)
		}
		c.FlowDebug = v
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}

	secs := int(c.ShutdownTimeout / time.Second)
	if err := loadEnvInt(
		"SHUTDOWN_TIMEOUT", &secs, 0, MaxShutdownSeconds,
	); err != nil {
		return err
	}
	c.ShutdownTimeout = time.Duration(secs) * time.Second

	return nil
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.LogLevel)
	}

	u, err := url.Parse(c.HomeURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: %q", ErrInvalidHomeURL, c.HomeURL)
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max). Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
