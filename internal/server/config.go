package server

import (
	"fmt"
	"time"
)

// Default server settings.
const (
	DefaultAddr            = ":8080"
	DefaultMaxBatch        = 64
	DefaultConcurrency     = 8
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures the HTTP API.
type Config struct {
	// Addr is the listen address.
	Addr string

	// CacheTTL is how long computed results stay cached. Zero keeps the
	// runner's setting.
	CacheTTL time.Duration

	// MaxBatch caps the number of scenarios in one batch request.
	MaxBatch int

	// Concurrency caps how many scenarios of a batch run at once.
	Concurrency int

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64

	// ShutdownTimeout bounds how long in-flight requests may take to finish
	// once the server is asked to stop.
	ShutdownTimeout time.Duration
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// negative limits.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBatch < 0 || c.Concurrency < 0 || c.MaxBodyBytes < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("server config: limits must not be negative")
	}
	if c.MaxBatch == 0 {
		c.MaxBatch = DefaultMaxBatch
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return nil
}
