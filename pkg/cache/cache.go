// Package cache stores computed positioning results by content hash.
//
// A positioning request described by a scenario is a pure function of its
// geometry and options, so its result can be reused. The [Cache] interface
// has three backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared across server instances
//
// Keys are produced by a [Keyer] so callers never build key strings by hand:
//
//	key := keyer.ResultKey(scenarioHash, cache.ResultKeyOpts{MaxResets: 50})
//	data, hit, err := c.Get(ctx, key)
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default time-to-live values.
const (
	// TTLResult is how long a computed result stays cached.
	TTLResult = 24 * time.Hour
)

// ResultKeyOpts are the request options that change a result without
// changing the scenario itself.
type ResultKeyOpts struct {
	Placement string `json:"placement"`
	Strategy  string `json:"strategy"`
	MaxResets int    `json:"max_resets"`
	Trace     bool   `json:"trace"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key for the result of a scenario.
	ResultKey(scenarioHash string, opts ResultKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(scenarioHash string, opts ResultKeyOpts) string {
	return hashKey("result", scenarioHash, opts)
}
