package cache

import (
	"context"
	"time"

	"github.com/matzehuels/floatplace/pkg/observability"
)

// Instrumented reports hits, misses and writes of the wrapped cache to
// the registered observability hooks.
type Instrumented struct {
	Cache
	keyType string
}

// Instrument wraps c so every Get and Set is reported under keyType.
func Instrument(c Cache, keyType string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &Instrumented{Cache: c, keyType: keyType}
}

// Get implements Cache.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, c.keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, c.keyType)
	}
	return data, hit, nil
}

// Set implements Cache.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}
