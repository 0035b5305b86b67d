// Package pipeline computes the position of a floating element.
//
// This package implements the driver loop shared by the CLI, the HTTP API and
// library users. It measures the elements, derives the initial coordinates
// from the placement and runs the middleware list until one full pass
// completes without a reset.
//
// # Architecture
//
// One request goes through these steps:
//
//  1. Resolve: determine the writing direction and measure both elements
//  2. Place: derive x/y from the placement ([CoordsFromPlacement])
//  3. Refine: run each middleware in order, applying its instruction
//  4. Reset: when a middleware asks for it, update the placement and/or
//     rects, re-derive x/y and restart at step 3
//
// Middleware data accumulates across resets for the lifetime of the request.
// The number of resets is bounded by Options.MaxResets; exceeding it fails
// the request with [errors.ErrCodeResetLimit].
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Compute(ctx, "button", "tooltip", pipeline.Options{
//	    Placement:  geom.BottomPlacement,
//	    Platform:   adapter,
//	    Middleware: []middleware.Middleware{offset.Gap(8), flip.New(flip.Options{})},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Placement, res.X, res.Y)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/trace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and library users
// =============================================================================

const (
	// DefaultPlacement is used when Options.Placement is empty.
	DefaultPlacement = geom.BottomPlacement

	// DefaultStrategy is used when Options.Strategy is empty.
	DefaultStrategy = platform.Absolute

	// DefaultMaxResets bounds how often middleware may restart a request.
	DefaultMaxResets = 50
)

// =============================================================================
// Options - Request Configuration
// =============================================================================

// Options contains all configuration for one positioning request.
// The serializable fields are folded into the cache key by KeyOpts; the
// platform and middleware list reach it only through the scenario hash.
type Options struct {
	Placement geom.Placement    `json:"placement"`
	Strategy  platform.Strategy `json:"strategy"`
	MaxResets int               `json:"max_resets,omitempty"`
	Trace     bool              `json:"trace,omitempty"`

	// Runtime options (not serialized)
	Platform   platform.Adapter        `json:"-"`
	Middleware []middleware.Middleware `json:"-"`
	Obstacles  []middleware.Obstacle   `json:"-"`
	Logger     *log.Logger             `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Placement == "" {
		o.Placement = DefaultPlacement
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.MaxResets == 0 {
		o.MaxResets = DefaultMaxResets
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidatePlacement(string(o.Placement)); err != nil {
		return err
	}
	if err := errors.ValidateStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if o.MaxResets < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_resets cannot be negative (got %d)", o.MaxResets)
	}
	if o.Platform == nil {
		return errors.New(errors.ErrCodeInvalidInput, "platform is required")
	}

	// Names may repeat: middleware sharing a name share its data slot.
	for i, m := range o.Middleware {
		if m == nil {
			return errors.New(errors.ErrCodeInvalidInput, "middleware %d is nil", i)
		}
		if err := errors.ValidateName("middleware", m.Name()); err != nil {
			return err
		}
	}

	o.validated = true
	return nil
}

// KeyOpts returns cache key options for this request.
func (o *Options) KeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Placement: string(o.Placement),
		Strategy:  string(o.Strategy),
		MaxResets: o.MaxResets,
		Trace:     o.Trace,
	}
}

// MiddlewareNames returns the names of the configured middleware in order.
func (o *Options) MiddlewareNames() []string {
	names := make([]string, len(o.Middleware))
	for i, m := range o.Middleware {
		names[i] = m.Name()
	}
	return names
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one positioning request.
type Result struct {
	// RequestID identifies the request in logs, hooks and traces.
	RequestID string `json:"request_id"`

	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Placement geom.Placement    `json:"placement"`
	Strategy  platform.Strategy `json:"strategy"`

	// MiddlewareData is the final data of every middleware, keyed by name.
	// Results read back from a cache hold the JSON-decoded form of each
	// value rather than the middleware's own type.
	MiddlewareData middleware.Data `json:"middleware_data"`

	// Resets is how many times middleware restarted the request.
	Resets int `json:"resets"`

	// Duration is the time spent computing, excluding cache lookups.
	Duration time.Duration `json:"duration"`

	// Trace is set when Options.Trace was true.
	Trace *trace.Trace `json:"trace,omitempty"`

	// Cached reports whether the result came from the cache.
	Cached bool `json:"cached"`
}

// Coords returns the final coordinates.
func (r *Result) Coords() geom.Coords {
	return geom.Coords{X: r.X, Y: r.Y}
}

// MarshalResult serializes a result for caching or transport.
func MarshalResult(r *Result) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return data, nil
}

// UnmarshalResult reverses MarshalResult.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &r, nil
}
