package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/observability"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/trace"
)

// Runner encapsulates request execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options, as long as each request uses its own middleware
// instances or the middleware are themselves stateless.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long results stay cached. Zero means cache.TTLResult.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Compute positions floating against reference without caching.
func (r *Runner) Compute(ctx context.Context, reference, floating platform.Element, opts Options) (*Result, error) {
	return r.compute(ctx, reference, floating, &opts)
}

// ComputeWithCacheInfo positions floating against reference, reusing a
// cached result for the same scenario hash and options. An empty
// scenarioHash disables caching. The second result reports a cache hit.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, scenarioHash string, reference, floating platform.Element, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if scenarioHash == "" {
		res, err := r.compute(ctx, reference, floating, &opts)
		return res, false, err
	}

	cacheKey := r.Keyer.ResultKey(scenarioHash, opts.KeyOpts())
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := UnmarshalResult(data); err == nil {
			r.serveCached(ctx, cached, &opts)
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}

	res, err := r.compute(ctx, reference, floating, &opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := MarshalResult(res); err == nil {
		ttl := r.TTL
		if ttl <= 0 {
			ttl = cache.TTLResult
		}
		if err := r.Cache.Set(ctx, cacheKey, data, ttl); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		}
	}
	return res, false, nil
}

// serveCached gives a cached result its own request ID and reports it to the
// pipeline hooks like a computed one. A cached trace keeps the ID of the
// request that recorded it.
func (r *Runner) serveCached(ctx context.Context, res *Result, opts *Options) {
	start := time.Now()
	res.RequestID = uuid.NewString()
	res.Cached = true

	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, res.RequestID, string(opts.Placement))
	hooks.OnComputeComplete(ctx, res.RequestID, string(res.Placement), res.Resets, time.Since(start), nil)
	opts.Logger.Debug("served from cache", "request", res.RequestID, "placement", res.Placement)
}

// compute runs the driver loop. opts must not be shared between goroutines.
func (r *Runner) compute(ctx context.Context, reference, floating platform.Element, opts *Options) (res *Result, err error) {
	r.applyLogger(opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	requestID := uuid.NewString()
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, requestID, string(opts.Placement))

	var rec *trace.Recorder
	if opts.Trace {
		rec = trace.NewRecorder(requestID)
	}

	state := &middleware.State{
		Placement:        opts.Placement,
		InitialPlacement: opts.Placement,
		Strategy:         opts.Strategy,
		Elements:         middleware.Elements{Reference: reference, Floating: floating},
		Platform:         resolvePlatform(opts.Platform),
		MiddlewareData:   make(middleware.Data),
		Obstacles:        opts.Obstacles,
	}
	resets := 0
	defer func() {
		hooks.OnComputeComplete(ctx, requestID, string(state.Placement), resets, time.Since(start), err)
	}()

	rtl, err := state.Platform.IsRTL(ctx, floating)
	if err != nil {
		return nil, errors.Platform(err, "check rtl")
	}
	if err := r.measure(ctx, state); err != nil {
		return nil, err
	}
	place(state, rtl)

	for i := 0; i < len(opts.Middleware); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := opts.Middleware[i]
		instr, err := m.Evaluate(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		if instr.X != nil {
			state.X = *instr.X
		}
		if instr.Y != nil {
			state.Y = *instr.Y
		}
		if instr.Data != nil {
			state.MiddlewareData[m.Name()] = instr.Data
		}
		rec.Evaluate(m.Name(), state.Placement, state.X, state.Y)

		if instr.Reset == nil {
			continue
		}
		if resets >= opts.MaxResets {
			logger.Warn("reset limit exceeded",
				"request", requestID,
				"middleware", m.Name(),
				"limit", opts.MaxResets)
			return nil, errors.Wrap(errors.ErrCodeResetLimit,
				&errors.ResetLimitError{Limit: opts.MaxResets, LastReset: m.Name()},
				"placement did not settle")
		}
		resets++

		from := state.Placement
		if instr.Reset.Placement != "" {
			state.Placement = instr.Reset.Placement
		}
		switch {
		case instr.Reset.Rects != nil:
			state.Rects = *instr.Reset.Rects
		case instr.Reset.RefetchRects:
			if err := r.measure(ctx, state); err != nil {
				return nil, err
			}
		}
		rec.Reset(m.Name(), from, instr.Reset.Placement, state.X, state.Y)
		place(state, rtl)

		logger.Debug("reset",
			"request", requestID,
			"middleware", m.Name(),
			"from", from,
			"to", state.Placement)
		hooks.OnReset(ctx, requestID, m.Name(), string(from), string(state.Placement))

		i = -1
	}

	rec.Converge(state.Placement, state.X, state.Y)
	res = &Result{
		RequestID:      requestID,
		X:              state.X,
		Y:              state.Y,
		Placement:      state.Placement,
		Strategy:       state.Strategy,
		MiddlewareData: state.MiddlewareData,
		Resets:         resets,
		Duration:       time.Since(start),
		Trace:          rec.Trace(),
	}

	logger.Info("computed position",
		"request", requestID,
		"placement", res.Placement,
		"resets", resets,
		"duration", res.Duration)
	return res, nil
}

// measure fetches the element rects into state.
func (r *Runner) measure(ctx context.Context, state *middleware.State) error {
	rects, err := state.Platform.GetElementRects(ctx, platform.ElementRectsRequest{
		Reference: state.Elements.Reference,
		Floating:  state.Elements.Floating,
		Strategy:  state.Strategy,
	})
	if err != nil {
		return errors.Platform(err, "get element rects")
	}
	state.Rects = rects
	return nil
}

// place derives the coordinates from the current placement and rects.
func place(state *middleware.State, rtl bool) {
	c := CoordsFromPlacement(state.Rects, state.Placement, rtl)
	state.X, state.Y = c.X, c.Y
}

// resolvePlatform avoids re-wrapping an already resolved platform, which
// would hide which optional capabilities the host really provides.
func resolvePlatform(a platform.Adapter) *platform.Platform {
	if p, ok := a.(*platform.Platform); ok {
		return p
	}
	return platform.New(a)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
