// Package pkg provides the core libraries for floatplace.
//
// # Overview
//
// Floatplace computes where a floating element (tooltip, popover, dropdown)
// should be drawn relative to its reference element. The position is bounded
// by clipping rectangles and explicit obstacles and is refined by a list of
// middleware that may restart the computation with a new placement.
//
// # Architecture
//
// The data flow for one request:
//
//	Scenario file / host adapter
//	         ↓
//	    [platform] (measure elements, clipping rects, scale, RTL)
//	         ↓
//	    [pipeline] (derive x/y from the placement, run middleware)
//	         ↓
//	    [middleware/offset] → [middleware/flip] → [middleware/hide]
//	         ↓                       ↓
//	    [overflow] (signed overflow per side, obstacle collisions)
//	         ↓
//	    Result {x, y, placement, middleware data}
//
// # Quick Start
//
//	adapter := static.New(geom.Rect{Width: 400, Height: 300}).
//	    Set(static.Element("button"), geom.Rect{X: 150, Y: 250, Width: 100, Height: 30}).
//	    Set(static.Element("tooltip"), geom.Rect{Width: 80, Height: 24})
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Compute(ctx, static.Element("button"), static.Element("tooltip"), pipeline.Options{
//	    Platform:   adapter,
//	    Middleware: []middleware.Middleware{offset.Gap(8), flip.New(flip.Options{})},
//	})
//
// # Main Packages
//
// ## Core
//
// [geom] - Sides, alignments, placements, rects and the placement algebra
// (opposite side, expanded placements, alignment sides).
//
// [platform] - The host adapter contract. Required queries plus optional
// capabilities resolved once with defaults. [platform/static] is an adapter
// over pre-measured rects.
//
// [overflow] - The overflow detector.
//
// [middleware] - The middleware protocol: state, instructions, resets and
// per-middleware data. Implementations live in [middleware/offset],
// [middleware/flip] and [middleware/hide].
//
// [pipeline] - The driver loop shared by the CLI, the HTTP API and library
// users, with result caching.
//
// ## Supporting
//
// [scenario] - TOML/YAML/JSON descriptions of a positioning request.
//
// [trace] - Per-request record of evaluations and resets, exported as
// Graphviz DOT or SVG.
//
// [cache] - Result cache with null, file and Redis backends.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for metrics and tracing integrations.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/middleware/flip/... # Specific package
//	go test -run Example ./...        # Examples only
//
// Redis tests run when FLOATPLACE_TEST_REDIS names a reachable server.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/geom
// [platform]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/platform
// [platform/static]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/platform/static
// [overflow]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/overflow
// [middleware]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/middleware
// [middleware/offset]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/middleware/offset
// [middleware/flip]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/middleware/flip
// [middleware/hide]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/middleware/hide
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/pipeline
// [scenario]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/scenario
// [trace]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/trace
// [cache]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/floatplace/pkg/observability
package pkg
