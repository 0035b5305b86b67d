// Package middleware defines the protocol between the positioning pipeline
// and the steps that adjust a placement.
//
// A [Middleware] reads the current [State] and answers with an
// [Instruction]: new coordinates, data to remember, and/or a [Reset] that
// restarts the whole middleware list under a different placement. The
// driver lives in package pipeline; this package only describes the
// contract both sides agree on.
//
// # Data ownership
//
// Every middleware owns one slot in [State.MiddlewareData], keyed by its
// Name. The driver replaces that slot with Instruction.Data after each
// evaluation and keeps it across resets for the lifetime of one request.
// Other middleware may read a slot but never write it. Use [Lookup] for
// typed access:
//
//	prev, ok := middleware.Lookup[flip.Data](state.MiddlewareData, flip.Name)
package middleware

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// Middleware is one step of the positioning pipeline.
type Middleware interface {
	// Name identifies the middleware's data slot. Middleware that share a
	// name share the slot; each sees what the previous one stored.
	Name() string

	// Evaluate inspects state and returns what the driver should do next.
	// Errors abort the current pipeline run.
	Evaluate(ctx context.Context, state *State) (Instruction, error)
}

// Func adapts a function to the Middleware interface.
type Func struct {
	ID string
	Fn func(ctx context.Context, state *State) (Instruction, error)
}

// Name implements Middleware.
func (f Func) Name() string { return f.ID }

// Evaluate implements Middleware.
func (f Func) Evaluate(ctx context.Context, state *State) (Instruction, error) {
	return f.Fn(ctx, state)
}

// Elements holds the handles being positioned.
type Elements struct {
	Reference platform.Element
	Floating  platform.Element
}

// Get returns the handle for the given context.
func (e Elements) Get(c ElementContext) platform.Element {
	if c == ReferenceContext {
		return e.Reference
	}
	return e.Floating
}

// ElementContext names which of the two elements an operation refers to.
type ElementContext string

// Element contexts.
const (
	FloatingContext  ElementContext = "floating"
	ReferenceContext ElementContext = "reference"
)

// Opposite returns the other element context.
func (c ElementContext) Opposite() ElementContext {
	if c == ReferenceContext {
		return FloatingContext
	}
	return ReferenceContext
}

// Obstacle is an element the floating element must not overlap, with its
// bounding rect in viewport coordinates.
type Obstacle struct {
	Node platform.Element
	Rect geom.ClientRect
}

// NewObstacle builds an Obstacle from a measured rect.
func NewObstacle(node platform.Element, r geom.Rect) Obstacle {
	return Obstacle{Node: node, Rect: geom.RectToClientRect(r)}
}

// State is the pipeline context one middleware evaluation sees.
type State struct {
	// X and Y are the proposed, not yet applied, floating coordinates.
	X, Y float64

	Placement        geom.Placement
	InitialPlacement geom.Placement
	Strategy         platform.Strategy

	Rects    platform.ElementRects
	Elements Elements
	Platform *platform.Platform

	// MiddlewareData accumulates per-middleware data across resets.
	MiddlewareData Data

	// Obstacles are checked for collisions by the overflow detector.
	Obstacles []Obstacle
}

// Coords returns the proposed coordinates.
func (s *State) Coords() geom.Coords {
	return geom.Coords{X: s.X, Y: s.Y}
}

// Instruction is a middleware's answer to the driver. The zero value means
// "nothing to change, continue".
type Instruction struct {
	// X and Y, when set, replace the proposed coordinates.
	X, Y *float64

	// Data, when non-nil, replaces the middleware's data slot.
	Data any

	// Reset, when non-nil, restarts the pipeline from the first middleware.
	Reset *Reset
}

// Reset describes the state changes applied before the pipeline restarts.
type Reset struct {
	// Placement, when set, becomes the new stateful placement.
	Placement geom.Placement

	// Rects, when set, replaces the measured rects.
	Rects *platform.ElementRects

	// RefetchRects asks the driver to measure the elements again.
	RefetchRects bool
}

// ResetTo is shorthand for an instruction that resets to placement p.
func ResetTo(p geom.Placement) *Reset {
	return &Reset{Placement: p}
}

// Float returns a pointer to v, for Instruction.X and Instruction.Y.
func Float(v float64) *float64 { return &v }
