// Package hide reports when the floating element should be hidden.
//
// Two checks are available:
//   - [ReferenceHidden]: the reference is fully clipped by its own clipping
//     ancestors (scrolled out of view), so the floating element points at
//     nothing.
//   - [Escaped]: the floating element is fully outside the reference's
//     clipping context.
//
// Hide never moves the element. It only writes [Data], which the caller uses
// to toggle visibility. Two hide middleware with different strategies may run
// in one pipeline; each fills in its own half of the shared slot.
package hide

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/overflow"
)

// Name is the middleware data slot owned by hide.
const Name = "hide"

// Strategy selects the check.
type Strategy string

// Strategies.
const (
	ReferenceHidden Strategy = "referenceHidden"
	Escaped         Strategy = "escaped"
)

// Options configures hide.
type Options struct {
	// Strategy defaults to ReferenceHidden.
	Strategy Strategy `json:"strategy,omitempty" toml:"strategy" yaml:"strategy"`

	// Detection options. ElementContext and AltBoundary are overridden by
	// the strategy.
	overflow.Options `json:"-" toml:"-" yaml:"-"`
}

// Data is what hide stores in its middleware data slot. The offsets are the
// overflow minus the element's size on that axis; a side >= 0 is fully
// clipped.
type Data struct {
	ReferenceHidden        bool             `json:"referenceHidden,omitempty"`
	ReferenceHiddenOffsets *geom.SideObject `json:"referenceHiddenOffsets,omitempty"`
	Escaped                bool             `json:"escaped,omitempty"`
	EscapedOffsets         *geom.SideObject `json:"escapedOffsets,omitempty"`
}

// Hide is the hide middleware.
type Hide struct {
	opts Options
}

// New creates a hide middleware.
func New(opts Options) *Hide {
	return &Hide{opts: opts}
}

// Name implements middleware.Middleware.
func (*Hide) Name() string { return Name }

// Evaluate implements middleware.Middleware.
func (h *Hide) Evaluate(ctx context.Context, state *middleware.State) (middleware.Instruction, error) {
	data, _ := middleware.Lookup[Data](state.MiddlewareData, Name)
	opts := h.opts.Options

	switch h.opts.Strategy {
	case Escaped:
		opts.AltBoundary = true
		res, err := overflow.Detect(ctx, state, opts)
		if err != nil {
			return middleware.Instruction{}, err
		}
		offsets := sideOffsets(res.SideObject, state.Rects.Floating)
		data.EscapedOffsets = &offsets
		data.Escaped = fullyClipped(offsets)
	default:
		opts.ElementContext = middleware.ReferenceContext
		res, err := overflow.Detect(ctx, state, opts)
		if err != nil {
			return middleware.Instruction{}, err
		}
		offsets := sideOffsets(res.SideObject, state.Rects.Reference)
		data.ReferenceHiddenOffsets = &offsets
		data.ReferenceHidden = fullyClipped(offsets)
	}
	return middleware.Instruction{Data: data}, nil
}

func sideOffsets(o geom.SideObject, r geom.Rect) geom.SideObject {
	return geom.SideObject{
		Top:    o.Top - r.Height,
		Right:  o.Right - r.Width,
		Bottom: o.Bottom - r.Height,
		Left:   o.Left - r.Width,
	}
}

func fullyClipped(o geom.SideObject) bool {
	for _, s := range geom.Sides {
		if o.Get(s) >= 0 {
			return true
		}
	}
	return false
}

var _ middleware.Middleware = (*Hide)(nil)
