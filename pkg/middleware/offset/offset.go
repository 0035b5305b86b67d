// Package offset translates the floating element away from (or along) its
// reference.
//
// MainAxis moves the element along the placement's own axis: a positive
// value always increases the gap to the reference, whichever side it is on.
// CrossAxis slides it along the alignment axis, mirrored in right-to-left
// layouts for top and bottom placements. AlignmentAxis, when set, replaces
// CrossAxis for aligned placements and is negated for "-end" alignments so it
// always moves the element away from its aligned edge.
package offset

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
)

// Name is the middleware data slot owned by offset.
const Name = "offset"

// Options configures the translation.
type Options struct {
	MainAxis      float64  `json:"mainAxis" toml:"main_axis" yaml:"main_axis"`
	CrossAxis     float64  `json:"crossAxis" toml:"cross_axis" yaml:"cross_axis"`
	AlignmentAxis *float64 `json:"alignmentAxis,omitempty" toml:"alignment_axis" yaml:"alignment_axis"`
}

// Data records the applied translation and the placement it was computed for.
type Data struct {
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Placement geom.Placement `json:"placement"`
}

// Offset is the offset middleware.
type Offset struct {
	opts Options
}

// New creates an offset middleware.
func New(opts Options) *Offset {
	return &Offset{opts: opts}
}

// Gap is shorthand for an offset along the main axis only.
func Gap(v float64) *Offset {
	return New(Options{MainAxis: v})
}

// Name implements middleware.Middleware.
func (*Offset) Name() string { return Name }

// Evaluate implements middleware.Middleware.
func (o *Offset) Evaluate(ctx context.Context, state *middleware.State) (middleware.Instruction, error) {
	rtl, err := state.Platform.IsRTL(ctx, state.Elements.Floating)
	if err != nil {
		return middleware.Instruction{}, errors.Platform(err, "check rtl")
	}
	diff := o.Coords(state.Placement, rtl)
	return middleware.Instruction{
		X:    middleware.Float(state.X + diff.X),
		Y:    middleware.Float(state.Y + diff.Y),
		Data: Data{X: diff.X, Y: diff.Y, Placement: state.Placement},
	}, nil
}

// Coords converts the options to an x/y translation for placement p.
func (o *Offset) Coords(p geom.Placement, rtl bool) geom.Coords {
	side := p.Side()
	align := p.Alignment()
	vertical := geom.SideAxis(p) == geom.AxisY

	mainMulti := 1.0
	if side == geom.Left || side == geom.Top {
		mainMulti = -1
	}
	crossMulti := 1.0
	if rtl && vertical {
		crossMulti = -1
	}

	mainAxis := o.opts.MainAxis
	crossAxis := o.opts.CrossAxis
	if align != geom.AlignNone && o.opts.AlignmentAxis != nil {
		crossAxis = *o.opts.AlignmentAxis
		if align == geom.AlignEnd {
			crossAxis = -crossAxis
		}
	}

	if vertical {
		return geom.Coords{X: crossAxis * crossMulti, Y: mainAxis * mainMulti}
	}
	return geom.Coords{X: mainAxis * mainMulti, Y: crossAxis * crossMulti}
}

var _ middleware.Middleware = (*Offset)(nil)
