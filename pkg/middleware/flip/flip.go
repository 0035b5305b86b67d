// Package flip implements the placement fallback search.
//
// When the floating element overflows (or collides) at its current placement,
// flip resets the pipeline to the next candidate placement. Candidates are
// the initial placement followed by the fallback placements, either supplied
// explicitly or derived from the initial placement:
//
//	bottom        -> [bottom, top]
//	bottom-start  -> [bottom-start, bottom-end, top-start, top-end]
//
// Every evaluation is recorded in the middleware data as an [Attempt]. Once
// all candidates have been tried, flip settles on the best one seen:
//
//  1. Among attempts whose main-side overflow is <= 0, the one with the
//     smallest alignment overflow (first seen wins ties).
//  2. Otherwise the fallback strategy: [BestFit] picks the smallest sum of
//     positive overflows, [InitialPlacement] returns to where it started.
//
// The resolved placement may still overflow; flip never fails because
// nothing fits.
package flip

import (
	"context"
	"slices"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/overflow"
)

// Name is the middleware data slot owned by flip.
const Name = "flip"

// FallbackStrategy decides the placement when no candidate fits.
type FallbackStrategy string

// Fallback strategies.
const (
	BestFit          FallbackStrategy = "bestFit"
	InitialPlacement FallbackStrategy = "initialPlacement"
)

// Valid reports whether s is a known strategy. The empty string is valid and
// means BestFit.
func (s FallbackStrategy) Valid() bool {
	return s == "" || s == BestFit || s == InitialPlacement
}

// SideDirection selects whether, and in which order, placements on the
// perpendicular axis are added to the derived fallbacks.
type SideDirection string

// Side directions.
const (
	DirectionNone  SideDirection = "none"
	DirectionStart SideDirection = "start"
	DirectionEnd   SideDirection = "end"
)

// Valid reports whether d is a known direction. The empty string is valid
// and means DirectionNone.
func (d SideDirection) Valid() bool {
	return d == "" || d == DirectionNone || d == DirectionStart || d == DirectionEnd
}

// Options configures flip. The zero value checks both axes, derives
// fallbacks with alignment flipping and resolves by BestFit.
type Options struct {
	// MainAxis checks overflow on the placement's own side. Default true.
	MainAxis *bool `json:"mainAxis,omitempty" toml:"main_axis" yaml:"main_axis"`

	// CrossAxis checks overflow on the alignment sides. Default true.
	CrossAxis *bool `json:"crossAxis,omitempty" toml:"cross_axis" yaml:"cross_axis"`

	// FallbackPlacements are tried in order after the initial placement.
	// Nil derives them; an empty non-nil slice disables fallbacks.
	FallbackPlacements []geom.Placement `json:"fallbackPlacements,omitempty" toml:"fallback_placements" yaml:"fallback_placements"`

	// FallbackStrategy applies when nothing fits on the main axis.
	FallbackStrategy FallbackStrategy `json:"fallbackStrategy,omitempty" toml:"fallback_strategy" yaml:"fallback_strategy"`

	// FallbackAxisSideDirection adds perpendicular placements to the derived
	// fallbacks. Ignored when FallbackPlacements is set.
	FallbackAxisSideDirection SideDirection `json:"fallbackAxisSideDirection,omitempty" toml:"fallback_axis_side_direction" yaml:"fallback_axis_side_direction"`

	// FlipAlignment includes opposite-alignment variants. Default true.
	FlipAlignment *bool `json:"flipAlignment,omitempty" toml:"flip_alignment" yaml:"flip_alignment"`

	// Detection options passed to overflow.Detect.
	overflow.Options `json:"-" toml:"-" yaml:"-"`
}

// Validate checks the enumerated fields and explicit fallbacks.
func (o Options) Validate() error {
	if !o.FallbackStrategy.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid fallback strategy: %q (must be one of: bestFit, initialPlacement)", o.FallbackStrategy)
	}
	if !o.FallbackAxisSideDirection.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid fallback axis side direction: %q (must be one of: none, start, end)", o.FallbackAxisSideDirection)
	}
	for _, p := range o.FallbackPlacements {
		if err := errors.ValidatePlacement(string(p)); err != nil {
			return err
		}
	}
	return nil
}

// Attempt records the overflow of one evaluated placement.
//
// Overflows holds, in order, the main-side overflow (when MainAxis is on)
// followed by the main and cross alignment-side overflows (when CrossAxis is
// on).
type Attempt struct {
	Placement geom.Placement `json:"placement"`
	Overflows []float64      `json:"overflows"`
}

// Data is what flip stores in its middleware data slot.
type Data struct {
	// Index is the position in the candidate list of the placement under
	// evaluation; 0 is the initial placement.
	Index int `json:"index"`

	// Overflows is the append-only evaluation history. When no candidate
	// fits, the last entry repeats the resolved placement: it is recorded
	// again by the pass that runs after the resolving reset.
	Overflows []Attempt `json:"overflows"`
}

// Flip is the flip middleware. Create one with New.
type Flip struct {
	opts Options
}

// New creates a flip middleware.
func New(opts Options) *Flip {
	return &Flip{opts: opts}
}

// Name implements middleware.Middleware.
func (*Flip) Name() string { return Name }

// Candidates returns the ordered placements flip will try for initial.
func (f *Flip) Candidates(initial geom.Placement, rtl bool) []geom.Placement {
	fallbacks := f.opts.FallbackPlacements
	if fallbacks == nil {
		if initial.IsBase() || !enabled(f.opts.FlipAlignment) {
			fallbacks = []geom.Placement{geom.OppositePlacement(initial)}
		} else {
			fallbacks = geom.ExpandedPlacements(initial)
		}
		if dir := f.opts.FallbackAxisSideDirection; dir != "" && dir != DirectionNone {
			fallbacks = append(fallbacks, geom.OppositeAxisPlacements(initial, enabled(f.opts.FlipAlignment), geom.Alignment(dir), rtl)...)
		}
	}
	return append([]geom.Placement{initial}, fallbacks...)
}

// Evaluate implements middleware.Middleware.
func (f *Flip) Evaluate(ctx context.Context, state *middleware.State) (middleware.Instruction, error) {
	rtl, err := state.Platform.IsRTL(ctx, state.Elements.Floating)
	if err != nil {
		return middleware.Instruction{}, errors.Platform(err, "check rtl")
	}
	placements := f.Candidates(state.InitialPlacement, rtl)

	result, err := overflow.Detect(ctx, state, f.opts.Options)
	if err != nil {
		return middleware.Instruction{}, err
	}

	var overflows []float64
	if enabled(f.opts.MainAxis) {
		overflows = append(overflows, result.Get(state.Placement.Side()))
	}
	if enabled(f.opts.CrossAxis) {
		main, cross := geom.AlignmentSides(state.Placement, state.Rects.Reference, state.Rects.Floating, rtl)
		overflows = append(overflows, result.Get(main), result.Get(cross))
	}

	prev, _ := middleware.Lookup[Data](state.MiddlewareData, Name)
	history := make([]Attempt, len(prev.Overflows), len(prev.Overflows)+1)
	copy(history, prev.Overflows)
	history = append(history, Attempt{Placement: state.Placement, Overflows: overflows})

	data := Data{Index: prev.Index, Overflows: history}

	if fits(overflows) && !result.IsIntersecting {
		return middleware.Instruction{Data: data}, nil
	}

	next := prev.Index + 1
	if next < len(placements) {
		data.Index = next
		return middleware.Instruction{
			Data:  data,
			Reset: middleware.ResetTo(placements[next]),
		}, nil
	}

	resolved := f.resolve(history, state.InitialPlacement)
	if resolved != state.Placement {
		return middleware.Instruction{
			Data:  data,
			Reset: middleware.ResetTo(resolved),
		}, nil
	}
	return middleware.Instruction{Data: data}, nil
}

// resolve picks the final placement once every candidate has been tried.
func (f *Flip) resolve(history []Attempt, initial geom.Placement) geom.Placement {
	var fitting []Attempt
	for _, a := range history {
		if len(a.Overflows) > 0 && a.Overflows[0] <= 0 {
			fitting = append(fitting, a)
		}
	}
	if len(fitting) > 0 {
		slices.SortStableFunc(fitting, func(a, b Attempt) int {
			return compare(at(a.Overflows, 1), at(b.Overflows, 1))
		})
		return fitting[0].Placement
	}

	if f.opts.FallbackStrategy == InitialPlacement {
		return initial
	}
	return BestFitPlacement(history)
}

// BestFitPlacement returns the attempt with the smallest total positive
// overflow. Ties go to the earliest attempt. An empty history yields "".
func BestFitPlacement(history []Attempt) geom.Placement {
	var (
		best    geom.Placement
		bestSum float64
	)
	for i, a := range history {
		sum := positiveSum(a.Overflows)
		if i == 0 || sum < bestSum {
			best, bestSum = a.Placement, sum
		}
	}
	return best
}

func positiveSum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	return sum
}

func fits(overflows []float64) bool {
	for _, v := range overflows {
		if v > 0 {
			return false
		}
	}
	return true
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func enabled(b *bool) bool {
	return b == nil || *b
}

var _ middleware.Middleware = (*Flip)(nil)
