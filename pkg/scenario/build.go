package scenario

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/middleware/hide"
	"github.com/matzehuels/floatplace/pkg/middleware/offset"
	"github.com/matzehuels/floatplace/pkg/overflow"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/platform/static"
)

// Request is a scenario ready to run.
type Request struct {
	Reference platform.Element
	Floating  platform.Element
	Adapter   *static.Adapter
	Options   pipeline.Options
}

// Build validates s and assembles the adapter, element handles and
// pipeline options. Each call returns fresh middleware and a fresh adapter.
func (s *Scenario) Build(logger *log.Logger) (*Request, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	a := static.New(s.Viewport).SetRTL(s.RTL)
	if s.Document != nil {
		a.SetDocument(*s.Document)
	}
	for name, r := range s.Elements {
		a.Set(static.Element(name), r)
	}
	for name, r := range s.Clips {
		a.SetClip(static.Element(name), r)
	}
	if op := s.OffsetParent; op != nil {
		scale := op.Scale
		if scale == (geom.Coords{}) {
			scale = platform.IdentityScale
		}
		a.SetOffsetParent(static.Element(op.Element), op.Origin, scale)
	}

	var reference platform.Element = static.Element(s.Reference)
	if v := s.Virtual; v != nil {
		virtual := &static.Virtual{Name: s.Reference, Rect: v.Rect}
		if v.Context != "" {
			virtual.Context = static.Element(v.Context)
		}
		reference = virtual
	}

	obstacles := make([]middleware.Obstacle, 0, len(s.Obstacles))
	for _, name := range s.Obstacles {
		obstacles = append(obstacles, middleware.NewObstacle(static.Element(name), s.Elements[name]))
	}

	mws := make([]middleware.Middleware, 0, len(s.Middleware))
	for _, spec := range s.Middleware {
		mws = append(mws, spec.build())
	}

	return &Request{
		Reference: reference,
		Floating:  static.Element(s.Floating),
		Adapter:   a,
		Options: pipeline.Options{
			Placement:  s.Placement,
			Strategy:   s.Strategy,
			MaxResets:  s.MaxResets,
			Platform:   a,
			Middleware: mws,
			Obstacles:  obstacles,
			Logger:     logger,
		},
	}, nil
}

// build constructs the middleware. The spec must have been validated.
func (m MiddlewareSpec) build() middleware.Middleware {
	switch m.Type {
	case TypeOffset:
		var opts offset.Options
		if m.Offset != nil {
			opts = *m.Offset
		}
		return offset.New(opts)
	case TypeHide:
		var opts hide.Options
		if m.Hide != nil {
			opts = *m.Hide
		}
		opts.Options = m.Detect.options()
		return hide.New(opts)
	default:
		var opts flip.Options
		if m.Flip != nil {
			opts = *m.Flip
		}
		opts.Options = m.Detect.options()
		return flip.New(opts)
	}
}

// options converts d to overflow options. A nil spec is the zero value.
func (d *DetectSpec) options() overflow.Options {
	if d == nil {
		return overflow.Options{}
	}
	opts := overflow.Options{
		RootBoundary:   platform.RootBoundary{Area: platform.RootArea(d.RootBoundary), Rect: d.RootBoundaryRect},
		ElementContext: middleware.ElementContext(d.ElementContext),
		AltBoundary:    d.AltBoundary,
		Padding:        d.Padding,
	}
	if d.BoundaryRect != nil {
		opts.Boundary.Rect = d.BoundaryRect
	}
	for _, name := range d.Boundary {
		opts.Boundary.Elements = append(opts.Boundary.Elements, static.Element(name))
	}
	return opts
}
