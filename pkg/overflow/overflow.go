// Package overflow measures how far an element sticks out of its clipping
// boundary and which obstacles it collides with.
//
// [Detect] is the single primitive every placement-adjusting middleware is
// built on. It returns one signed value per side:
//   - positive: overflowing the boundary by that many pixels
//   - negative: pixels left before it would overflow
//   - zero: flush with the boundary
//
// Values are divided by the offset parent's scale, so they are expressed in
// the same units as the floating element's x/y coordinates.
//
// # Collisions
//
// Besides the clipping boundary, the element is tested against every
// obstacle in [middleware.State.Obstacles]. [Result.IsIntersecting] is true
// when any obstacle overlaps the element, and
// [Result.CollidableIntersections] reports, per overlapping obstacle, the
// penetration depth on each axis and the side the obstacle approaches from.
package overflow

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// Options configures Detect. The zero value checks the floating element
// against its clipping ancestors within the viewport, without padding.
type Options struct {
	// Boundary is the clipping area. Zero value: clipping ancestors.
	Boundary platform.Boundary

	// RootBoundary is the outermost clipping area. Zero value: viewport.
	RootBoundary platform.RootBoundary

	// ElementContext is the element whose overflow is measured.
	// Zero value: floating.
	ElementContext middleware.ElementContext

	// AltBoundary measures against the other element's clipping boundary.
	// Only meaningful with the clipping-ancestors boundary.
	AltBoundary bool

	// Padding is virtual space added inside the boundary.
	Padding geom.Padding
}

func (o Options) context() middleware.ElementContext {
	if o.ElementContext == "" {
		return middleware.FloatingContext
	}
	return o.ElementContext
}

// Intersection is the overlap between the measured element and one obstacle.
type Intersection struct {
	// X and Y are the penetration depths along each axis.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// XDirection is Left when the obstacle's center lies right of the
	// element's center, Right otherwise. YDirection is Top or Bottom by the
	// same rule.
	XDirection geom.Side `json:"xDirection"`
	YDirection geom.Side `json:"yDirection"`

	// Obstacle is the handle of the obstacle.
	Obstacle platform.Element `json:"-"`
}

// Result is the overflow of an element on each side, plus collision data.
type Result struct {
	geom.SideObject

	IsIntersecting          bool           `json:"isIntersecting"`
	CollidableIntersections []Intersection `json:"collidableIntersections"`
}

// Detect resolves how much the element selected by opts overflows its
// clipping boundary at the state's proposed coordinates.
//
// Platform failures are returned wrapped with errors.ErrCodePlatform and
// abort the computation; Detect never retries.
func Detect(ctx context.Context, state *middleware.State, opts Options) (Result, error) {
	p := state.Platform
	padding := opts.Padding.SideObject()

	elementContext := opts.context()
	boundaryContext := elementContext
	if opts.AltBoundary {
		boundaryContext = elementContext.Opposite()
	}
	element := state.Elements.Get(boundaryContext)

	clipElement, err := clippingElement(ctx, p, element, state.Elements.Floating)
	if err != nil {
		return Result{}, err
	}

	clipRect, err := p.GetClippingRect(ctx, platform.ClippingRectRequest{
		Element:      clipElement,
		Boundary:     opts.Boundary,
		RootBoundary: opts.RootBoundary,
		Strategy:     state.Strategy,
	})
	if err != nil {
		return Result{}, errors.Platform(err, "get clipping rect")
	}
	clipping := geom.RectToClientRect(clipRect)

	rect := state.Rects.Reference
	if elementContext == middleware.FloatingContext {
		rect = state.Rects.Floating.At(state.X, state.Y)
	}

	offsetParent, err := p.GetOffsetParent(ctx, state.Elements.Floating)
	if err != nil {
		return Result{}, errors.Platform(err, "get offset parent")
	}
	scale, err := p.OffsetParentScale(ctx, offsetParent)
	if err != nil {
		return Result{}, errors.Platform(err, "get offset parent scale")
	}

	viewportRect, err := p.ConvertOffsetParentRelativeRectToViewportRelativeRect(ctx, platform.ConvertRectRequest{
		Rect:         rect,
		OffsetParent: offsetParent,
		Strategy:     state.Strategy,
	})
	if err != nil {
		return Result{}, errors.Platform(err, "convert rect to viewport")
	}
	subject := geom.RectToClientRect(viewportRect)

	isIntersecting, intersections := collide(subject, element, state.Obstacles)

	return Result{
		SideObject: geom.SideObject{
			Top:    (clipping.Top - subject.Top + padding.Top) / scale.Y,
			Bottom: (subject.Bottom - clipping.Bottom + padding.Bottom) / scale.Y,
			Left:   (clipping.Left - subject.Left + padding.Left) / scale.X,
			Right:  (subject.Right - clipping.Right + padding.Right) / scale.X,
		},
		IsIntersecting:          isIntersecting,
		CollidableIntersections: intersections,
	}, nil
}

// clippingElement picks the element whose clipping boundary is queried.
// Non-elements (virtual references) defer to their context element, then
// to the floating element's document root.
func clippingElement(ctx context.Context, p *platform.Platform, element, floating platform.Element) (platform.Element, error) {
	ok, err := p.IsElement(ctx, element)
	if err != nil {
		return nil, errors.Platform(err, "check element")
	}
	if ok {
		return element, nil
	}
	if v, isVirtual := element.(platform.VirtualElement); isVirtual {
		if ce := v.ContextElement(); ce != nil {
			return ce, nil
		}
	}
	root, err := p.GetDocumentElement(ctx, floating)
	if err != nil {
		return nil, errors.Platform(err, "get document element")
	}
	return root, nil
}
