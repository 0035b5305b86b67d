package platform

import (
	"context"
	"reflect"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// IdentityScale is the scale used when a platform cannot report one.
var IdentityScale = geom.Coords{X: 1, Y: 1}

// Platform is an Adapter with every optional capability resolved.
// Create one with New; the zero value is not usable.
type Platform struct {
	adapter Adapter

	elements  ElementChecker
	documents DocumentElementResolver
	parents   OffsetParentResolver
	scales    ScaleReader
	converter RectConverter
	rtl       RTLDetector
}

// New resolves the optional capabilities of a once. Missing capabilities
// fall back to the documented defaults.
func New(a Adapter) *Platform {
	p := &Platform{adapter: a}
	p.elements, _ = a.(ElementChecker)
	p.documents, _ = a.(DocumentElementResolver)
	p.parents, _ = a.(OffsetParentResolver)
	p.scales, _ = a.(ScaleReader)
	p.converter, _ = a.(RectConverter)
	p.rtl, _ = a.(RTLDetector)
	return p
}

// Adapter returns the underlying adapter.
func (p *Platform) Adapter() Adapter { return p.adapter }

// GetClippingRect forwards to the adapter.
func (p *Platform) GetClippingRect(ctx context.Context, req ClippingRectRequest) (geom.Rect, error) {
	return p.adapter.GetClippingRect(ctx, req)
}

// GetElementRects forwards to the adapter.
func (p *Platform) GetElementRects(ctx context.Context, req ElementRectsRequest) (ElementRects, error) {
	return p.adapter.GetElementRects(ctx, req)
}

// IsElement reports whether node is measurable. Defaults to true.
func (p *Platform) IsElement(ctx context.Context, node Element) (bool, error) {
	if p.elements == nil {
		return true, nil
	}
	return p.elements.IsElement(ctx, node)
}

// GetDocumentElement returns the root element of node's document, or nil.
func (p *Platform) GetDocumentElement(ctx context.Context, node Element) (Element, error) {
	if p.documents == nil {
		return nil, nil
	}
	return p.documents.GetDocumentElement(ctx, node)
}

// GetOffsetParent returns node's offset parent, or nil.
func (p *Platform) GetOffsetParent(ctx context.Context, node Element) (Element, error) {
	if p.parents == nil {
		return nil, nil
	}
	return p.parents.GetOffsetParent(ctx, node)
}

// GetScale returns node's scale, or IdentityScale.
func (p *Platform) GetScale(ctx context.Context, node Element) (geom.Coords, error) {
	if p.scales == nil {
		return IdentityScale, nil
	}
	s, err := p.scales.GetScale(ctx, node)
	if err != nil {
		return geom.Coords{}, err
	}
	if s.X == 0 || s.Y == 0 {
		return IdentityScale, nil
	}
	return s, nil
}

// OffsetParentScale returns the scale to divide overflow by. It is the
// parent's scale only when the adapter can confirm the parent is an element.
// Unlike IsElement, a missing checker counts as "not an element" here, so an
// adapter with a ScaleReader but no ElementChecker always gets IdentityScale.
func (p *Platform) OffsetParentScale(ctx context.Context, parent Element) (geom.Coords, error) {
	if p.elements == nil || parent == nil {
		return IdentityScale, nil
	}
	ok, err := p.elements.IsElement(ctx, parent)
	if err != nil {
		return geom.Coords{}, err
	}
	if !ok {
		return IdentityScale, nil
	}
	return p.GetScale(ctx, parent)
}

// ConvertOffsetParentRelativeRectToViewportRelativeRect converts req.Rect to
// viewport coordinates. Identity when the adapter has no converter.
func (p *Platform) ConvertOffsetParentRelativeRectToViewportRelativeRect(ctx context.Context, req ConvertRectRequest) (geom.Rect, error) {
	if p.converter == nil {
		return req.Rect, nil
	}
	return p.converter.ConvertOffsetParentRelativeRectToViewportRelativeRect(ctx, req)
}

// IsRTL reports whether node is laid out right-to-left. Defaults to false.
func (p *Platform) IsRTL(ctx context.Context, node Element) (bool, error) {
	if p.rtl == nil {
		return false, nil
	}
	return p.rtl.IsRTL(ctx, node)
}

// SameElement reports whether a and b are the same handle. Handles of
// non-comparable types are never equal to anything.
func SameElement(a, b Element) bool {
	if a == nil || b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
