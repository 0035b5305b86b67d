// Package platform defines the capabilities the positioning engine needs from
// its host environment.
//
// The engine never measures anything itself. A host (a DOM binding, a
// terminal UI, a test fixture) implements [Adapter] and, optionally, any of
// the single-method capability interfaces below. [New] inspects the adapter
// once and fills in defaults for every capability it does not provide, so
// callers never check for missing methods at query time.
//
// # Capabilities
//
// Required ([Adapter]):
//   - GetClippingRect: the clipping rectangle of an element
//   - GetElementRects: the reference and floating rectangles
//
// Optional (default in parentheses):
//   - [ElementChecker]: is a handle a real element (true; offset parents
//     are only scaled when a checker confirms them)
//   - [DocumentElementResolver]: root element of a node's document (nil)
//   - [OffsetParentResolver]: offset parent of a node (nil)
//   - [ScaleReader]: CSS scale of a node ({1, 1})
//   - [RectConverter]: offset-parent to viewport conversion (identity)
//   - [RTLDetector]: right-to-left writing direction (false)
//
// All capability methods take a context and may fail. Failures are returned
// to the caller untouched; the engine never retries a query.
package platform

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// Element is an opaque handle to a host element. The engine only passes
// handles back to the platform and compares them for identity, so handle
// types should be comparable (pointers, strings, small structs).
type Element any

// VirtualElement is a synthetic reference (a cursor position, a text
// selection) that is not itself measurable. ContextElement names the real
// element whose clipping context it lives in, or nil.
type VirtualElement interface {
	ContextElement() Element
}

// Strategy is the CSS positioning strategy of the floating element.
type Strategy string

// Strategies.
const (
	Absolute Strategy = "absolute"
	Fixed    Strategy = "fixed"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == Absolute || s == Fixed
}

// =============================================================================
// Boundaries
// =============================================================================

// Boundary selects the clipping area overflow is checked against.
// The zero value means the element's clipping ancestors.
type Boundary struct {
	// Elements, when non-empty, replaces the clipping ancestors.
	Elements []Element
	// Rect, when set, is used as the boundary directly.
	Rect *geom.Rect
}

// IsClippingAncestors reports whether b is the default boundary.
func (b Boundary) IsClippingAncestors() bool {
	return len(b.Elements) == 0 && b.Rect == nil
}

// RootArea is the outermost clipping area.
type RootArea string

// Root areas.
const (
	Viewport RootArea = "viewport"
	Document RootArea = "document"
)

// RootBoundary selects the root clipping area. The zero value is the viewport.
type RootBoundary struct {
	Area RootArea
	// Rect, when set, overrides Area.
	Rect *geom.Rect
}

// ResolvedArea returns the area with the default applied.
func (r RootBoundary) ResolvedArea() RootArea {
	if r.Area == "" {
		return Viewport
	}
	return r.Area
}

// =============================================================================
// Requests
// =============================================================================

// ClippingRectRequest is the input to GetClippingRect.
type ClippingRectRequest struct {
	Element      Element
	Boundary     Boundary
	RootBoundary RootBoundary
	Strategy     Strategy
}

// ElementRectsRequest is the input to GetElementRects.
type ElementRectsRequest struct {
	Reference Element
	Floating  Element
	Strategy  Strategy
}

// ElementRects holds the measured reference and floating rectangles.
type ElementRects struct {
	Reference geom.Rect `json:"reference" toml:"reference" yaml:"reference"`
	Floating  geom.Rect `json:"floating" toml:"floating" yaml:"floating"`
}

// ConvertRectRequest is the input to ConvertOffsetParentRelativeRectToViewportRelativeRect.
type ConvertRectRequest struct {
	Rect         geom.Rect
	OffsetParent Element
	Strategy     Strategy
}

// =============================================================================
// Capability interfaces
// =============================================================================

// Adapter is the minimum a host must implement.
type Adapter interface {
	GetClippingRect(ctx context.Context, req ClippingRectRequest) (geom.Rect, error)
	GetElementRects(ctx context.Context, req ElementRectsRequest) (ElementRects, error)
}

// ElementChecker reports whether a handle is a real, measurable element.
type ElementChecker interface {
	IsElement(ctx context.Context, node Element) (bool, error)
}

// DocumentElementResolver returns the root element of a node's document.
type DocumentElementResolver interface {
	GetDocumentElement(ctx context.Context, node Element) (Element, error)
}

// OffsetParentResolver returns the offset parent of a node, or nil.
type OffsetParentResolver interface {
	GetOffsetParent(ctx context.Context, node Element) (Element, error)
}

// ScaleReader returns the rendered scale of a node.
type ScaleReader interface {
	GetScale(ctx context.Context, node Element) (geom.Coords, error)
}

// RectConverter converts an offset-parent-relative rect to viewport coordinates.
type RectConverter interface {
	ConvertOffsetParentRelativeRectToViewportRelativeRect(ctx context.Context, req ConvertRectRequest) (geom.Rect, error)
}

// RTLDetector reports right-to-left writing direction.
type RTLDetector interface {
	IsRTL(ctx context.Context, node Element) (bool, error)
}
