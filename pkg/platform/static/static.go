// Package static provides a platform adapter backed by pre-measured geometry.
//
// It stands in for a real host wherever rectangles are already known: tests,
// scenario files, the CLI and the HTTP API. Every capability in
// [platform] is implemented, so [platform.New] resolves no defaults.
//
// # Usage
//
//	a := static.New(geom.Rect{Width: 1280, Height: 720})
//	a.Set("button", geom.Rect{X: 100, Y: 100, Width: 80, Height: 32})
//	a.Set("tooltip", geom.Rect{Width: 120, Height: 40})
//	p := platform.New(a)
//
// Failures can be injected per operation to exercise error propagation:
//
//	a.Fail(static.OpClippingRect, errors.New("detached"))
package static

import (
	"context"
	"fmt"
	"sync"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// Element is a named element handle.
type Element string

// Virtual is a synthetic reference with its own rectangle and an optional
// real element that provides its clipping context.
type Virtual struct {
	Name    string
	Rect    geom.Rect
	Context platform.Element
}

// ContextElement implements platform.VirtualElement.
func (v *Virtual) ContextElement() platform.Element {
	return v.Context
}

// DocumentRoot is the handle returned by GetDocumentElement.
const DocumentRoot Element = "#document"

// Op names an adapter operation for failure injection.
type Op string

// Operations.
const (
	OpClippingRect    Op = "getClippingRect"
	OpElementRects    Op = "getElementRects"
	OpIsElement       Op = "isElement"
	OpDocumentElement Op = "getDocumentElement"
	OpOffsetParent    Op = "getOffsetParent"
	OpScale           Op = "getScale"
	OpConvertRect     Op = "convertOffsetParentRelativeRectToViewportRelativeRect"
	OpRTL             Op = "isRTL"
)

// Adapter implements every platform capability from fixed geometry.
// It is safe for concurrent use.
type Adapter struct {
	mu sync.Mutex

	viewport geom.Rect
	document geom.Rect
	rects    map[platform.Element]geom.Rect
	clips    map[platform.Element]geom.Rect

	offsetParent platform.Element
	origin       geom.Coords
	scale        geom.Coords
	rtl          bool

	failures map[Op]error
	requests []platform.ClippingRectRequest
}

// New creates an adapter whose viewport (and document, until SetDocument is
// called) is the given rect.
func New(viewport geom.Rect) *Adapter {
	return &Adapter{
		viewport: viewport,
		document: viewport,
		rects:    make(map[platform.Element]geom.Rect),
		clips:    make(map[platform.Element]geom.Rect),
		scale:    platform.IdentityScale,
		failures: make(map[Op]error),
	}
}

// Set records the measured rect of an element.
func (a *Adapter) Set(el platform.Element, r geom.Rect) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rects[el] = r
	return a
}

// SetClip records the rect of an element's clipping ancestors.
func (a *Adapter) SetClip(el platform.Element, r geom.Rect) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clips[el] = r
	return a
}

// SetDocument sets the document rect used for the "document" root boundary.
func (a *Adapter) SetDocument(r geom.Rect) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.document = r
	return a
}

// SetOffsetParent installs an offset parent with the given viewport origin
// and scale. Offset-parent-relative rects are converted as
// viewport = rect*scale + origin.
func (a *Adapter) SetOffsetParent(el platform.Element, origin, scale geom.Coords) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offsetParent = el
	a.origin = origin
	a.scale = scale
	return a
}

// SetRTL sets the writing direction.
func (a *Adapter) SetRTL(rtl bool) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rtl = rtl
	return a
}

// Fail makes op return err until Fail(op, nil) is called.
func (a *Adapter) Fail(op Op, err error) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err == nil {
		delete(a.failures, op)
	} else {
		a.failures[op] = err
	}
	return a
}

// ClippingRequests returns every GetClippingRect request seen so far.
func (a *Adapter) ClippingRequests() []platform.ClippingRectRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]platform.ClippingRectRequest(nil), a.requests...)
}

// =============================================================================
// platform.Adapter
// =============================================================================

// GetClippingRect intersects the root boundary with the requested boundary.
func (a *Adapter) GetClippingRect(_ context.Context, req platform.ClippingRectRequest) (geom.Rect, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	if err := a.failures[OpClippingRect]; err != nil {
		return geom.Rect{}, err
	}

	root := a.viewport
	switch {
	case req.RootBoundary.Rect != nil:
		root = *req.RootBoundary.Rect
	case req.RootBoundary.ResolvedArea() == platform.Document:
		root = a.document
	}

	switch {
	case req.Boundary.Rect != nil:
		return intersect(root, *req.Boundary.Rect), nil
	case len(req.Boundary.Elements) > 0:
		clip := root
		for _, el := range req.Boundary.Elements {
			r, ok := a.rects[el]
			if !ok {
				return geom.Rect{}, fmt.Errorf("boundary element %v: not measured", el)
			}
			clip = intersect(clip, r)
		}
		return clip, nil
	}

	if r, ok := a.clips[req.Element]; ok && req.Element != nil {
		return intersect(root, r), nil
	}
	return root, nil
}

// GetElementRects returns the recorded rects of the reference and floating
// elements. Virtual references report their own rect.
func (a *Adapter) GetElementRects(_ context.Context, req platform.ElementRectsRequest) (platform.ElementRects, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpElementRects]; err != nil {
		return platform.ElementRects{}, err
	}

	var rects platform.ElementRects
	if v, ok := req.Reference.(*Virtual); ok {
		rects.Reference = v.Rect
	} else if r, ok := a.rects[req.Reference]; ok {
		rects.Reference = r
	} else {
		return rects, fmt.Errorf("reference %v: not measured", req.Reference)
	}

	r, ok := a.rects[req.Floating]
	if !ok {
		return rects, fmt.Errorf("floating %v: not measured", req.Floating)
	}
	rects.Floating = r
	return rects, nil
}

// =============================================================================
// Optional capabilities
// =============================================================================

// IsElement reports whether node is a measured element, the offset parent or
// the document root. Virtual elements and unknown handles are not elements.
func (a *Adapter) IsElement(_ context.Context, node platform.Element) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpIsElement]; err != nil {
		return false, err
	}
	if node == nil {
		return false, nil
	}
	if _, ok := node.(*Virtual); ok {
		return false, nil
	}
	if platform.SameElement(node, DocumentRoot) || platform.SameElement(node, a.offsetParent) {
		return true, nil
	}
	_, measured := a.rects[node]
	_, clipped := a.clips[node]
	return measured || clipped, nil
}

// GetDocumentElement returns DocumentRoot.
func (a *Adapter) GetDocumentElement(_ context.Context, _ platform.Element) (platform.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpDocumentElement]; err != nil {
		return nil, err
	}
	return DocumentRoot, nil
}

// GetOffsetParent returns the configured offset parent, or nil.
func (a *Adapter) GetOffsetParent(_ context.Context, _ platform.Element) (platform.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpOffsetParent]; err != nil {
		return nil, err
	}
	return a.offsetParent, nil
}

// GetScale returns the offset parent's scale.
func (a *Adapter) GetScale(_ context.Context, _ platform.Element) (geom.Coords, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpScale]; err != nil {
		return geom.Coords{}, err
	}
	return a.scale, nil
}

// ConvertOffsetParentRelativeRectToViewportRelativeRect applies the offset
// parent's scale and origin. Without an offset parent it is the identity.
func (a *Adapter) ConvertOffsetParentRelativeRectToViewportRelativeRect(_ context.Context, req platform.ConvertRectRequest) (geom.Rect, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpConvertRect]; err != nil {
		return geom.Rect{}, err
	}
	if req.OffsetParent == nil {
		return req.Rect, nil
	}
	return geom.Rect{
		X:      req.Rect.X*a.scale.X + a.origin.X,
		Y:      req.Rect.Y*a.scale.Y + a.origin.Y,
		Width:  req.Rect.Width * a.scale.X,
		Height: req.Rect.Height * a.scale.Y,
	}, nil
}

// IsRTL returns the configured direction.
func (a *Adapter) IsRTL(_ context.Context, _ platform.Element) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failures[OpRTL]; err != nil {
		return false, err
	}
	return a.rtl, nil
}

func intersect(a, b geom.Rect) geom.Rect {
	left := max(a.X, b.X)
	top := max(a.Y, b.Y)
	right := min(a.X+a.Width, b.X+b.Width)
	bottom := min(a.Y+a.Height, b.Y+b.Height)
	return geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

var (
	_ platform.Adapter                 = (*Adapter)(nil)
	_ platform.ElementChecker          = (*Adapter)(nil)
	_ platform.DocumentElementResolver = (*Adapter)(nil)
	_ platform.OffsetParentResolver    = (*Adapter)(nil)
	_ platform.ScaleReader             = (*Adapter)(nil)
	_ platform.RectConverter           = (*Adapter)(nil)
	_ platform.RTLDetector             = (*Adapter)(nil)
	_ platform.VirtualElement          = (*Virtual)(nil)
)
