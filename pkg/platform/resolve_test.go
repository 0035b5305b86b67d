package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// minimal implements only the required capabilities.
type minimal struct{}

func (minimal) GetClippingRect(context.Context, ClippingRectRequest) (geom.Rect, error) {
	return geom.Rect{Width: 100, Height: 100}, nil
}

func (minimal) GetElementRects(context.Context, ElementRectsRequest) (ElementRects, error) {
	return ElementRects{}, nil
}

// scaled adds an element checker and scale reader on top of minimal.
type scaled struct {
	minimal
	elements map[Element]bool
	scale    geom.Coords
	err      error
}

func (s scaled) IsElement(_ context.Context, node Element) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.elements[node], nil
}

func (s scaled) GetScale(context.Context, Element) (geom.Coords, error) {
	return s.scale, nil
}

// scaleOnly reads a scale but cannot tell elements apart.
type scaleOnly struct {
	minimal
	scale geom.Coords
}

func (s scaleOnly) GetScale(context.Context, Element) (geom.Coords, error) {
	return s.scale, nil
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	p := New(minimal{})

	if ok, err := p.IsElement(ctx, "x"); err != nil || !ok {
		t.Errorf("IsElement = %v, %v, want true, nil", ok, err)
	}
	if el, err := p.GetDocumentElement(ctx, "x"); err != nil || el != nil {
		t.Errorf("GetDocumentElement = %v, %v, want nil, nil", el, err)
	}
	if el, err := p.GetOffsetParent(ctx, "x"); err != nil || el != nil {
		t.Errorf("GetOffsetParent = %v, %v, want nil, nil", el, err)
	}
	if s, err := p.GetScale(ctx, "x"); err != nil || s != IdentityScale {
		t.Errorf("GetScale = %v, %v, want identity", s, err)
	}
	if rtl, err := p.IsRTL(ctx, "x"); err != nil || rtl {
		t.Errorf("IsRTL = %v, %v, want false, nil", rtl, err)
	}

	r := geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	got, err := p.ConvertOffsetParentRelativeRectToViewportRelativeRect(ctx, ConvertRectRequest{Rect: r})
	if err != nil || got != r {
		t.Errorf("ConvertOffsetParentRelativeRectToViewportRelativeRect = %v, %v, want %v", got, err, r)
	}
}

func TestOffsetParentScale(t *testing.T) {
	ctx := context.Background()
	two := geom.Coords{X: 2, Y: 2}

	tests := []struct {
		name   string
		p      *Platform
		parent Element
		want   geom.Coords
	}{
		{"no checker", New(minimal{}), "parent", IdentityScale},
		{"scale without checker", New(scaleOnly{scale: two}), "parent", IdentityScale},
		{"nil parent", New(scaled{scale: two}), nil, IdentityScale},
		{"not an element", New(scaled{scale: two, elements: map[Element]bool{}}), "parent", IdentityScale},
		{"element", New(scaled{scale: two, elements: map[Element]bool{"parent": true}}), "parent", two},
		{"zero scale", New(scaled{elements: map[Element]bool{"parent": true}}), "parent", IdentityScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.OffsetParentScale(ctx, tt.parent)
			if err != nil {
				t.Fatalf("OffsetParentScale: %v", err)
			}
			if got != tt.want {
				t.Errorf("OffsetParentScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffsetParentScaleError(t *testing.T) {
	boom := errors.New("boom")
	p := New(scaled{err: boom})
	if _, err := p.OffsetParentScale(context.Background(), "parent"); !errors.Is(err, boom) {
		t.Errorf("OffsetParentScale error = %v, want %v", err, boom)
	}
}

func TestSameElement(t *testing.T) {
	type handle struct{ id int }
	a, b := &handle{1}, &handle{1}

	tests := []struct {
		name string
		x, y Element
		want bool
	}{
		{"same pointer", a, a, true},
		{"different pointers", a, b, false},
		{"equal strings", "btn", "btn", true},
		{"nil", nil, nil, false},
		{"one nil", a, nil, false},
		{"uncomparable", []int{1}, []int{1}, false},
		{"mixed types", "1", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameElement(tt.x, tt.y); got != tt.want {
				t.Errorf("SameElement(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBoundaryDefaults(t *testing.T) {
	if !(Boundary{}).IsClippingAncestors() {
		t.Error("zero Boundary should be clipping ancestors")
	}
	if (Boundary{Rect: &geom.Rect{}}).IsClippingAncestors() {
		t.Error("Boundary with rect should not be clipping ancestors")
	}
	if got := (RootBoundary{}).ResolvedArea(); got != Viewport {
		t.Errorf("RootBoundary{}.ResolvedArea() = %v, want %v", got, Viewport)
	}
	if !Absolute.Valid() || !Fixed.Valid() || Strategy("sticky").Valid() {
		t.Error("Strategy.Valid mismatch")
	}
}
