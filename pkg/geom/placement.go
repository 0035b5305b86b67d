package geom

import (
	"fmt"
	"strings"
)

// =============================================================================
// Sides, Alignments, Axes
// =============================================================================

// Side is one of the four sides of a rectangle.
type Side string

// Sides.
const (
	Top    Side = "top"
	Right  Side = "right"
	Bottom Side = "bottom"
	Left   Side = "left"
)

// Sides lists the four sides in clockwise order starting at the top.
var Sides = []Side{Top, Right, Bottom, Left}

// Alignment positions the floating element along the cross axis.
// The zero value means centered.
type Alignment string

// Alignments.
const (
	AlignNone  Alignment = ""
	AlignStart Alignment = "start"
	AlignEnd   Alignment = "end"
)

// Axis is either the horizontal or the vertical axis.
type Axis string

// Axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Length names the rectangle dimension measured along an axis.
type Length string

// Lengths.
const (
	Width  Length = "width"
	Height Length = "height"
)

// =============================================================================
// Placement
// =============================================================================

// Placement is a side with an optional alignment suffix, e.g. "top-start".
type Placement string

// The twelve placements.
const (
	TopPlacement    Placement = "top"
	TopStart        Placement = "top-start"
	TopEnd          Placement = "top-end"
	RightPlacement  Placement = "right"
	RightStart      Placement = "right-start"
	RightEnd        Placement = "right-end"
	BottomPlacement Placement = "bottom"
	BottomStart     Placement = "bottom-start"
	BottomEnd       Placement = "bottom-end"
	LeftPlacement   Placement = "left"
	LeftStart       Placement = "left-start"
	LeftEnd         Placement = "left-end"
)

// AllPlacements lists every valid placement, grouped by side.
var AllPlacements = []Placement{
	TopPlacement, TopStart, TopEnd,
	RightPlacement, RightStart, RightEnd,
	BottomPlacement, BottomStart, BottomEnd,
	LeftPlacement, LeftStart, LeftEnd,
}

// NewPlacement joins a side and an alignment.
func NewPlacement(side Side, align Alignment) Placement {
	if align == AlignNone {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

// ParsePlacement validates s and returns it as a Placement.
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.TrimSpace(s))
	if !p.Valid() {
		return "", fmt.Errorf("invalid placement: %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the twelve placements.
func (p Placement) Valid() bool {
	for _, v := range AllPlacements {
		if v == p {
			return true
		}
	}
	return false
}

// Side returns the side part of the placement.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment part of the placement, or AlignNone.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// IsBase reports whether p has no alignment.
func (p Placement) IsBase() bool {
	return p.Alignment() == AlignNone
}

// String implements fmt.Stringer.
func (p Placement) String() string { return string(p) }

// =============================================================================
// Opposites
// =============================================================================

// OppositeSide returns the side across from s.
func OppositeSide(s Side) Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

// OppositeAlignment swaps start and end.
func OppositeAlignment(a Alignment) Alignment {
	switch a {
	case AlignStart:
		return AlignEnd
	case AlignEnd:
		return AlignStart
	}
	return a
}

// OppositePlacement flips the side and keeps the alignment.
func OppositePlacement(p Placement) Placement {
	return NewPlacement(OppositeSide(p.Side()), p.Alignment())
}

// OppositeAlignmentPlacement keeps the side and swaps the alignment.
func OppositeAlignmentPlacement(p Placement) Placement {
	return NewPlacement(p.Side(), OppositeAlignment(p.Alignment()))
}

// OppositeAxis returns the perpendicular axis.
func OppositeAxis(a Axis) Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// =============================================================================
// Axes
// =============================================================================

// SideAxis returns the main axis of p: y for top/bottom, x for left/right.
func SideAxis(p Placement) Axis {
	switch p.Side() {
	case Top, Bottom:
		return AxisY
	}
	return AxisX
}

// AlignmentAxis returns the cross axis of p.
func AlignmentAxis(p Placement) Axis {
	return OppositeAxis(SideAxis(p))
}

// AxisLength returns the dimension measured along a.
func AxisLength(a Axis) Length {
	if a == AxisY {
		return Height
	}
	return Width
}

// =============================================================================
// Fallback derivation
// =============================================================================

// ExpandedPlacements returns the alignment variants worth trying when p does
// not fit: same side with flipped alignment, then the opposite side with both
// alignments.
func ExpandedPlacements(p Placement) []Placement {
	opposite := OppositePlacement(p)
	return []Placement{
		OppositeAlignmentPlacement(p),
		opposite,
		OppositeAlignmentPlacement(opposite),
	}
}

// OppositeAxisPlacements returns placements on the perpendicular axis of p,
// ordered by direction ("start" or "end") and adjusted for right-to-left
// layout. When p is aligned, the alignment is carried over and, if
// flipAlignment is set, followed by the opposite-alignment variants.
func OppositeAxisPlacements(p Placement, flipAlignment bool, direction Alignment, rtl bool) []Placement {
	sides := sideList(p.Side(), direction == AlignStart, rtl)
	align := p.Alignment()

	list := make([]Placement, 0, 4)
	for _, s := range sides {
		list = append(list, NewPlacement(s, align))
	}
	if align != AlignNone && flipAlignment {
		for _, s := range sides {
			list = append(list, NewPlacement(s, OppositeAlignment(align)))
		}
	}
	return list
}

func sideList(side Side, isStart, rtl bool) []Side {
	lr := []Side{Left, Right}
	rl := []Side{Right, Left}
	switch side {
	case Top, Bottom:
		if rtl {
			if isStart {
				return rl
			}
			return lr
		}
		if isStart {
			return lr
		}
		return rl
	case Left, Right:
		if isStart {
			return []Side{Top, Bottom}
		}
		return []Side{Bottom, Top}
	}
	return nil
}

// AlignmentSides returns the two cross-axis sides of p as (main, cross).
// The main alignment side is the one the floating element's aligned edge
// runs toward; it flips when the reference is longer than the floating
// element along the cross axis.
func AlignmentSides(p Placement, reference, floating Rect, rtl bool) (Side, Side) {
	align := p.Alignment()
	axis := AlignmentAxis(p)

	var main Side
	if axis == AxisX {
		startAlign := AlignStart
		if rtl {
			startAlign = AlignEnd
		}
		if align == startAlign {
			main = Right
		} else {
			main = Left
		}
	} else {
		if align == AlignStart {
			main = Bottom
		} else {
			main = Top
		}
	}

	length := AxisLength(axis)
	if reference.Length(length) > floating.Length(length) {
		main = OppositeSide(main)
	}
	return main, OppositeSide(main)
}
