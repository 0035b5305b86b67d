package pipeline

import (
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// CoordsFromPlacement places the floating rect against the reference rect.
//
// The floating element sits flush against the placement's side and is
// centered on the reference along the other axis. A "-start" alignment lines
// up the starting edges, "-end" the ending edges; for top and bottom
// placements in right-to-left layouts the two are swapped.
func CoordsFromPlacement(rects platform.ElementRects, p geom.Placement, rtl bool) geom.Coords {
	ref, fl := rects.Reference, rects.Floating

	alignAxis := geom.AlignmentAxis(p)
	length := geom.AxisLength(alignAxis)
	vertical := geom.SideAxis(p) == geom.AxisY

	commonX := ref.X + ref.Width/2 - fl.Width/2
	commonY := ref.Y + ref.Height/2 - fl.Height/2
	commonAlign := ref.Length(length)/2 - fl.Length(length)/2

	var c geom.Coords
	switch p.Side() {
	case geom.Top:
		c = geom.Coords{X: commonX, Y: ref.Y - fl.Height}
	case geom.Bottom:
		c = geom.Coords{X: commonX, Y: ref.Y + ref.Height}
	case geom.Right:
		c = geom.Coords{X: ref.X + ref.Width, Y: commonY}
	case geom.Left:
		c = geom.Coords{X: ref.X - fl.Width, Y: commonY}
	default:
		c = geom.Coords{X: ref.X, Y: ref.Y}
	}

	dir := 1.0
	if rtl && vertical {
		dir = -1
	}
	switch p.Alignment() {
	case geom.AlignStart:
		c = c.Set(alignAxis, c.Get(alignAxis)-commonAlign*dir)
	case geom.AlignEnd:
		c = c.Set(alignAxis, c.Get(alignAxis)+commonAlign*dir)
	}
	return c
}
