// Package geom provides the geometry primitives shared by the positioning engine.
//
// Everything here is pure value arithmetic: no platform queries, no state.
// The overflow detector, the middleware and the pipeline driver all speak in
// these types.
//
// # Placements
//
// A [Placement] is a [Side] optionally suffixed with an [Alignment]:
//
//	geom.BottomPlacement // "bottom"
//	geom.BottomStart     // "bottom-start"
//	geom.LeftEnd         // "left-end"
//
// Each side belongs to exactly one [Axis]. The side's own axis is the main
// axis; the perpendicular one is the alignment (cross) axis:
//
//	geom.SideAxis(geom.TopPlacement)      // AxisY
//	geom.AlignmentAxis(geom.TopPlacement) // AxisX
//
// # Rectangles
//
// [Rect] is the measured form (x, y, width, height). [ClientRect] adds the
// derived edges and always satisfies Right = X + Width, Bottom = Y + Height.
// Convert with [RectToClientRect].
//
// # Side objects
//
// [SideObject] maps each of the four sides to a signed value. For overflow
// results, positive means the element overflows that side by that many
// pixels, negative is the remaining margin, zero is flush.
package geom
