package geom

// Coords is a point.
type Coords struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Get returns the coordinate on axis a.
func (c Coords) Get(a Axis) float64 {
	if a == AxisY {
		return c.Y
	}
	return c.X
}

// Set returns a copy of c with the coordinate on axis a replaced.
func (c Coords) Set(a Axis, v float64) Coords {
	if a == AxisY {
		c.Y = v
	} else {
		c.X = v
	}
	return c
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Rect is a measured rectangle. Whether the coordinates are document- or
// viewport-relative depends on the positioning strategy in effect.
type Rect struct {
	X      float64 `json:"x" toml:"x" yaml:"x"`
	Y      float64 `json:"y" toml:"y" yaml:"y"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Length returns the width or height.
func (r Rect) Length(l Length) float64 {
	if l == Height {
		return r.Height
	}
	return r.Width
}

// Coords returns the origin of r.
func (r Rect) Coords() Coords { return Coords{X: r.X, Y: r.Y} }

// At returns r moved to (x, y).
func (r Rect) At(x, y float64) Rect {
	r.X, r.Y = x, y
	return r
}

// ClientRect is a Rect with its edges precomputed.
type ClientRect struct {
	Rect
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// RectToClientRect derives the edges of r.
func RectToClientRect(r Rect) ClientRect {
	return ClientRect{
		Rect:   r,
		Top:    r.Y,
		Left:   r.X,
		Right:  r.X + r.Width,
		Bottom: r.Y + r.Height,
	}
}

// CenterX returns the horizontal center.
func (c ClientRect) CenterX() float64 { return c.Left + c.Width/2 }

// CenterY returns the vertical center.
func (c ClientRect) CenterY() float64 { return c.Top + c.Height/2 }

// Intersects reports strict overlap: touching edges do not count.
func Intersects(a, b ClientRect) bool {
	return a.Top < b.Bottom &&
		a.Bottom > b.Top &&
		a.Left < b.Right &&
		a.Right > b.Left
}

// =============================================================================
// SideObject
// =============================================================================

// SideObject holds one signed value per side. The sides are independent.
type SideObject struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// Get returns the value for side s.
func (o SideObject) Get(s Side) float64 {
	switch s {
	case Top:
		return o.Top
	case Right:
		return o.Right
	case Bottom:
		return o.Bottom
	case Left:
		return o.Left
	}
	return 0
}

// Fits reports whether no side overflows.
func (o SideObject) Fits() bool {
	return o.Top <= 0 && o.Right <= 0 && o.Bottom <= 0 && o.Left <= 0
}

// =============================================================================
// Padding
// =============================================================================

// Padding is virtual space around a boundary. Set All for a uniform value,
// or any subset of the per-side fields. Once a per-side field is set, All is
// ignored and the unset sides are 0.
type Padding struct {
	All    float64  `json:"all,omitempty" toml:"all" yaml:"all,omitempty"`
	Top    *float64 `json:"top,omitempty" toml:"top" yaml:"top,omitempty"`
	Right  *float64 `json:"right,omitempty" toml:"right" yaml:"right,omitempty"`
	Bottom *float64 `json:"bottom,omitempty" toml:"bottom" yaml:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty" toml:"left" yaml:"left,omitempty"`
}

// UniformPadding returns the same padding on every side.
func UniformPadding(v float64) Padding {
	return Padding{All: v}
}

// SideObject normalizes the padding to all four sides.
func (p Padding) SideObject() SideObject {
	if !p.partial() {
		return SideObject{Top: p.All, Right: p.All, Bottom: p.All, Left: p.All}
	}
	return SideObject{
		Top:    deref(p.Top),
		Right:  deref(p.Right),
		Bottom: deref(p.Bottom),
		Left:   deref(p.Left),
	}
}

func (p Padding) partial() bool {
	return p.Top != nil || p.Right != nil || p.Bottom != nil || p.Left != nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
