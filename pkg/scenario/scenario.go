// Package scenario describes positioning requests as data.
//
// A scenario holds everything one request needs. That is the pre-measured
// element rects, the viewport, clipping and offset-parent setup, the obstacles
// and the middleware list. Scenarios are read from TOML, YAML or JSON:
//
//	name      = "tooltip"
//	placement = "bottom"
//	reference = "button"
//	floating  = "tooltip"
//	viewport  = { width = 400, height = 300 }
//
//	[elements]
//	button  = { x = 150, y = 250, width = 100, height = 30 }
//	tooltip = { width = 80, height = 24 }
//
//	[[middleware]]
//	type   = "offset"
//	offset = { main_axis = 8 }
//
//	[[middleware]]
//	type = "flip"
//
// [Scenario.Build] validates the scenario and turns it into the element
// handles and [pipeline.Options] a [pipeline.Runner] consumes, backed by a
// [static.Adapter].
package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/middleware/hide"
	"github.com/matzehuels/floatplace/pkg/middleware/offset"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// Middleware types.
const (
	TypeOffset = offset.Name
	TypeFlip   = flip.Name
	TypeHide   = hide.Name
)

// Scenario is one positioning request.
type Scenario struct {
	Name      string            `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Placement geom.Placement    `json:"placement,omitempty" toml:"placement" yaml:"placement,omitempty"`
	Strategy  platform.Strategy `json:"strategy,omitempty" toml:"strategy" yaml:"strategy,omitempty"`
	RTL       bool              `json:"rtl,omitempty" toml:"rtl" yaml:"rtl,omitempty"`
	MaxResets int               `json:"max_resets,omitempty" toml:"max_resets" yaml:"max_resets,omitempty"`

	// Viewport is the root clipping area. Document defaults to Viewport.
	Viewport geom.Rect  `json:"viewport" toml:"viewport" yaml:"viewport"`
	Document *geom.Rect `json:"document,omitempty" toml:"document" yaml:"document,omitempty"`

	// Reference and Floating name entries of Elements. A virtual reference
	// is not looked up in Elements.
	Reference string       `json:"reference" toml:"reference" yaml:"reference"`
	Floating  string       `json:"floating" toml:"floating" yaml:"floating"`
	Virtual   *VirtualSpec `json:"virtual,omitempty" toml:"virtual" yaml:"virtual,omitempty"`

	// Elements maps element names to their measured rects.
	Elements map[string]geom.Rect `json:"elements" toml:"elements" yaml:"elements"`

	// Clips maps element names to the rect of their clipping ancestors.
	Clips map[string]geom.Rect `json:"clips,omitempty" toml:"clips" yaml:"clips,omitempty"`

	OffsetParent *OffsetParentSpec `json:"offset_parent,omitempty" toml:"offset_parent" yaml:"offset_parent,omitempty"`

	// Obstacles name elements the floating element must not overlap.
	Obstacles []string `json:"obstacles,omitempty" toml:"obstacles" yaml:"obstacles,omitempty"`

	Middleware []MiddlewareSpec `json:"middleware,omitempty" toml:"middleware" yaml:"middleware,omitempty"`
}

// VirtualSpec turns the reference into a virtual element with its own rect.
type VirtualSpec struct {
	Rect geom.Rect `json:"rect" toml:"rect" yaml:"rect"`
	// Context names the element whose clipping context the reference uses.
	Context string `json:"context,omitempty" toml:"context" yaml:"context,omitempty"`
}

// OffsetParentSpec installs an offset parent. Scale defaults to {1, 1}.
type OffsetParentSpec struct {
	Element string      `json:"element" toml:"element" yaml:"element"`
	Origin  geom.Coords `json:"origin" toml:"origin" yaml:"origin"`
	Scale   geom.Coords `json:"scale" toml:"scale" yaml:"scale"`
}

// MiddlewareSpec configures one middleware. Only the options block matching
// Type is read.
type MiddlewareSpec struct {
	Type string `json:"type" toml:"type" yaml:"type"`

	Offset *offset.Options `json:"offset,omitempty" toml:"offset" yaml:"offset,omitempty"`
	Flip   *flip.Options   `json:"flip,omitempty" toml:"flip" yaml:"flip,omitempty"`
	Hide   *hide.Options   `json:"hide,omitempty" toml:"hide" yaml:"hide,omitempty"`

	// Detect configures overflow detection for flip and hide.
	Detect *DetectSpec `json:"detect,omitempty" toml:"detect" yaml:"detect,omitempty"`
}

// DetectSpec is the serializable form of overflow.Options. Element
// references are by name.
type DetectSpec struct {
	Boundary         []string     `json:"boundary,omitempty" toml:"boundary" yaml:"boundary,omitempty"`
	BoundaryRect     *geom.Rect   `json:"boundary_rect,omitempty" toml:"boundary_rect" yaml:"boundary_rect,omitempty"`
	RootBoundary     string       `json:"root_boundary,omitempty" toml:"root_boundary" yaml:"root_boundary,omitempty"`
	RootBoundaryRect *geom.Rect   `json:"root_boundary_rect,omitempty" toml:"root_boundary_rect" yaml:"root_boundary_rect,omitempty"`
	ElementContext   string       `json:"element_context,omitempty" toml:"element_context" yaml:"element_context,omitempty"`
	AltBoundary      bool         `json:"alt_boundary,omitempty" toml:"alt_boundary" yaml:"alt_boundary,omitempty"`
	Padding          geom.Padding `json:"padding" toml:"padding" yaml:"padding,omitempty"`
}

// Hash returns a content hash of the scenario for result caching.
func (s *Scenario) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("hash scenario: %w", err)
	}
	return cache.Hash(data), nil
}

// Title returns the scenario name, or "<reference> -> <floating>".
func (s *Scenario) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Reference + " -> " + s.Floating
}
