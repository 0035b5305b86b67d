package scenario

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/middleware/hide"
	"github.com/matzehuels/floatplace/pkg/overflow"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/platform/static"
)

func valid() *Scenario {
	return &Scenario{
		Placement: geom.BottomPlacement,
		Reference: "reference",
		Floating:  "floating",
		Viewport:  geom.Rect{Width: 200, Height: 170},
		Elements: map[string]geom.Rect{
			"reference": {Y: 50, Width: 100, Height: 100},
			"floating":  {Width: 50, Height: 50},
		},
		Middleware: []MiddlewareSpec{{
			Type: TypeFlip,
			Flip: &flip.Options{FallbackPlacements: []geom.Placement{geom.TopPlacement}},
		}},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"dir/a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", FormatJSON, false},
		{"a.xml", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	var hashes []string
	for _, name := range []string{"flip.toml", "flip.yaml", "flip.json"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.Name != "flip-to-top" {
				t.Errorf("Name = %q, want flip-to-top", s.Name)
			}
			if got := s.Elements["reference"]; got != (geom.Rect{Y: 50, Width: 100, Height: 100}) {
				t.Errorf("reference rect = %+v", got)
			}
			if len(s.Middleware) != 1 || s.Middleware[0].Flip == nil {
				t.Fatalf("middleware = %+v, want one flip", s.Middleware)
			}
			if fb := s.Middleware[0].Flip.FallbackPlacements; len(fb) != 1 || fb[0] != geom.TopPlacement {
				t.Errorf("fallbacks = %v, want [top]", fb)
			}
			h, err := s.Hash()
			if err != nil {
				t.Fatalf("Hash: %v", err)
			}
			hashes = append(hashes, h)
		})
	}
	for i := 1; i < len(hashes); i++ {
		if hashes[i] != hashes[0] {
			t.Errorf("hash of format %d differs: %s != %s", i, hashes[i], hashes[0])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", "testdata/nope.toml", errors.ErrCodeNotFound},
		{"bad extension", "testdata/flip.xml", errors.ErrCodeUnsupported},
		{"unknown field", "testdata/unknown_field.yaml", errors.ErrCodeInvalidScenario},
		{"invalid", "testdata/invalid.toml", errors.ErrCodeInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestParseUnknownTOMLField(t *testing.T) {
	data := []byte(`
reference = "a"
floating = "b"
viewport = { width = 10, height = 10 }
elements = { a = { width = 1, height = 1 }, b = { width = 1, height = 1 } }
autoplace = true
`)
	_, err := Parse(data, FormatTOML)
	if !errors.Is(err, errors.ErrCodeInvalidScenario) || !strings.Contains(err.Error(), "autoplace") {
		t.Errorf("err = %v, want unknown field autoplace", err)
	}
}

func TestValidateAggregates(t *testing.T) {
	_, err := Load("testdata/invalid.toml")
	if err == nil {
		t.Fatal("expected error")
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %T, want *errors.Error", err)
	}
	problems := multierr.Errors(e.Cause)
	if len(problems) < 7 {
		t.Errorf("got %d problems, want at least 7:\n%v", len(problems), err)
	}

	msg := err.Error()
	for _, want := range []string{
		`"middle"`,
		`"sticky"`,
		"viewport must have a non-zero size",
		`reference element "button" is not defined`,
		`obstacle element "ghost" is not defined`,
		"middleware 0 (shift): unknown type",
		"closest",
		"negative size",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scenario)
		want   string
	}{
		{"same element", func(s *Scenario) { s.Floating = "reference" }, "must be different"},
		{"floating obstacle", func(s *Scenario) { s.Obstacles = []string{"floating"} }, "its own obstacle"},
		{"missing type", func(s *Scenario) { s.Middleware = []MiddlewareSpec{{}} }, "type is required"},
		{"bad hide strategy", func(s *Scenario) {
			s.Middleware = []MiddlewareSpec{{Type: TypeHide, Hide: &hide.Options{Strategy: "gone"}}}
		}, `invalid hide strategy "gone"`},
		{"offset with detect", func(s *Scenario) {
			s.Middleware = []MiddlewareSpec{{Type: TypeOffset, Detect: &DetectSpec{}}}
		}, "does not take detect"},
		{"bad root boundary", func(s *Scenario) {
			s.Middleware[0].Detect = &DetectSpec{RootBoundary: "screen"}
		}, `invalid root_boundary "screen"`},
		{"bad element context", func(s *Scenario) {
			s.Middleware[0].Detect = &DetectSpec{ElementContext: "arrow"}
		}, `invalid element_context "arrow"`},
		{"undefined boundary", func(s *Scenario) {
			s.Middleware[0].Detect = &DetectSpec{Boundary: []string{"panel"}}
		}, `boundary element "panel"`},
		{"boundary exclusive", func(s *Scenario) {
			s.Middleware[0].Detect = &DetectSpec{Boundary: []string{"reference"}, BoundaryRect: &geom.Rect{Width: 1, Height: 1}}
		}, "mutually exclusive"},
		{"bad scale", func(s *Scenario) {
			s.OffsetParent = &OffsetParentSpec{Element: "reference", Scale: geom.Coords{X: -1, Y: 1}}
		}, "scale must be positive"},
		{"undefined clip", func(s *Scenario) {
			s.Clips = map[string]geom.Rect{"ghost": {Width: 1, Height: 1}}
		}, `clip element "ghost"`},
		{"negative resets", func(s *Scenario) { s.MaxResets = -2 }, "max_resets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want %q", err, tt.want)
			}
		})
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid scenario: %v", err)
	}
}

func TestBuildRuns(t *testing.T) {
	s, err := Load("testdata/flip.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	req, err := s.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res, err := pipeline.NewRunner(nil, nil, nil).Compute(context.Background(), req.Reference, req.Floating, req.Options)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Placement != geom.TopPlacement || res.X != 25 || res.Y != 0 || res.Resets != 1 {
		t.Errorf("got %s (%g, %g) resets=%d, want top (25, 0) resets=1", res.Placement, res.X, res.Y, res.Resets)
	}
}

func TestBuildRepeatedMiddleware(t *testing.T) {
	s := valid()
	s.Middleware = append(s.Middleware,
		MiddlewareSpec{Type: TypeHide},
		MiddlewareSpec{Type: TypeHide, Hide: &hide.Options{Strategy: hide.Escaped}},
	)
	req, err := s.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res, err := pipeline.NewRunner(nil, nil, nil).Compute(context.Background(), req.Reference, req.Floating, req.Options)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	d, ok := res.MiddlewareData[hide.Name].(hide.Data)
	if !ok {
		t.Fatalf("hide data = %T, want hide.Data", res.MiddlewareData[hide.Name])
	}
	if d.ReferenceHiddenOffsets == nil || d.EscapedOffsets == nil {
		t.Errorf("both halves should be present: %+v", d)
	}
}

func TestBuildTooltip(t *testing.T) {
	s, err := Load("testdata/tooltip.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	req, err := s.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(req.Options.Middleware) != 3 {
		t.Fatalf("len(Middleware) = %d, want 3", len(req.Options.Middleware))
	}
	names := req.Options.MiddlewareNames()
	if strings.Join(names, ",") != "offset,flip,hide" {
		t.Errorf("names = %v, want [offset flip hide]", names)
	}
	if len(req.Options.Obstacles) != 1 || req.Options.Obstacles[0].Node != static.Element("banner") {
		t.Errorf("obstacles = %+v, want banner", req.Options.Obstacles)
	}

	res, err := pipeline.NewRunner(nil, nil, nil).Compute(context.Background(), req.Reference, req.Floating, req.Options)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Placement != geom.TopPlacement || res.X != 160 || res.Y != 218 {
		t.Errorf("got %s (%g, %g), want top (160, 218)", res.Placement, res.X, res.Y)
	}
}

func TestBuildVirtualReference(t *testing.T) {
	s := valid()
	s.Reference = "cursor"
	s.Virtual = &VirtualSpec{Rect: geom.Rect{X: 10, Y: 10, Width: 0, Height: 0}, Context: "reference"}
	req, err := s.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v, ok := req.Reference.(*static.Virtual)
	if !ok {
		t.Fatalf("Reference = %T, want *static.Virtual", req.Reference)
	}
	if v.Name != "cursor" || v.Context != static.Element("reference") {
		t.Errorf("virtual = %+v", v)
	}
}

func TestDetectSpecOptions(t *testing.T) {
	var nilSpec *DetectSpec
	if got := nilSpec.options(); got.AltBoundary || got.ElementContext != "" || !got.Boundary.IsClippingAncestors() {
		t.Errorf("nil spec options = %+v, want zero value", got)
	}

	d := &DetectSpec{
		Boundary:       []string{"panel", "card"},
		RootBoundary:   "document",
		ElementContext: "reference",
		AltBoundary:    true,
		Padding:        geom.UniformPadding(5),
	}
	got := d.options()
	want := overflow.Options{
		Boundary:       platform.Boundary{Elements: []platform.Element{static.Element("panel"), static.Element("card")}},
		RootBoundary:   platform.RootBoundary{Area: platform.Document},
		ElementContext: "reference",
		AltBoundary:    true,
		Padding:        geom.UniformPadding(5),
	}
	if len(got.Boundary.Elements) != 2 || got.Boundary.Elements[0] != want.Boundary.Elements[0] || got.Boundary.Elements[1] != want.Boundary.Elements[1] {
		t.Errorf("Boundary = %+v, want %+v", got.Boundary, want.Boundary)
	}
	if got.RootBoundary.ResolvedArea() != platform.Document || got.ElementContext != want.ElementContext || !got.AltBoundary {
		t.Errorf("options = %+v, want %+v", got, want)
	}
	if got.Padding.SideObject() != want.Padding.SideObject() {
		t.Errorf("Padding = %+v, want %+v", got.Padding, want.Padding)
	}
}

func TestHashChangesWithContent(t *testing.T) {
	a, _ := valid().Hash()
	s := valid()
	s.Elements["floating"] = geom.Rect{Width: 51, Height: 50}
	b, _ := s.Hash()
	if a == b {
		t.Error("Hash should change when geometry changes")
	}
	c, _ := valid().Hash()
	if a != c {
		t.Error("Hash should be deterministic")
	}
}

func TestTitle(t *testing.T) {
	s := valid()
	if got := s.Title(); got != "reference -> floating" {
		t.Errorf("Title() = %q", got)
	}
	s.Name = "menu"
	if got := s.Title(); got != "menu" {
		t.Errorf("Title() = %q, want menu", got)
	}
}

// TestExampleScenarios keeps the shipped example files loadable and
// convergent.
func TestExampleScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenarios")
	}

	want := map[string]geom.Placement{
		"tooltip": geom.TopPlacement,
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			req, err := s.Build(nil)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			res, err := pipeline.NewRunner(nil, nil, nil).Compute(context.Background(), req.Reference, req.Floating, req.Options)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if p, ok := want[s.Name]; ok && res.Placement != p {
				t.Errorf("Placement = %s, want %s", res.Placement, p)
			}
		})
	}
}
