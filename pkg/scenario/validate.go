package scenario

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/middleware/hide"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// Validate checks the whole scenario and reports every problem at once.
// The returned error has code ErrCodeInvalidScenario; multierr.Errors lists
// the individual problems.
func (s *Scenario) Validate() error {
	var err error

	if s.Placement != "" {
		err = multierr.Append(err, errors.ValidatePlacement(string(s.Placement)))
	}
	if s.Strategy != "" {
		err = multierr.Append(err, errors.ValidateStrategy(string(s.Strategy)))
	}
	if s.MaxResets < 0 {
		err = multierr.Append(err, fmt.Errorf("max_resets cannot be negative (got %d)", s.MaxResets))
	}

	err = multierr.Append(err, errors.ValidateRect("viewport", s.Viewport))
	if s.Viewport.Width == 0 || s.Viewport.Height == 0 {
		err = multierr.Append(err, fmt.Errorf("viewport must have a non-zero size"))
	}
	if s.Document != nil {
		err = multierr.Append(err, errors.ValidateRect("document", *s.Document))
	}

	for _, name := range sortedKeys(s.Elements) {
		err = multierr.Append(err, errors.ValidateName("element", name))
		err = multierr.Append(err, errors.ValidateRect(fmt.Sprintf("element %q", name), s.Elements[name]))
	}
	for _, name := range sortedKeys(s.Clips) {
		err = multierr.Append(err, s.requireElement("clip", name))
		err = multierr.Append(err, errors.ValidateRect(fmt.Sprintf("clip %q", name), s.Clips[name]))
	}

	if s.Virtual != nil {
		err = multierr.Append(err, errors.ValidateRect("virtual reference", s.Virtual.Rect))
		if s.Virtual.Context != "" {
			err = multierr.Append(err, s.requireElement("virtual context", s.Virtual.Context))
		}
	} else {
		err = multierr.Append(err, s.requireElement("reference", s.Reference))
	}
	err = multierr.Append(err, s.requireElement("floating", s.Floating))
	if s.Virtual == nil && s.Reference != "" && s.Reference == s.Floating {
		err = multierr.Append(err, fmt.Errorf("reference and floating must be different elements"))
	}

	if op := s.OffsetParent; op != nil {
		err = multierr.Append(err, s.requireElement("offset parent", op.Element))
		if op.Scale != (geom.Coords{}) {
			err = multierr.Append(err, errors.ValidateScale(op.Scale))
		}
	}

	for _, name := range s.Obstacles {
		err = multierr.Append(err, s.requireElement("obstacle", name))
		if name == s.Floating {
			err = multierr.Append(err, fmt.Errorf("the floating element cannot be its own obstacle"))
		}
	}

	for i, m := range s.Middleware {
		err = multierr.Append(err, s.validateMiddleware(i, m))
	}

	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "invalid scenario %q", s.Title())
	}
	return nil
}

func (s *Scenario) validateMiddleware(i int, m MiddlewareSpec) error {
	var err error
	wrap := func(e error) error {
		if e == nil {
			return nil
		}
		return fmt.Errorf("middleware %d (%s): %w", i, m.Type, e)
	}

	switch m.Type {
	case TypeOffset:
		if m.Detect != nil {
			err = multierr.Append(err, wrap(fmt.Errorf("offset does not take detect options")))
		}
	case TypeFlip:
		if m.Flip != nil {
			err = multierr.Append(err, wrap(m.Flip.Validate()))
		}
	case TypeHide:
		if m.Hide != nil {
			switch m.Hide.Strategy {
			case "", hide.ReferenceHidden, hide.Escaped:
			default:
				err = multierr.Append(err, wrap(fmt.Errorf("invalid hide strategy %q (must be one of: referenceHidden, escaped)", m.Hide.Strategy)))
			}
		}
	case "":
		return wrap(fmt.Errorf("type is required"))
	default:
		return wrap(fmt.Errorf("unknown type (must be one of: offset, flip, hide)"))
	}

	if d := m.Detect; d != nil {
		for _, name := range d.Boundary {
			err = multierr.Append(err, wrap(s.requireElement("boundary", name)))
		}
		if d.BoundaryRect != nil {
			err = multierr.Append(err, wrap(errors.ValidateRect("boundary", *d.BoundaryRect)))
			if len(d.Boundary) > 0 {
				err = multierr.Append(err, wrap(fmt.Errorf("boundary and boundary_rect are mutually exclusive")))
			}
		}
		switch platform.RootArea(d.RootBoundary) {
		case "", platform.Viewport, platform.Document:
		default:
			err = multierr.Append(err, wrap(fmt.Errorf("invalid root_boundary %q (must be one of: viewport, document)", d.RootBoundary)))
		}
		if d.RootBoundaryRect != nil {
			err = multierr.Append(err, wrap(errors.ValidateRect("root boundary", *d.RootBoundaryRect)))
		}
		switch middleware.ElementContext(d.ElementContext) {
		case "", middleware.FloatingContext, middleware.ReferenceContext:
		default:
			err = multierr.Append(err, wrap(fmt.Errorf("invalid element_context %q (must be one of: floating, reference)", d.ElementContext)))
		}
	}
	return err
}

func (s *Scenario) requireElement(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s element is required", kind)
	}
	if _, ok := s.Elements[name]; !ok {
		return fmt.Errorf("%s element %q is not defined in elements", kind, name)
	}
	return nil
}

func sortedKeys(m map[string]geom.Rect) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
