package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// maxNameLength bounds element and middleware names in scenarios and API
// requests.
const maxNameLength = 128

// ValidatePlacement checks that s is one of the twelve placements.
func ValidatePlacement(s string) error {
	if s == "" {
		return New(ErrCodeInvalidPlacement, "placement cannot be empty")
	}
	if !geom.Placement(s).Valid() {
		return New(ErrCodeInvalidPlacement, "invalid placement: %q (must be a side, optionally with -start or -end)", s)
	}
	return nil
}

// ValidateStrategy checks that s is "absolute" or "fixed".
func ValidateStrategy(s string) error {
	if !platform.Strategy(s).Valid() {
		return New(ErrCodeInvalidStrategy, "invalid strategy: %q (must be one of: absolute, fixed)", s)
	}
	return nil
}

// ValidateName validates an element or middleware name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsControl(r) || unicode.IsSpace(r) }) >= 0 {
		return New(ErrCodeInvalidInput, "%s name contains invalid characters: %q", kind, name)
	}
	return nil
}

// ValidateRect checks that r has finite coordinates and non-negative size.
func ValidateRect(kind string, r geom.Rect) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s rect must be finite", kind)
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return New(ErrCodeInvalidInput, "%s rect cannot have negative size (%gx%g)", kind, r.Width, r.Height)
	}
	return nil
}

// ValidateScale checks that both scale factors are positive and finite.
func ValidateScale(s geom.Coords) error {
	for _, v := range []float64{s.X, s.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidInput, "scale must be positive and finite, got (%g, %g)", s.X, s.Y)
		}
	}
	return nil
}
