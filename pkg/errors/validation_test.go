package errors

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/floatplace/pkg/geom"
)

func TestValidatePlacement(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"top", false},
		{"bottom-start", false},
		{"left-end", false},

		{"", true},
		{"center", true},
		{"top-middle", true},
		{"TOP", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidatePlacement(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePlacement(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidPlacement) {
			t.Errorf("ValidatePlacement(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPlacement)
		}
	}
}

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"absolute", false},
		{"fixed", false},
		{"sticky", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStrategy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tooltip", false},
		{"with dash", "menu-button", false},
		{"with hash", "#document", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "my button", true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("element", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name    string
		rect    geom.Rect
		wantErr bool
	}{
		{"zero", geom.Rect{}, false},
		{"negative origin", geom.Rect{X: -10, Y: -20, Width: 5, Height: 5}, false},
		{"negative width", geom.Rect{Width: -1, Height: 5}, true},
		{"NaN", geom.Rect{X: math.NaN()}, true},
		{"Inf", geom.Rect{Height: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect("floating", tt.rect)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect(%+v) error = %v, wantErr %v", tt.rect, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	if err := ValidateScale(geom.Coords{X: 1, Y: 2}); err != nil {
		t.Errorf("ValidateScale(1, 2) error = %v", err)
	}
	if err := ValidateScale(geom.Coords{X: 0, Y: 1}); err == nil {
		t.Error("ValidateScale(0, 1) should fail")
	}
	if err := ValidateScale(geom.Coords{X: 1, Y: -1}); err == nil {
		t.Error("ValidateScale(1, -1) should fail")
	}
}
