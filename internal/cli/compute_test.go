package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
)

const flipScenario = `
name      = "flip-to-top"
placement = "bottom"
reference = "reference"
floating  = "floating"
viewport  = { width = 200, height = 170 }

[elements]
reference = { x = 0, y = 50, width = 100, height = 100 }
floating  = { width = 50, height = 50 }

[[middleware]]
type = "flip"
flip = { fallback_placements = ["top"] }
`

// writeScenario writes a scenario file into a temp dir and returns its path.
func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the CLI with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	c.Out = &out

	root := c.RootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestComputeOutput(t *testing.T) {
	path := writeScenario(t, "flip.toml", flipScenario)

	out, err := execute(t, "compute", "--no-cache", path)
	if err != nil {
		t.Fatalf("compute error: %v", err)
	}
	for _, want := range []string{"flip-to-top", "top", "(25, 0)", "1 resets", "fresh", "Placement", "explore"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestComputeJSON(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeScenario(t, "flip.toml", flipScenario)

	for i, wantCached := range []bool{false, true} {
		out, err := execute(t, "compute", "--json", path)
		if err != nil {
			t.Fatalf("run %d: compute error: %v", i, err)
		}

		var got []computed
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("run %d: decode output: %v\n%s", i, err, out)
		}
		if len(got) != 1 {
			t.Fatalf("run %d: len = %d, want 1", i, len(got))
		}
		if got[0].Cached != wantCached {
			t.Errorf("run %d: Cached = %v, want %v", i, got[0].Cached, wantCached)
		}
		if got[0].Result.Placement != geom.TopPlacement {
			t.Errorf("run %d: Placement = %s, want top", i, got[0].Result.Placement)
		}
	}
}

func TestComputeOverrides(t *testing.T) {
	path := writeScenario(t, "flip.toml", flipScenario)

	out, err := execute(t, "compute", "--no-cache", "--json", "--placement", "right", path)
	if err != nil {
		t.Fatalf("compute error: %v", err)
	}
	var got []computed
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	// right of the reference: x=100, y=50+50-25=75; the viewport is 200 wide
	// so it fits and flip never resets.
	res := got[0].Result
	if res.Placement != geom.RightPlacement || res.X != 100 || res.Y != 75 {
		t.Errorf("result = %s (%v, %v), want right (100, 75)", res.Placement, res.X, res.Y)
	}
}

func TestComputeTraceDOT(t *testing.T) {
	path := writeScenario(t, "flip.toml", flipScenario)
	tracePath := filepath.Join(t.TempDir(), "trace.dot")

	if _, err := execute(t, "compute", "--no-cache", "--trace", tracePath, path); err != nil {
		t.Fatalf("compute error: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("trace not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("trace = %q, want DOT", data)
	}
}

func TestComputeErrors(t *testing.T) {
	path := writeScenario(t, "flip.toml", flipScenario)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad placement", []string{"--placement", "middle", path}, errors.ErrCodeInvalidPlacement},
		{"negative resets", []string{"--max-resets=-1", path}, errors.ErrCodeInvalidInput},
		{"trace extension", []string{"--trace", "out.png", path}, errors.ErrCodeUnsupported},
		{"trace with two files", []string{"--trace", "out.dot", path, path}, errors.ErrCodeInvalidInput},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.toml")}, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"compute", "--no-cache"}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestHistoryTable(t *testing.T) {
	out := historyTable(flip.Data{
		Index: 1,
		Overflows: []flip.Attempt{
			{Placement: geom.BottomPlacement, Overflows: []float64{30, -50}},
			{Placement: geom.TopPlacement, Overflows: []float64{0, -50}},
		},
	})

	for _, want := range []string{"bottom", "top", "30  -50", "▸"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
