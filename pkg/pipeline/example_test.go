package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/middleware/offset"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/platform/static"
)

func ExampleRunner_Compute() {
	a := static.New(geom.Rect{Width: 400, Height: 300}).
		Set(static.Element("button"), geom.Rect{X: 150, Y: 250, Width: 100, Height: 30}).
		Set(static.Element("tooltip"), geom.Rect{Width: 80, Height: 24})

	runner := pipeline.NewRunner(nil, nil, nil)
	res, err := runner.Compute(context.Background(), static.Element("button"), static.Element("tooltip"), pipeline.Options{
		Placement: geom.BottomPlacement,
		Platform:  a,
		Middleware: []middleware.Middleware{
			offset.Gap(8),
			flip.New(flip.Options{}),
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s at (%g, %g) after %d reset(s)\n", res.Placement, res.X, res.Y, res.Resets)
	// Output:
	// top at (160, 218) after 1 reset(s)
}

func ExampleCoordsFromPlacement() {
	rects := platform.ElementRects{
		Reference: geom.Rect{Width: 100, Height: 40},
		Floating:  geom.Rect{Width: 60, Height: 20},
	}
	c := pipeline.CoordsFromPlacement(rects, geom.RightEnd, false)
	fmt.Println(c.X, c.Y)
	// Output:
	// 100 20
}
