package scenario_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

func ExampleParse() {
	data := []byte(`
placement = "bottom"
reference = "button"
floating  = "menu"
viewport  = { width = 300, height = 200 }

[elements]
button = { x = 20, y = 160, width = 60, height = 30 }
menu   = { width = 120, height = 80 }

[[middleware]]
type = "flip"
`)
	s, err := scenario.Parse(data, scenario.FormatTOML)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	req, err := s.Build(nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := pipeline.NewRunner(nil, nil, nil).Compute(context.Background(), req.Reference, req.Floating, req.Options)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Placement, res.X, res.Y)
	// Output:
	// top -10 80
}
