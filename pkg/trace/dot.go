package trace

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the trace.
//
// Each pass over the middleware list is a cluster. Evaluations inside a pass
// are chained left to right; a reset is a red dashed edge into the first
// evaluation of the next pass, labeled with the placement it switched to.
// The final position is a double octagon.
func (t *Trace) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Trace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=10];\n")
	if t == nil || len(t.Events) == 0 {
		buf.WriteString("}\n")
		return buf.String()
	}
	if t.RequestID != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", t.RequestID)
	}
	buf.WriteString("\n")

	pass := -1
	for _, e := range t.Events {
		if e.Pass != pass {
			if pass >= 0 {
				buf.WriteString("  }\n")
			}
			pass = e.Pass
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n    label=\"pass %d\";\n    style=dashed;\n", pass, pass)
		}
		fmt.Fprintf(&buf, "    e%d [%s];\n", e.Seq, nodeAttrs(e))
	}
	buf.WriteString("  }\n\n")

	for i := 1; i < len(t.Events); i++ {
		prev, cur := t.Events[i-1], t.Events[i]
		if prev.Kind == KindReset {
			label := string(prev.ResetTo)
			if label == "" {
				label = "rects"
			}
			fmt.Fprintf(&buf, "  e%d -> e%d [label=%q, color=\"#c0392b\", style=dashed];\n", prev.Seq, cur.Seq, label)
			continue
		}
		fmt.Fprintf(&buf, "  e%d -> e%d;\n", prev.Seq, cur.Seq)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(e Event) string {
	switch e.Kind {
	case KindReset:
		return fmt.Sprintf("label=%q, fillcolor=\"#fdecea\"", fmt.Sprintf("%s\nreset\n%s", e.Middleware, e.Placement))
	case KindConverge:
		return fmt.Sprintf("label=%q, shape=doubleoctagon, fillcolor=\"#e8f6ef\"", fmt.Sprintf("%s\n(%g, %g)", e.Placement, e.X, e.Y))
	default:
		return fmt.Sprintf("label=%q", fmt.Sprintf("%s\n%s\n(%g, %g)", e.Middleware, e.Placement, e.X, e.Y))
	}
}

// RenderSVG renders the trace as an SVG image via ToDOT.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails.
func (t *Trace) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
