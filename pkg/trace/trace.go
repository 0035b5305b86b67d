// Package trace records what happened during one positioning request.
//
// The pipeline driver feeds a [Recorder] with every middleware evaluation,
// every reset and the final convergence. The resulting [Trace] is plain data
// (it marshals to JSON for the HTTP API) and can be exported as a Graphviz
// digraph with [Trace.ToDOT] or rendered to SVG with [Trace.RenderSVG].
//
// A nil *Recorder is valid and records nothing, so the driver never checks
// whether tracing is enabled.
package trace

import (
	"sync"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// Kind classifies an event.
type Kind string

// Event kinds.
const (
	KindEvaluate Kind = "evaluate"
	KindReset    Kind = "reset"
	KindConverge Kind = "converge"
)

// Event is one step of a request.
type Event struct {
	// Seq numbers events in the order they happened, starting at 0.
	Seq int `json:"seq"`
	// Pass is the number of resets that happened before this event.
	Pass int `json:"pass"`

	Kind       Kind           `json:"kind"`
	Middleware string         `json:"middleware,omitempty"`
	Placement  geom.Placement `json:"placement"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`

	// ResetTo is the placement a reset switched to. Empty when a reset kept
	// the placement and only replaced rects.
	ResetTo geom.Placement `json:"reset_to,omitempty"`
}

// Trace is the recorded history of one request.
type Trace struct {
	RequestID string  `json:"request_id"`
	Events    []Event `json:"events"`
}

// Passes returns the number of passes over the middleware list.
func (t *Trace) Passes() int {
	if t == nil || len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Pass + 1
}

// Resets returns the reset events.
func (t *Trace) Resets() []Event {
	if t == nil {
		return nil
	}
	var out []Event
	for _, e := range t.Events {
		if e.Kind == KindReset {
			out = append(out, e)
		}
	}
	return out
}

// Recorder accumulates events. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	trace Trace
	pass  int
}

// NewRecorder creates a recorder for the given request.
func NewRecorder(requestID string) *Recorder {
	return &Recorder{trace: Trace{RequestID: requestID}}
}

// Evaluate records that mw ran against placement p and left the floating
// element at (x, y).
func (r *Recorder) Evaluate(mw string, p geom.Placement, x, y float64) {
	r.add(Event{Kind: KindEvaluate, Middleware: mw, Placement: p, X: x, Y: y})
}

// Reset records that mw restarted the pipeline. Events after a reset belong
// to the next pass.
func (r *Recorder) Reset(mw string, from, to geom.Placement, x, y float64) {
	if r == nil {
		return
	}
	r.add(Event{Kind: KindReset, Middleware: mw, Placement: from, ResetTo: to, X: x, Y: y})
	r.mu.Lock()
	r.pass++
	r.mu.Unlock()
}

// Converge records the final position.
func (r *Recorder) Converge(p geom.Placement, x, y float64) {
	r.add(Event{Kind: KindConverge, Placement: p, X: x, Y: y})
}

// Trace returns a copy of everything recorded so far, or nil for a nil
// recorder.
func (r *Recorder) Trace() *Trace {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Trace{
		RequestID: r.trace.RequestID,
		Events:    append([]Event(nil), r.trace.Events...),
	}
}

func (r *Recorder) add(e Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Seq = len(r.trace.Events)
	e.Pass = r.pass
	r.trace.Events = append(r.trace.Events, e)
}
