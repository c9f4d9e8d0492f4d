// Package scene assembles everything a renderer needs for one frame from
// the model's current state.
package scene

import (
	"github.com/olivier-w/springbez/internal/bezier"
	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/model"
)

// Options controls curve sampling.
type Options struct {
	Steps           int
	TangentInterval int
	TangentLength   float64
}

// Frame is an immutable snapshot of the curve and its decorations.
type Frame struct {
	Width  float64
	Height float64
	Mode   model.Mode

	// Polyline has Steps+1 points from P0 to P3.
	Polyline []geom.Point
	Markers  []bezier.Marker
	// Points holds P0, P1, P2 and P3.
	Points [4]geom.Point

	// Targets holds the spring targets of P1 and P2 in auto mode.
	Targets    [2]geom.Point
	HasTargets bool

	Cursor   bezier.Projection
	Grabbed  model.Handle
	Sampling Options
}

// Build samples the model's curve.
func Build(m *model.Model, cursor geom.Point, grabbed model.Handle, opts Options) Frame {
	c := m.Curve()
	w, h := m.Size()
	f := Frame{
		Width:    w,
		Height:   h,
		Mode:     m.Mode(),
		Polyline: c.Sample(opts.Steps),
		Markers:  c.Markers(opts.Steps, opts.TangentInterval, opts.TangentLength),
		Points:   m.Points(),
		Cursor:   c.Project(cursor.X),
		Grabbed:  grabbed,
		Sampling: opts,
	}
	t1, ok1 := m.Target(model.P1)
	t2, ok2 := m.Target(model.P2)
	if ok1 && ok2 {
		f.Targets = [2]geom.Point{t1, t2}
		f.HasTargets = true
	}
	return f
}

// Curve returns the Bézier segment the frame was sampled from.
func (f Frame) Curve() bezier.Cubic {
	return bezier.Cubic{P0: f.Points[0], P1: f.Points[1], P2: f.Points[2], P3: f.Points[3]}
}
