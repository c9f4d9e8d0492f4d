// Package model owns the curve's four points and the mode that decides how
// the two interior control points move.
//
// A Model is only mutated from Bubbletea's single-threaded Update loop and
// needs no locking.
package model

import (
	"errors"
	"fmt"

	"github.com/olivier-w/springbez/internal/bezier"
	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/spring"
)

// Seed offsets for control points after a reset.
const (
	AutoLift     = 100
	ManualOffset = 50
)

var (
	// ErrWrongMode is returned for an operation that the current mode forbids.
	ErrWrongMode = errors.New("operation not valid in current mode")
	// ErrUnknownHandle is returned for a Handle other than P1 or P2.
	ErrUnknownHandle = errors.New("unknown control point")
)

// ControlPoint is the current position source for one interior point.
// It is either a *Sprung (auto) or a *ManualPoint (manual).
type ControlPoint interface {
	Position() geom.Point
}

// ManualPoint is a control point that only moves when dragged.
type ManualPoint struct {
	Pos geom.Point
}

func (p *ManualPoint) Position() geom.Point { return p.Pos }

// Sprung is a control point driven by a spring.
type Sprung struct {
	Spring *spring.Point
}

func (p *Sprung) Position() geom.Point { return p.Spring.Position }

// Params configures the springs and the anchor layout.
type Params struct {
	Stiffness  float64
	Damping    float64
	Integrator spring.Integrator
	// MaxStep is the per-update dt ceiling; zero means spring.MaxStep.
	MaxStep float64
	Line    LineLength
}

// Model holds the anchors, the two control points and the active mode.
type Model struct {
	mode     Mode
	line     LineLength
	template spring.Point

	width  float64
	height float64
	p0     geom.Point
	p3     geom.Point
	points [2]ControlPoint
	epoch  uint64
}

// New creates a model for a canvas of the given size, seeded for mode.
func New(p Params, mode Mode, width, height float64) (*Model, error) {
	tmpl, err := spring.New(geom.Point{}, p.Stiffness, p.Damping, p.Integrator)
	if err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}
	if p.MaxStep > 0 {
		tmpl.Ceiling = p.MaxStep
	}
	m := &Model{
		mode:     mode,
		line:     p.Line,
		template: *tmpl,
	}
	m.layout(width, height)
	m.reseed()
	return m, nil
}

// Mode returns the active mode.
func (m *Model) Mode() Mode { return m.mode }

// Epoch increments every time the control points are reseeded. Anything
// timed against the old points (the simulation clock) restarts when it
// changes.
func (m *Model) Epoch() uint64 { return m.epoch }

// Size returns the canvas size the anchors were laid out for.
func (m *Model) Size() (width, height float64) { return m.width, m.height }

// Endpoints returns the fixed anchors P0 and P3.
func (m *Model) Endpoints() (p0, p3 geom.Point) { return m.p0, m.p3 }

// LineLength returns the current line-length setting.
func (m *Model) LineLength() LineLength { return m.line }

// SetMode switches mode and reseeds both control points, discarding the old
// ones. Setting the current mode again also reseeds.
func (m *Model) SetMode(mode Mode) {
	logging.Logger().Debug("mode switch", "from", m.mode, "to", mode)
	m.mode = mode
	m.reseed()
}

// Resize lays the anchors out for a new canvas size and reseeds.
func (m *Model) Resize(width, height float64) {
	m.layout(width, height)
	m.reseed()
}

// SetLineLength changes the anchor separation and reseeds.
func (m *Model) SetLineLength(l LineLength) {
	m.line = l
	m.layout(m.width, m.height)
	m.reseed()
}

// Tune changes the spring constants of the template and of any live
// springs. Positions, velocities and targets are kept.
func (m *Model) Tune(stiffness, damping float64) error {
	if _, err := spring.New(geom.Point{}, stiffness, damping, m.template.Integrator()); err != nil {
		return fmt.Errorf("tuning springs: %w", err)
	}
	m.template.Stiffness = stiffness
	m.template.Damping = damping
	for _, cp := range m.points {
		if sp, ok := cp.(*Sprung); ok {
			sp.Spring.Stiffness = stiffness
			sp.Spring.Damping = damping
		}
	}
	logging.Logger().Debug("springs tuned", "stiffness", stiffness, "damping", damping)
	return nil
}

// Tuning returns the current spring constants.
func (m *Model) Tuning() (stiffness, damping float64) {
	return m.template.Stiffness, m.template.Damping
}

// Reset reseeds the control points without changing mode or layout.
func (m *Model) Reset() {
	m.reseed()
}

// SetTarget points a spring at p. It fails with ErrWrongMode in manual mode.
func (m *Model) SetTarget(h Handle, p geom.Point) error {
	i, ok := h.index()
	if !ok {
		return ErrUnknownHandle
	}
	sp, ok := m.points[i].(*Sprung)
	if !ok {
		return fmt.Errorf("set target %s in %s mode: %w", h, m.mode, ErrWrongMode)
	}
	sp.Spring.SetTarget(p)
	return nil
}

// DragTo moves a manual control point directly to p. It fails with
// ErrWrongMode in auto mode.
func (m *Model) DragTo(h Handle, p geom.Point) error {
	i, ok := h.index()
	if !ok {
		return ErrUnknownHandle
	}
	mp, ok := m.points[i].(*ManualPoint)
	if !ok {
		return fmt.Errorf("drag %s in %s mode: %w", h, m.mode, ErrWrongMode)
	}
	mp.Pos = p
	return nil
}

// HitTest returns the control point strictly within radius of p, the nearer
// one if both qualify, or None.
func (m *Model) HitTest(p geom.Point, radius float64) Handle {
	d1 := p.Distance(m.points[0].Position())
	d2 := p.Distance(m.points[1].Position())
	switch {
	case d1 < radius && (d1 <= d2 || d2 >= radius):
		return P1
	case d2 < radius:
		return P2
	}
	return None
}

// Step advances both springs by dt seconds. It does nothing in manual mode.
func (m *Model) Step(dt float64) {
	for _, cp := range m.points {
		if sp, ok := cp.(*Sprung); ok {
			sp.Spring.Update(dt)
		}
	}
}

// Settled reports whether both springs are within eps of their targets.
// Manual points are always settled.
func (m *Model) Settled(eps float64) bool {
	for _, cp := range m.points {
		if sp, ok := cp.(*Sprung); ok && !sp.Spring.Settled(eps) {
			return false
		}
	}
	return true
}

// Position returns the current position of a control point.
func (m *Model) Position(h Handle) geom.Point {
	i, ok := h.index()
	if !ok {
		return geom.Point{}
	}
	return m.points[i].Position()
}

// Target returns the spring target of a control point. ok is false in
// manual mode.
func (m *Model) Target(h Handle) (p geom.Point, ok bool) {
	i, ok := h.index()
	if !ok {
		return geom.Point{}, false
	}
	sp, ok := m.points[i].(*Sprung)
	if !ok {
		return geom.Point{}, false
	}
	return sp.Spring.Target, true
}

// Point returns the control point variant for h, or nil.
func (m *Model) Point(h Handle) ControlPoint {
	i, ok := h.index()
	if !ok {
		return nil
	}
	return m.points[i]
}

// Points returns P0, P1, P2 and P3.
func (m *Model) Points() [4]geom.Point {
	return [4]geom.Point{m.p0, m.points[0].Position(), m.points[1].Position(), m.p3}
}

// Curve returns the Bézier segment for the current positions.
func (m *Model) Curve() bezier.Cubic {
	pts := m.Points()
	return bezier.Cubic{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3]}
}

func (m *Model) layout(width, height float64) {
	m.width = width
	m.height = height
	l := m.line.Resolve(width)
	cx := width / 2
	cy := height / 2
	m.p0 = geom.Pt(cx-l/2, cy)
	m.p3 = geom.Pt(cx+l/2, cy)
}

func (m *Model) reseed() {
	m.epoch++
	switch m.mode {
	case Manual:
		m.points[0] = &ManualPoint{Pos: m.p0.Translate(geom.Vec(ManualOffset, -ManualOffset))}
		m.points[1] = &ManualPoint{Pos: m.p3.Translate(geom.Vec(-ManualOffset, ManualOffset))}
	default:
		m.points[0] = m.newSprung(m.p0.Translate(geom.Vec(0, -AutoLift)))
		m.points[1] = m.newSprung(m.p3.Translate(geom.Vec(0, -AutoLift)))
	}
}

func (m *Model) newSprung(at geom.Point) *Sprung {
	sp := m.template
	sp.Position = at
	sp.Target = at
	sp.Velocity = geom.Vec2{}
	return &Sprung{Spring: &sp}
}
