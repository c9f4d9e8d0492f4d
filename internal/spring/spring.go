// Package spring simulates a 2D point pulled toward a target by a damped
// spring with unit mass.
package spring

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivier-w/springbez/internal/geom"
)

// MaxStep is the largest time step, in seconds, that callers should pass to
// Update. Longer gaps (a suspended terminal, a debugger break) must be clamped
// first or the explicit integrator can diverge.
const MaxStep = 0.1

// ErrInvalidParams is returned for non-positive stiffness or negative damping.
var ErrInvalidParams = errors.New("invalid spring parameters")

// Clamp limits dt to [0, MaxStep].
func Clamp(dt float64) float64 {
	return ClampTo(dt, MaxStep)
}

// ClampTo limits dt to [0, ceiling]. NaN is treated as zero.
func ClampTo(dt, ceiling float64) float64 {
	if !(dt > 0) {
		return 0
	}
	if dt > ceiling {
		return ceiling
	}
	return dt
}

// Point is a spring-driven position. The zero value is not usable; create
// one with New.
type Point struct {
	Position  geom.Point
	Velocity  geom.Vec2
	Target    geom.Point
	Stiffness float64
	Damping   float64

	// Ceiling bounds every step passed to Update.
	Ceiling float64

	integrator Integrator
}

// New returns a point at rest on pos with its target equal to pos. A nil
// integrator selects Euler.
func New(pos geom.Point, stiffness, damping float64, integrator Integrator) (*Point, error) {
	if !(stiffness > 0) || !(damping >= 0) {
		return nil, fmt.Errorf("%w: stiffness=%g damping=%g", ErrInvalidParams, stiffness, damping)
	}
	if integrator == nil {
		integrator = Euler{}
	}
	return &Point{
		Position:   pos,
		Target:     pos,
		Stiffness:  stiffness,
		Damping:    damping,
		Ceiling:    MaxStep,
		integrator: integrator,
	}, nil
}

// SetTarget replaces the target. There is no queueing; the latest call wins.
func (p *Point) SetTarget(t geom.Point) {
	p.Target = t
}

// Update advances the simulation by dt seconds. dt <= 0 is a no-op and dt
// above Ceiling is cut to Ceiling. Stiff or heavily damped springs are
// advanced in equal substeps short enough for the integrator to stay stable.
func (p *Point) Update(dt float64) {
	dt = ClampTo(dt, p.Ceiling)
	if dt == 0 {
		return
	}
	n := substeps(dt, p.Stiffness, p.Damping)
	h := dt / float64(n)
	for range n {
		p.integrator.Step(p, h)
	}
}

// stableMargin keeps substeps strictly inside the stability region.
const stableMargin = 0.9

// substeps returns how many equal steps dt needs so that each step h
// satisfies c·h < 1 and k·h² < 1. Semi-implicit Euler is stable there: its
// step matrix has determinant 1 - c·h and trace 2 - k·h² - c·h.
func substeps(dt, stiffness, damping float64) int {
	hmax := 1 / math.Sqrt(stiffness)
	if damping > 0 {
		hmax = math.Min(hmax, 1/damping)
	}
	hmax *= stableMargin
	if dt <= hmax {
		return 1
	}
	return int(math.Ceil(dt / hmax))
}

// Integrator returns the integrator advancing p.
func (p *Point) Integrator() Integrator {
	return p.integrator
}

// Settled reports whether the point is within eps of its target and moving
// slower than eps.
func (p *Point) Settled(eps float64) bool {
	return p.Position.Distance(p.Target) < eps && p.Velocity.Hypot() < eps
}

// Integrator advances a Point by one time step.
type Integrator interface {
	Name() string
	Step(p *Point, dt float64)
}

// Euler integrates with semi-implicit (symplectic) Euler:
//
//	F = k(target - position) - c·velocity
//	velocity += F·dt
//	position += velocity·dt
type Euler struct{}

func (Euler) Name() string { return "euler" }

func (Euler) Step(p *Point, dt float64) {
	force := p.Target.Sub(p.Position).Mul(p.Stiffness).Sub(p.Velocity.Mul(p.Damping))
	p.Velocity = p.Velocity.Add(force.Mul(dt))
	p.Position = p.Position.Translate(p.Velocity.Mul(dt))
}

// ByName returns the integrator registered under name.
func ByName(name string) (Integrator, error) {
	switch name {
	case "", "euler":
		return Euler{}, nil
	case "harmonica":
		return Harmonica{}, nil
	}
	return nil, fmt.Errorf("unknown integrator %q", name)
}
