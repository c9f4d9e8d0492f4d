package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Harmonica advances the spring with harmonica's closed-form damped harmonic
// oscillator, one axis at a time. With unit mass, stiffness k and damping c
// map to angular frequency √k and damping ratio c/(2√k).
type Harmonica struct{}

func (Harmonica) Name() string { return "harmonica" }

func (Harmonica) Step(p *Point, dt float64) {
	omega := math.Sqrt(p.Stiffness)
	zeta := p.Damping / (2 * omega)
	s := harmonica.NewSpring(dt, omega, zeta)
	p.Position.X, p.Velocity.X = s.Update(p.Position.X, p.Velocity.X, p.Target.X)
	p.Position.Y, p.Velocity.Y = s.Update(p.Position.Y, p.Velocity.Y, p.Target.Y)
}
