// Package sim drives the spring simulation from a frame tick source.
//
// A Loop does not schedule anything itself. The host delivers ticks (in the
// TUI, tea.Tick messages), each stamped with the Generation that was current
// when it was scheduled. Start and Stop bump the generation, so a tick from a
// cancelled loop instance is recognised and dropped before it can apply
// physics a second time.
package sim

import (
	"time"

	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/spring"
)

// Generation identifies one run of a Loop.
type Generation uint64

// Stepper is advanced by the loop each frame.
type Stepper interface {
	Step(dt float64)
}

// Loop tracks whether the simulation is running and converts tick
// timestamps into clamped time steps.
type Loop struct {
	gen     Generation
	running bool
	clock   Clock
	maxStep float64
}

// NewLoop returns a stopped loop. maxStep <= 0 selects spring.MaxStep.
func NewLoop(maxStep float64) *Loop {
	if maxStep <= 0 {
		maxStep = spring.MaxStep
	}
	return &Loop{maxStep: maxStep}
}

// Start cancels any running instance and starts a new one with a fresh
// clock. The returned generation must accompany every tick for this run.
func (l *Loop) Start() Generation {
	l.gen++
	l.running = true
	l.clock.Reset()
	logging.Logger().Debug("loop start", "generation", uint64(l.gen))
	return l.gen
}

// Stop cancels the running instance. Ticks already in flight become stale.
func (l *Loop) Stop() {
	if l.running {
		logging.Logger().Debug("loop stop", "generation", uint64(l.gen))
	}
	l.gen++
	l.running = false
}

// Running reports whether a loop instance is active.
func (l *Loop) Running() bool { return l.running }

// Generation returns the current generation.
func (l *Loop) Generation() Generation { return l.gen }

// MaxStep returns the dt ceiling.
func (l *Loop) MaxStep() float64 { return l.maxStep }

// Tick accepts a frame for generation gen at time now. It returns the clamped
// time step and true, or false if gen is stale or the loop is stopped, in
// which case the caller must neither step nor reschedule.
func (l *Loop) Tick(gen Generation, now time.Time) (float64, bool) {
	if !l.running || gen != l.gen {
		return 0, false
	}
	return spring.ClampTo(l.clock.Delta(now), l.maxStep), true
}

// Advance is Tick followed by s.Step when the tick is current.
func (l *Loop) Advance(gen Generation, now time.Time, s Stepper) (float64, bool) {
	dt, ok := l.Tick(gen, now)
	if ok {
		s.Step(dt)
	}
	return dt, ok
}

// Drive starts a fresh instance and feeds it frames ticks read from src.
// It is used where no display supplies ticks.
func (l *Loop) Drive(frames int, src TimeSource, s Stepper) {
	gen := l.Start()
	for range frames {
		l.Advance(gen, src.Now(), s)
	}
}
