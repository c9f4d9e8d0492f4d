package sim

import (
	"testing"
	"time"

	"github.com/olivier-w/springbez/internal/spring"
)

type mockTime struct {
	now time.Time
}

func (m *mockTime) Now() time.Time         { return m.now }
func (m *mockTime) Advance(d time.Duration) { m.now = m.now.Add(d) }

type countingStepper struct {
	steps []float64
}

func (c *countingStepper) Step(dt float64) { c.steps = append(c.steps, dt) }

func TestFirstTickIsZero(t *testing.T) {
	clock := &mockTime{now: time.Unix(1000, 0)}
	l := NewLoop(0)
	gen := l.Start()

	dt, ok := l.Tick(gen, clock.Now())
	if !ok {
		t.Fatal("expected current tick to be accepted")
	}
	if dt != 0 {
		t.Fatalf("expected first dt 0, got %v", dt)
	}

	clock.Advance(16 * time.Millisecond)
	dt, ok = l.Tick(gen, clock.Now())
	if !ok || dt != 0.016 {
		t.Fatalf("expected dt 0.016, got %v (ok=%v)", dt, ok)
	}
}

func TestLongPauseIsClamped(t *testing.T) {
	clock := &mockTime{now: time.Unix(1000, 0)}
	l := NewLoop(0)
	gen := l.Start()
	l.Tick(gen, clock.Now())

	clock.Advance(10 * time.Minute)
	dt, _ := l.Tick(gen, clock.Now())
	if dt != spring.MaxStep {
		t.Fatalf("expected dt clamped to %v, got %v", spring.MaxStep, dt)
	}
}

func TestRestartResetsClock(t *testing.T) {
	clock := &mockTime{now: time.Unix(1000, 0)}
	l := NewLoop(0.05)
	gen := l.Start()
	l.Tick(gen, clock.Now())
	clock.Advance(30 * time.Millisecond)

	gen = l.Start()
	dt, ok := l.Tick(gen, clock.Now())
	if !ok || dt != 0 {
		t.Fatalf("expected restarted loop to yield dt 0, got %v (ok=%v)", dt, ok)
	}
}

func TestStaleGenerationDropped(t *testing.T) {
	clock := &mockTime{now: time.Unix(1000, 0)}
	l := NewLoop(0)
	old := l.Start()
	current := l.Start()

	s := &countingStepper{}
	if _, ok := l.Advance(old, clock.Now(), s); ok {
		t.Fatal("expected stale generation to be rejected")
	}
	if _, ok := l.Advance(current, clock.Now(), s); !ok {
		t.Fatal("expected current generation to be accepted")
	}
	if len(s.steps) != 1 {
		t.Fatalf("expected exactly one step, got %d", len(s.steps))
	}
}

func TestStopCancelsInFlightTicks(t *testing.T) {
	l := NewLoop(0)
	gen := l.Start()
	l.Stop()
	if l.Running() {
		t.Fatal("expected loop stopped")
	}
	if _, ok := l.Tick(gen, time.Now()); ok {
		t.Fatal("expected tick after Stop to be rejected")
	}
	if l.Generation() == gen {
		t.Fatal("expected Stop to advance the generation")
	}
}

func TestClockBackwardsYieldsZero(t *testing.T) {
	var c Clock
	now := time.Unix(1000, 0)
	c.Delta(now)
	if dt := c.Delta(now.Add(-time.Second)); dt != 0 {
		t.Fatalf("expected 0 for time running backwards, got %v", dt)
	}
	if !c.IsSet() {
		t.Fatal("expected clock to be set")
	}
	c.Reset()
	if c.IsSet() {
		t.Fatal("expected Reset to unset the clock")
	}
}

func TestDriveSteadyClock(t *testing.T) {
	l := NewLoop(0)
	s := &countingStepper{}
	src := &Steady{At: time.Unix(0, 0), Interval: 20 * time.Millisecond}
	l.Drive(4, src, s)

	want := []float64{0, 0.02, 0.02, 0.02}
	if len(s.steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(s.steps))
	}
	for i := range want {
		if s.steps[i] != want[i] {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], s.steps[i])
		}
	}
}
