package model

import (
	"errors"
	"testing"

	"github.com/olivier-w/springbez/internal/geom"
)

// scenarioParams lays anchors out at (100,300) and (500,300) on a 600x600 canvas.
func scenarioParams() Params {
	return Params{
		Stiffness: 80,
		Damping:   10,
		Line:      LineLength{Pixels: 400, Percent: 0.6, CompactWidth: -1},
	}
}

func newScenario(t *testing.T, mode Mode) *Model {
	t.Helper()
	m, err := New(scenarioParams(), mode, 600, 600)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return m
}

func TestLayout(t *testing.T) {
	m := newScenario(t, Auto)
	p0, p3 := m.Endpoints()
	if p0 != geom.Pt(100, 300) || p3 != geom.Pt(500, 300) {
		t.Fatalf("expected anchors (100,300)/(500,300), got %v/%v", p0, p3)
	}
}

func TestNewRejectsInvalidSpring(t *testing.T) {
	p := scenarioParams()
	p.Stiffness = 0
	if _, err := New(p, Auto, 600, 600); err == nil {
		t.Fatal("expected error for zero stiffness")
	}
}

func TestSeedPositions(t *testing.T) {
	m := newScenario(t, Auto)
	if got := m.Position(P1); got != geom.Pt(100, 200) {
		t.Fatalf("expected auto P1 seed (100,200), got %v", got)
	}
	if got := m.Position(P2); got != geom.Pt(500, 200) {
		t.Fatalf("expected auto P2 seed (500,200), got %v", got)
	}
	if tgt, ok := m.Target(P1); !ok || tgt != geom.Pt(100, 200) {
		t.Fatalf("expected auto P1 target at seed, got %v (ok=%v)", tgt, ok)
	}

	m.SetMode(Manual)
	if got := m.Position(P1); got != geom.Pt(150, 250) {
		t.Fatalf("expected manual P1 seed (150,250), got %v", got)
	}
	if got := m.Position(P2); got != geom.Pt(450, 350) {
		t.Fatalf("expected manual P2 seed (450,350), got %v", got)
	}
	if _, ok := m.Target(P1); ok {
		t.Fatal("expected no target in manual mode")
	}
}

func TestModeRoundTripReseedsIdentically(t *testing.T) {
	m := newScenario(t, Auto)
	_ = m.SetTarget(P1, geom.Pt(0, 0))
	m.Step(0.1)

	var autoSeeds, manualSeeds [][4]geom.Point
	for range 2 {
		m.SetMode(Manual)
		manualSeeds = append(manualSeeds, m.Points())
		_ = m.DragTo(P2, geom.Pt(1, 1))
		m.SetMode(Auto)
		autoSeeds = append(autoSeeds, m.Points())
		_ = m.SetTarget(P2, geom.Pt(9, 9))
		m.Step(0.05)
	}
	if autoSeeds[0] != autoSeeds[1] {
		t.Fatalf("auto seeds differ: %v vs %v", autoSeeds[0], autoSeeds[1])
	}
	if manualSeeds[0] != manualSeeds[1] {
		t.Fatalf("manual seeds differ: %v vs %v", manualSeeds[0], manualSeeds[1])
	}
}

func TestEpochAdvancesOnReseed(t *testing.T) {
	m := newScenario(t, Auto)
	e := m.Epoch()
	m.SetMode(Manual)
	m.Resize(800, 400)
	m.SetLineLength(LineLength{Pixels: 300, Percent: 0.5})
	m.Reset()
	if got := m.Epoch(); got != e+4 {
		t.Fatalf("expected epoch %d, got %d", e+4, got)
	}
}

func TestSetTargetRejectedInManual(t *testing.T) {
	m := newScenario(t, Manual)
	before := m.Points()
	err := m.SetTarget(P1, geom.Pt(0, 0))
	if !errors.Is(err, ErrWrongMode) {
		t.Fatalf("SetTarget() error = %v, want ErrWrongMode", err)
	}
	if m.Points() != before {
		t.Fatal("expected no change after rejected SetTarget")
	}
}

func TestDragToRejectedInAuto(t *testing.T) {
	m := newScenario(t, Auto)
	if err := m.DragTo(P1, geom.Pt(0, 0)); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("DragTo() error = %v, want ErrWrongMode", err)
	}
	if err := m.DragTo(None, geom.Pt(0, 0)); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("DragTo(None) error = %v, want ErrUnknownHandle", err)
	}
}

func TestSettleScenario(t *testing.T) {
	m := newScenario(t, Auto)
	if err := m.SetTarget(P1, geom.Pt(300, 100)); err != nil {
		t.Fatalf("SetTarget(P1) unexpected error: %v", err)
	}
	if err := m.SetTarget(P2, geom.Pt(300, 500)); err != nil {
		t.Fatalf("SetTarget(P2) unexpected error: %v", err)
	}
	for range 600 {
		m.Step(1.0 / 60)
	}
	const eps = 0.01
	if d := m.Position(P1).Distance(geom.Pt(300, 100)); d > eps {
		t.Fatalf("P1 is %g from its target", d)
	}
	if d := m.Position(P2).Distance(geom.Pt(300, 500)); d > eps {
		t.Fatalf("P2 is %g from its target", d)
	}
	if !m.Settled(eps) {
		t.Fatal("expected model to report settled")
	}
}

func TestManualDragKeepsEndpoints(t *testing.T) {
	m := newScenario(t, Manual)
	before := m.Curve()
	if err := m.DragTo(P1, geom.Pt(50, 50)); err != nil {
		t.Fatalf("DragTo() unexpected error: %v", err)
	}
	after := m.Curve()
	if after.Eval(0) != before.P0 {
		t.Fatalf("expected Eval(0) = %v, got %v", before.P0, after.Eval(0))
	}
	if after.Eval(1) != before.P3 {
		t.Fatalf("expected Eval(1) = %v, got %v", before.P3, after.Eval(1))
	}
	for _, ts := range []float64{0.25, 0.5, 0.75} {
		if after.Eval(ts) == before.Eval(ts) {
			t.Fatalf("expected interior sample at t=%v to change", ts)
		}
	}
}

func TestManualStepIsNoop(t *testing.T) {
	m := newScenario(t, Manual)
	before := m.Points()
	m.Step(0.1)
	if m.Points() != before {
		t.Fatal("expected Step to leave manual points alone")
	}
}

func TestHitTestRadius(t *testing.T) {
	m := newScenario(t, Manual)
	p1 := m.Position(P1) // (150, 250)
	const radius = 20

	if got := m.HitTest(p1.Translate(geom.Vec(radius-1, 0)), radius); got != P1 {
		t.Fatalf("expected P1 at radius-1, got %v", got)
	}
	if got := m.HitTest(p1.Translate(geom.Vec(0, radius+1)), radius); got != None {
		t.Fatalf("expected none at radius+1, got %v", got)
	}
}

func TestHitTestNearestFirst(t *testing.T) {
	m := newScenario(t, Manual)
	if err := m.DragTo(P1, geom.Pt(200, 200)); err != nil {
		t.Fatal(err)
	}
	if err := m.DragTo(P2, geom.Pt(210, 200)); err != nil {
		t.Fatal(err)
	}
	if got := m.HitTest(geom.Pt(208, 200), 40); got != P2 {
		t.Fatalf("expected nearer P2, got %v", got)
	}
	if got := m.HitTest(geom.Pt(202, 200), 40); got != P1 {
		t.Fatalf("expected nearer P1, got %v", got)
	}
}

func TestLineLengthResolve(t *testing.T) {
	l := LineLength{Pixels: 200, Percent: 0.6}
	if got := l.Resolve(1000); got != 200 {
		t.Fatalf("expected pixel length 200 on a wide canvas, got %v", got)
	}
	if got := l.Resolve(500); got != 300 {
		t.Fatalf("expected 60%% of 500 on a compact canvas, got %v", got)
	}
	if got := (LineLength{}).Resolve(1000); got != MinLineLength {
		t.Fatalf("expected MinLineLength floor, got %v", got)
	}
}

func TestLineLengthResolveFitsCanvas(t *testing.T) {
	wide := LineLength{Pixels: 1000, Percent: 0.6, CompactWidth: -1}
	if got := wide.Resolve(800); got != 800 {
		t.Fatalf("expected separation clamped to width 800, got %v", got)
	}
	if got := wide.Resolve(4); got != MinLineLength {
		t.Fatalf("expected MinLineLength on a canvas narrower than it, got %v", got)
	}

	m, err := New(Params{Stiffness: 80, Damping: 10, Line: wide}, Manual, 800, 600)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	p0, p3 := m.Endpoints()
	if p0.X < 0 || p3.X > 800 {
		t.Fatalf("expected anchors inside the canvas, got %v %v", p0, p3)
	}
}

func TestLineLengthAdjust(t *testing.T) {
	l := LineLength{Pixels: 995, Percent: 0.6}
	if got := l.Adjust(1000, 1).Pixels; got != 1000 {
		t.Fatalf("expected pixels clamped to 1000, got %v", got)
	}
	if got := l.Adjust(400, -100).Percent; got != 0.1 {
		t.Fatalf("expected percent clamped to 0.1, got %v", got)
	}
}

func TestModeParseAndNext(t *testing.T) {
	for _, m := range []Mode{Auto, Manual} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
		if m.Next().Next() != m {
			t.Fatalf("expected Next to cycle back to %v", m)
		}
	}
	if _, err := ParseMode("tilt"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestTuneUpdatesLiveSprings(t *testing.T) {
	m := newScenario(t, Auto)
	if err := m.SetTarget(P1, geom.Pt(300, 100)); err != nil {
		t.Fatal(err)
	}
	before := m.Position(P1)
	if err := m.Tune(200, 5); err != nil {
		t.Fatalf("Tune() unexpected error: %v", err)
	}
	if k, c := m.Tuning(); k != 200 || c != 5 {
		t.Fatalf("expected tuning 200/5, got %v/%v", k, c)
	}
	if m.Position(P1) != before {
		t.Fatal("expected Tune to leave positions alone")
	}
	sp := m.Point(P1).(*Sprung)
	if sp.Spring.Stiffness != 200 || sp.Spring.Damping != 5 {
		t.Fatalf("expected live spring retuned, got %v/%v", sp.Spring.Stiffness, sp.Spring.Damping)
	}
	if tgt, _ := m.Target(P1); tgt != geom.Pt(300, 100) {
		t.Fatalf("expected target kept, got %v", tgt)
	}

	m.SetMode(Manual)
	m.SetMode(Auto)
	if sp := m.Point(P2).(*Sprung); sp.Spring.Stiffness != 200 {
		t.Fatalf("expected reseeded spring to use new stiffness, got %v", sp.Spring.Stiffness)
	}
}

func TestTuneRejectsInvalid(t *testing.T) {
	m := newScenario(t, Auto)
	if err := m.Tune(-1, 10); err == nil {
		t.Fatal("expected error for negative stiffness")
	}
	if k, _ := m.Tuning(); k != 80 {
		t.Fatalf("expected tuning unchanged, got %v", k)
	}
}
