package scene

import (
	"testing"

	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/model"
)

func newModel(t *testing.T, mode model.Mode) *model.Model {
	t.Helper()
	m, err := model.New(model.Params{
		Stiffness: 80,
		Damping:   10,
		Line:      model.LineLength{Pixels: 400, Percent: 0.6, CompactWidth: -1},
	}, mode, 600, 600)
	if err != nil {
		t.Fatalf("model.New() unexpected error: %v", err)
	}
	return m
}

var opts = Options{Steps: 100, TangentInterval: 10, TangentLength: 100}

func TestBuildAuto(t *testing.T) {
	m := newModel(t, model.Auto)
	f := Build(m, geom.Pt(300, 0), model.None, opts)

	if len(f.Polyline) != 101 {
		t.Fatalf("expected 101 polyline points, got %d", len(f.Polyline))
	}
	if f.Polyline[0] != f.Points[0] || f.Polyline[100] != f.Points[3] {
		t.Fatal("expected polyline to run from P0 to P3")
	}
	if len(f.Markers) != 10 {
		t.Fatalf("expected 10 markers, got %d", len(f.Markers))
	}
	if !f.HasTargets {
		t.Fatal("expected targets in auto mode")
	}
	if f.Cursor.T != 0.5 {
		t.Fatalf("expected cursor t=0.5 at canvas centre, got %v", f.Cursor.T)
	}
	if f.Curve() != m.Curve() {
		t.Fatal("expected frame curve to match model curve")
	}
}

func TestBuildManualHasNoTargets(t *testing.T) {
	m := newModel(t, model.Manual)
	f := Build(m, geom.Pt(0, 0), model.P1, opts)
	if f.HasTargets {
		t.Fatal("expected no targets in manual mode")
	}
	if f.Mode != model.Manual || f.Grabbed != model.P1 {
		t.Fatalf("unexpected frame mode/grab: %v/%v", f.Mode, f.Grabbed)
	}
	if f.Cursor.T != 0 {
		t.Fatalf("expected cursor left of P0 to clamp to t=0, got %v", f.Cursor.T)
	}
}
