package bezier

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/olivier-w/springbez/internal/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var testCurves = []Cubic{
	{geom.Pt(100, 300), geom.Pt(150, 250), geom.Pt(450, 350), geom.Pt(500, 300)},
	{geom.Pt(-3.7, 1e6), geom.Pt(0.1, -0.2), geom.Pt(1e-9, 42), geom.Pt(7.3, -1e-3)},
	{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(0, 0)},
}

func TestEndpointsExact(t *testing.T) {
	for _, c := range testCurves {
		if got := Point(0, c.P0, c.P1, c.P2, c.P3); got != c.P0 {
			t.Fatalf("Point(0) = %v, want %v", got, c.P0)
		}
		if got := Point(1, c.P0, c.P1, c.P2, c.P3); got != c.P3 {
			t.Fatalf("Point(1) = %v, want %v", got, c.P3)
		}
	}
}

func TestTangentMatchesNumericDerivative(t *testing.T) {
	c := testCurves[0]
	const n = 20
	const h = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		approx := c.Eval(ts + h).Sub(c.Eval(ts - h)).Mul(1 / (2 * h))
		got := Tangent(ts, c.P0, c.P1, c.P2, c.P3)
		if d := got.Sub(approx).Hypot(); d > 1e-3 {
			t.Errorf("t=%g: tangent %v differs from numeric %v by %g", ts, got, approx, d)
		}
	}
}

func TestTangentDegenerate(t *testing.T) {
	p := geom.Pt(5, 5)
	got := Tangent(0.5, p, p, p, p)
	if !got.IsZero() {
		t.Fatalf("expected zero tangent, got %v", got)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Fatal("expected no NaN in degenerate tangent")
	}
}

func TestEvalUnclampedExtendsPolynomial(t *testing.T) {
	// A straight line with evenly spaced control points is linear in t.
	c := Cubic{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0)}
	diff(t, geom.Pt(-3, 0), c.Eval(-1), cmpopts.EquateApprox(0, 1e-12))
	diff(t, geom.Pt(6, 0), c.Eval(2), cmpopts.EquateApprox(0, 1e-12))
}

func TestSample(t *testing.T) {
	c := testCurves[0]
	pts := c.Sample(100)
	if len(pts) != 101 {
		t.Fatalf("expected 101 points, got %d", len(pts))
	}
	if pts[0] != c.P0 || pts[100] != c.P3 {
		t.Fatalf("expected endpoints %v/%v, got %v/%v", c.P0, c.P3, pts[0], pts[100])
	}
	diff(t, c.Eval(0.5), pts[50])
}

func TestMarkers(t *testing.T) {
	c := testCurves[0]
	ms := c.Markers(100, 10, 20)
	if len(ms) != 10 {
		t.Fatalf("expected 10 markers, got %d", len(ms))
	}
	if ms[0].T != 0.01 {
		t.Fatalf("expected first marker at t=0.01, got %v", ms[0].T)
	}
	for _, m := range ms {
		if m.Degenerate {
			t.Fatalf("unexpected degenerate marker at t=%v", m.T)
		}
		if l := m.End.Sub(m.Start).Hypot(); math.Abs(l-20) > 1e-9 {
			t.Fatalf("expected marker length 20, got %v", l)
		}
		mid := geom.Pt((m.Start.X+m.End.X)/2, (m.Start.Y+m.End.Y)/2)
		diff(t, m.Origin, mid, cmpopts.EquateApprox(0, 1e-9))
	}
}

func TestMarkersDegenerate(t *testing.T) {
	ms := testCurves[2].Markers(10, 5, 100)
	if len(ms) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(ms))
	}
	for _, m := range ms {
		if !m.Degenerate {
			t.Fatal("expected degenerate marker on coincident points")
		}
		if m.Start != m.Origin || m.End != m.Origin {
			t.Fatalf("expected zero-length marker, got %v..%v", m.Start, m.End)
		}
	}
}

func TestProject(t *testing.T) {
	c := Cubic{geom.Pt(100, 300), geom.Pt(200, 300), geom.Pt(400, 300), geom.Pt(500, 300)}

	cases := []struct {
		x     float64
		wantT float64
	}{
		{x: 0, wantT: 0},
		{x: 300, wantT: 0.5},
		{x: 900, wantT: 1},
	}
	for _, tc := range cases {
		p := c.Project(tc.x)
		if p.T != tc.wantT {
			t.Fatalf("Project(%v).T = %v, want %v", tc.x, p.T, tc.wantT)
		}
		if p.Point != c.Eval(tc.wantT) {
			t.Fatalf("Project(%v).Point = %v, want %v", tc.x, p.Point, c.Eval(tc.wantT))
		}
		if p.Angle != 0 {
			t.Fatalf("expected horizontal tangent angle 0, got %v", p.Angle)
		}
	}
}
