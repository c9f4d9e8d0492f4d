package geom

import (
	"math"
	"testing"
)

func TestFreeFunctions(t *testing.T) {
	a := Pt(3, 4)
	b := Pt(1, -2)

	if got := Add(a, b); got != Pt(4, 2) {
		t.Fatalf("Add() = %v, want (4, 2)", got)
	}
	if got := Sub(a, b); got != Pt(2, 6) {
		t.Fatalf("Sub() = %v, want (2, 6)", got)
	}
	if got := Scale(a, 0.5); got != Pt(1.5, 2) {
		t.Fatalf("Scale() = %v, want (1.5, 2)", got)
	}
	if got := Magnitude(a); got != 5 {
		t.Fatalf("Magnitude() = %v, want 5", got)
	}
}

func TestDistanceMatchesSubHypot(t *testing.T) {
	a := Pt(10, 10)
	b := Pt(13, 14)
	if got, want := a.Distance(b), b.Sub(a).Hypot(); got != want {
		t.Fatalf("Distance() = %v, want %v", got, want)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); !got.IsZero() {
		t.Fatalf("expected zero vector, got %v", got)
	}
	got := Vec(0, -3).Normalize()
	if got != Vec(0, -1) {
		t.Fatalf("Normalize() = %v, want ⟨0, -1⟩", got)
	}
}

func TestIsFinite(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Pt(1, 2), true},
		{Pt(math.NaN(), 0), false},
		{Pt(0, math.Inf(-1)), false},
	}
	for _, tc := range cases {
		if got := tc.p.IsFinite(); got != tc.want {
			t.Fatalf("IsFinite(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-2, -1, 1); got != -1 {
		t.Fatalf("expected -1, got %v", got)
	}
	if got := Clamp(0.25, -1, 1); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := Clamp(7, -1, 1); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}
