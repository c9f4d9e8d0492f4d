package util

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "0.0"},
		{12.345, "12.3"},
		{-7.26, "-7.3"},
		{math.NaN(), "-"},
		{math.Inf(1), "-"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPoint(t *testing.T) {
	if got := FormatPoint(100, 300.04); got != "(100.0, 300.0)" {
		t.Fatalf("expected (100.0, 300.0), got %q", got)
	}
}

func TestFormatAngle(t *testing.T) {
	if got := FormatAngle(-45); got != "-45.0°" {
		t.Fatalf("expected -45.0°, got %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.6); got != "60%" {
		t.Fatalf("expected 60%%, got %q", got)
	}
}
