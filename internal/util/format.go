package util

import (
	"fmt"
	"math"
)

// FormatFloat formats v with one decimal, printing non-finite values as "-".
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatPoint formats a coordinate pair as (x, y).
func FormatPoint(x, y float64) string {
	return "(" + FormatFloat(x) + ", " + FormatFloat(y) + ")"
}

// FormatAngle formats degrees as e.g. -12.5°.
func FormatAngle(deg float64) string {
	return FormatFloat(deg) + "°"
}

// FormatPercent formats a fraction in [0, 1] as a whole percentage.
func FormatPercent(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(math.Round(f*100)))
}
