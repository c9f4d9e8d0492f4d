package model

import "github.com/olivier-w/springbez/internal/geom"

// DefaultCompactWidth is the widest canvas that uses a percentage line
// length when LineLength.CompactWidth is unset.
const DefaultCompactWidth = 768

// MinLineLength keeps P0 strictly left of P3.
const MinLineLength = 10

// LineLength is the anchor separation: a fixed pixel length on wide
// canvases, a fraction of the width on compact ones.
type LineLength struct {
	Pixels  float64
	Percent float64
	// CompactWidth is the widest canvas that uses Percent. Zero means
	// DefaultCompactWidth; a negative value disables percentage mode.
	CompactWidth float64
}

// Compact reports whether a canvas of this width uses Percent.
func (l LineLength) Compact(width float64) bool {
	limit := l.CompactWidth
	if limit == 0 {
		limit = DefaultCompactWidth
	}
	return width <= limit
}

// Resolve returns the separation for a canvas of the given width. The
// anchors never leave the canvas unless it is narrower than MinLineLength.
func (l LineLength) Resolve(width float64) float64 {
	v := l.Pixels
	if l.Compact(width) {
		v = l.Percent * width
	}
	if v > width {
		v = width
	}
	if !(v >= MinLineLength) {
		v = MinLineLength
	}
	return v
}

// Adjust returns l nudged by steps slider notches for a canvas of the given
// width: 10 px per notch on wide canvases (100..1000), one percent on compact
// ones (10%..90%).
func (l LineLength) Adjust(width float64, steps int) LineLength {
	if l.Compact(width) {
		l.Percent = geom.Clamp(l.Percent+float64(steps)*0.01, 0.1, 0.9)
	} else {
		l.Pixels = geom.Clamp(l.Pixels+float64(steps)*10, 100, 1000)
	}
	return l
}

// Fraction returns the slider position in [0, 1] for display.
func (l LineLength) Fraction(width float64) float64 {
	if l.Compact(width) {
		return geom.Clamp((l.Percent-0.1)/0.8, 0, 1)
	}
	return geom.Clamp((l.Pixels-100)/900, 0, 1)
}
