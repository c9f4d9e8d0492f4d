// Package canvas rasterizes frames onto a grid of Unicode Braille cells.
// Each cell is a 2x4 dot grid, so a canvas of cols×rows cells is
// 2·cols × 4·rows dots, and canvas coordinates are dot coordinates.
package canvas

import (
	"math"
	"strings"

	"github.com/olivier-w/springbez/internal/geom"
)

// Ink is what a dot belongs to. A cell takes the colour of the highest ink
// drawn into it.
type Ink uint8

const (
	InkNone Ink = iota
	InkGrid
	InkTarget
	InkHandle
	InkCurve
	InkTangent
	InkCursor
	InkAnchor
	InkControl
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Canvas is a Braille dot buffer.
type Canvas struct {
	cols    int
	rows    int
	pattern []uint8
	ink     []Ink
	profile Profile
	seqs    map[RGB]string

	// gradient span for InkCurve, in dot x coordinates
	gradFrom float64
	gradTo   float64
}

// New returns a blank canvas of cols×rows cells using the detected colour
// profile.
func New(cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{
		cols:    cols,
		rows:    rows,
		pattern: make([]uint8, cols*rows),
		ink:     make([]Ink, cols*rows),
		profile: DetectProfile(),
		seqs:    make(map[RGB]string),
		gradTo:  float64(cols * 2),
	}
}

// DotSize returns the dot dimensions of a cols×rows canvas.
func DotSize(cols, rows int) (width, height int) {
	return max(cols, 1) * 2, max(rows, 1) * 4
}

// CellToDot maps a terminal cell to the dot at its visual centre.
func CellToDot(x, y int) geom.Point {
	return geom.Pt(float64(x*2+1), float64(y*4+2))
}

// SetProfile overrides the colour profile; ProfileNone emits plain Braille.
func (c *Canvas) SetProfile(p Profile) {
	c.profile = p
	clear(c.seqs)
}

// SetGradient sets the x span that the curve's colour gradient runs along.
func (c *Canvas) SetGradient(from, to float64) {
	c.gradFrom, c.gradTo = from, to
}

// Size returns the canvas size in dots.
func (c *Canvas) Size() (width, height int) {
	return c.cols * 2, c.rows * 4
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	clear(c.pattern)
	clear(c.ink)
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	i := (y/4)*c.cols + x/2
	c.pattern[i] |= 1 << brailleBits[x%2][y%4]
	if ink > c.ink[i] {
		c.ink[i] = ink
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return false
	}
	i := (y/4)*c.cols + x/2
	return c.pattern[i]&(1<<brailleBits[x%2][y%4]) != 0
}

// Plot lights the dot nearest p.
func (c *Canvas) Plot(p geom.Point, ink Ink) {
	if !p.IsFinite() {
		return
	}
	c.Set(int(math.Round(p.X)), int(math.Round(p.Y)), ink)
}

// Line draws a straight segment from a to b.
func (c *Canvas) Line(a, b geom.Point, ink Ink) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	d := b.Sub(a)
	n := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if n == 0 {
		c.Plot(a, ink)
		return
	}
	// Cap the dot count for segments that run far off-canvas.
	n = min(n, 4*(c.cols*2+c.rows*4))
	for i := range n + 1 {
		c.Plot(a.Translate(d.Mul(float64(i)/float64(n))), ink)
	}
}

// Dashed draws a segment as alternating dash and gap lengths, in dots.
func (c *Canvas) Dashed(a, b geom.Point, dash, gap float64, ink Ink) {
	d := b.Sub(a)
	length := d.Hypot()
	if length == 0 || dash <= 0 || !a.IsFinite() || !b.IsFinite() {
		c.Line(a, b, ink)
		return
	}
	dir := d.Mul(1 / length)
	for s := 0.0; s < length; s += dash + gap {
		e := math.Min(s+dash, length)
		c.Line(a.Translate(dir.Mul(s)), a.Translate(dir.Mul(e)), ink)
	}
}

// Polyline draws connected segments through pts.
func (c *Canvas) Polyline(pts []geom.Point, ink Ink) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], ink)
	}
}

// Disc fills a circle of radius r around p.
func (c *Canvas) Disc(p geom.Point, r float64, ink Ink) {
	if !p.IsFinite() {
		return
	}
	x0, x1 := int(math.Floor(p.X-r)), int(math.Ceil(p.X+r))
	y0, y1 := int(math.Floor(p.Y-r)), int(math.Ceil(p.Y+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if geom.Pt(float64(x), float64(y)).Distance(p) <= r {
				c.Set(x, y, ink)
			}
		}
	}
}

// String renders the canvas as rows of Braille characters joined by
// newlines, coloured per cell when the profile allows.
func (c *Canvas) String() string {
	var out strings.Builder
	color := pen{profile: c.profile, seqs: c.seqs}
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			i := row*c.cols + col
			pat := c.pattern[i]
			if pat == 0 {
				color.reset(&out)
				out.WriteByte(' ')
				continue
			}
			color.set(&out, c.inkColor(c.ink[i], col))
			out.WriteRune(rune(0x2800 + int(pat)))
		}
		color.reset(&out)
	}
	return out.String()
}

func (c *Canvas) inkColor(ink Ink, col int) RGB {
	switch ink {
	case InkGrid:
		return colorGrid
	case InkTarget:
		return colorTarget
	case InkHandle:
		return colorHandle
	case InkCurve:
		span := c.gradTo - c.gradFrom
		if span == 0 {
			return colorCyan
		}
		x := float64(col*2) + 1
		return curveColor((x - c.gradFrom) / span)
	case InkTangent:
		return colorTangent
	case InkCursor:
		return colorCursor
	case InkAnchor:
		return colorWhite
	default:
		return colorControl
	}
}
