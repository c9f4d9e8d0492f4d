// Package bezier evaluates cubic Bézier curves: points, first derivatives,
// uniform sampling, tangent markers and cursor projection.
package bezier

import (
	"math"

	"github.com/olivier-w/springbez/internal/geom"
)

// Point returns B(t) for the cubic with control points p0..p3. t is not
// clamped; values outside [0, 1] extend the polynomial.
func Point(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	return Cubic{p0, p1, p2, p3}.Eval(t)
}

// Tangent returns B'(t). The result is not normalized and is the zero vector
// when the derivative vanishes.
func Tangent(t float64, p0, p1, p2, p3 geom.Point) geom.Vec2 {
	return Cubic{p0, p1, p2, p3}.Tangent(t)
}

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0 geom.Point
	P1 geom.Point
	P2 geom.Point
	P3 geom.Point
}

// Eval returns the point at parameter t. Eval(0) is exactly P0 and Eval(1)
// is exactly P3.
func (c Cubic) Eval(t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return geom.Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Tangent returns the first derivative at t.
func (c Cubic) Tangent(t float64) geom.Vec2 {
	mt := 1 - t
	d01 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d12 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d23 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d01.Add(d12).Add(d23)
}

// Sample returns steps+1 points at t = i/steps for i in [0, steps]. The first
// and last points are the endpoints.
func (c Cubic) Sample(steps int) []geom.Point {
	if steps < 1 {
		steps = 1
	}
	pts := make([]geom.Point, steps+1)
	for i := range steps + 1 {
		pts[i] = c.Eval(float64(i) / float64(steps))
	}
	return pts
}

// Marker is a short segment centred on a curve point and aligned with the
// curve's direction there.
type Marker struct {
	T      float64
	Origin geom.Point
	Start  geom.Point
	End    geom.Point

	// Degenerate is set when the tangent is the zero vector. Start and End
	// then equal Origin and nothing should be drawn.
	Degenerate bool
}

// Markers places tangent markers at t = i/steps for i = 1, 1+interval, …
// while i < steps. Each marker spans length, half on either side of the
// curve point.
func (c Cubic) Markers(steps, interval int, length float64) []Marker {
	if steps < 1 || interval < 1 {
		return nil
	}
	var out []Marker
	half := length / 2
	for i := 1; i < steps; i += interval {
		t := float64(i) / float64(steps)
		origin := c.Eval(t)
		m := Marker{T: t, Origin: origin, Start: origin, End: origin}
		dir := c.Tangent(t).Normalize()
		if dir.IsZero() {
			m.Degenerate = true
		} else {
			m.Start = origin.Translate(dir.Mul(-half))
			m.End = origin.Translate(dir.Mul(half))
		}
		out = append(out, m)
	}
	return out
}

// Projection is the curve sample nearest a horizontal position.
type Projection struct {
	T       float64
	Point   geom.Point
	Tangent geom.Vec2
	// Angle is the tangent direction in degrees, atan2(y, x).
	Angle float64
}

// Project maps x onto the curve by its horizontal fraction between P0 and P3,
// clamped to [0, 1].
func (c Cubic) Project(x float64) Projection {
	var t float64
	if span := c.P3.X - c.P0.X; span != 0 {
		t = geom.Clamp((x-c.P0.X)/span, 0, 1)
	}
	tan := c.Tangent(t)
	return Projection{
		T:       t,
		Point:   c.Eval(t),
		Tangent: tan,
		Angle:   tan.Angle() * 180 / math.Pi,
	}
}
