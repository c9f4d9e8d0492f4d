package canvas

import (
	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/scene"
)

// GridSpacing is the distance between background grid lines, in dots.
const GridSpacing = 50

// Draw paints a frame: grid, handles, targets, curve, tangent markers,
// cursor, then the four points on top.
func Draw(c *Canvas, f scene.Frame) {
	c.Clear()
	w, h := c.Size()

	for x := 0; x < w; x += GridSpacing {
		for y := 0; y < h; y += 4 {
			c.Set(x, y, InkGrid)
		}
	}
	for y := 0; y < h; y += GridSpacing {
		for x := 0; x < w; x += 4 {
			c.Set(x, y, InkGrid)
		}
	}

	p0, p1, p2, p3 := f.Points[0], f.Points[1], f.Points[2], f.Points[3]
	c.Dashed(p0, p1, 5, 5, InkHandle)
	c.Dashed(p3, p2, 5, 5, InkHandle)

	if f.HasTargets {
		for _, t := range f.Targets {
			c.Plot(t, InkTarget)
			c.Plot(t.Translate(geom.Vec(-1, 0)), InkTarget)
			c.Plot(t.Translate(geom.Vec(1, 0)), InkTarget)
			c.Plot(t.Translate(geom.Vec(0, -1)), InkTarget)
			c.Plot(t.Translate(geom.Vec(0, 1)), InkTarget)
		}
	}

	c.SetGradient(p0.X, p3.X)
	c.Polyline(f.Polyline, InkCurve)

	for _, m := range f.Markers {
		if m.Degenerate {
			continue
		}
		c.Line(m.Start, m.End, InkTangent)
	}

	c.Disc(f.Cursor.Point, 1, InkCursor)

	c.Disc(p1, 3, InkControl)
	c.Disc(p2, 3, InkControl)
	c.Disc(p0, 2, InkAnchor)
	c.Disc(p3, 2, InkAnchor)
}
