// Package snapshot renders a frame to a PNG image.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/scene"
)

// ErrEmptyFrame is returned for a frame with no drawable area.
var ErrEmptyFrame = errors.New("frame has no area")

var (
	background   = color.RGBA{R: 17, G: 17, B: 17, A: 255}
	gridColor    = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	handleColor  = color.RGBA{R: 136, G: 136, B: 136, A: 255}
	tangentColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	controlColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	anchorColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cyan         = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// gradientBands is how many colour steps the curve's cyan→white→cyan
// gradient is split into.
const gradientBands = 10

// Render rasterizes f at its own width and height.
func Render(f scene.Frame) (*image.RGBA, error) {
	w := int(math.Ceil(f.Width))
	h := int(math.Ceil(f.Height))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("render %vx%v: %w", f.Width, f.Height, ErrEmptyFrame)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	p := &painter{img: img, z: vector.NewRasterizer(w, h)}

	for x := 0.0; x < float64(w); x += 50 {
		p.segment(geom.Pt(x, 0), geom.Pt(x, float64(h)), 1)
	}
	for y := 0.0; y < float64(h); y += 50 {
		p.segment(geom.Pt(0, y), geom.Pt(float64(w), y), 1)
	}
	p.fill(gridColor)

	p0, p1, p2, p3 := f.Points[0], f.Points[1], f.Points[2], f.Points[3]
	p.dashed(p0, p1, 5, 5, 2)
	p.dashed(p3, p2, 5, 5, 2)
	p.fill(handleColor)

	n := len(f.Polyline) - 1
	for band := range gradientBands {
		lo, hi := band*n/gradientBands, (band+1)*n/gradientBands
		for i := lo; i < hi; i++ {
			p.segment(f.Polyline[i], f.Polyline[i+1], 4)
		}
		mid := (float64(band) + 0.5) / gradientBands
		p.fill(gradient(mid))
	}

	for _, m := range f.Markers {
		if !m.Degenerate {
			p.segment(m.Start, m.End, 2)
		}
	}
	p.fill(tangentColor)

	p.disc(p1, 6)
	p.disc(p2, 6)
	p.fill(controlColor)
	p.disc(p0, 4)
	p.disc(p3, 4)
	p.fill(anchorColor)

	return img, nil
}

// Write encodes f as PNG to w.
func Write(w io.Writer, f scene.Frame) error {
	img, err := Render(f)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save writes f as a PNG file at path.
func Save(path string, f scene.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := Write(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func gradient(t float64) color.RGBA {
	k := 1 - math.Abs(2*t-1)
	return color.RGBA{
		R: uint8(float64(cyan.R) + (255-float64(cyan.R))*k),
		G: 255,
		B: 255,
		A: 255,
	}
}

// painter accumulates same-coloured shapes in one rasterizer pass. All
// shapes are emitted with the same winding so overlaps never cancel.
type painter struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	dirty bool
}

func (p *painter) fill(c color.Color) {
	if p.dirty {
		p.z.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
	}
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.dirty = false
}

func (p *painter) segment(a, b geom.Point, width float64) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	dir := b.Sub(a).Normalize()
	if dir.IsZero() {
		return
	}
	n := geom.Vec(-dir.Y, dir.X).Mul(width / 2)
	p.polygon(a.Translate(n), b.Translate(n), b.Translate(n.Mul(-1)), a.Translate(n.Mul(-1)))
}

func (p *painter) dashed(a, b geom.Point, dash, gap, width float64) {
	d := b.Sub(a)
	length := d.Hypot()
	if length == 0 {
		return
	}
	dir := d.Mul(1 / length)
	for s := 0.0; s < length; s += dash + gap {
		e := math.Min(s+dash, length)
		p.segment(a.Translate(dir.Mul(s)), a.Translate(dir.Mul(e)), width)
	}
}

func (p *painter) disc(c geom.Point, r float64) {
	if !c.IsFinite() {
		return
	}
	const sides = 24
	pts := make([]geom.Point, sides)
	for i := range sides {
		th := 2 * math.Pi * float64(i) / sides
		pts[i] = c.Translate(geom.Vec(math.Cos(th), math.Sin(th)).Mul(r))
	}
	p.polygon(pts...)
}

func (p *painter) polygon(pts ...geom.Point) {
	if len(pts) < 3 {
		return
	}
	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, q := range pts[1:] {
		p.z.LineTo(float32(q.X), float32(q.Y))
	}
	p.z.ClosePath()
	p.dirty = true
}
