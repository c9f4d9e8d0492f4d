// Package input turns pointer, tilt and drag events into control-point
// targets and positions on a model.Model.
package input

import (
	"errors"
	"math"

	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/model"
)

var (
	// ErrInvalidReading is returned for a sensor reading with a missing (NaN) angle.
	ErrInvalidReading = errors.New("invalid sensor reading")
	// ErrPermissionDenied is returned when tilt access was refused.
	ErrPermissionDenied = errors.New("sensor permission denied")
	// ErrUnsupported is returned when no tilt sensor is available.
	ErrUnsupported = errors.New("tilt sensor not supported")
)

// Device is the kind of pointing device starting a drag.
type Device int

const (
	Pointer Device = iota
	Touch
)

func (d Device) String() string {
	if d == Touch {
		return "touch"
	}
	return "pointer"
}

// Permission is the outcome of a tilt-sensor permission request.
type Permission int

const (
	Granted Permission = iota
	Denied
	Unsupported
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unsupported"
	}
}

// Options tunes how raw input maps onto the canvas.
type Options struct {
	// MirrorOffset shifts P2's pointer target right of P1's.
	MirrorOffset float64
	// Sensitivity is the tilt angle, in degrees, that gives full deflection.
	Sensitivity float64
	// ReachX and ReachY are the full-deflection offsets from the canvas
	// centre as fractions of its width and height.
	ReachX float64
	ReachY float64
	// PointerRadius and TouchRadius are hit-test radii per device.
	PointerRadius float64
	TouchRadius   float64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MirrorOffset:  200,
		Sensitivity:   45,
		ReachX:        0.45,
		ReachY:        0.4,
		PointerRadius: 20,
		TouchRadius:   40,
	}
}

// Result tells the host what an event changed.
type Result struct {
	// Redraw is set when a manual-mode position changed and the frame
	// should be redrawn now.
	Redraw bool
	// ModeChanged is set when the event switched mode; the host restarts or
	// stops its simulation loop.
	ModeChanged bool
}

// Router routes input events to a model. Only one of pointer or tilt drives
// the targets: enabling tilt suppresses pointer targeting.
type Router struct {
	model *model.Model
	opts  Options

	tilt    bool
	beta    float64
	gamma   float64
	hasTilt bool

	cursor geom.Point
	drag   model.Handle
}

// New returns a router feeding m.
func New(m *model.Model, opts Options) *Router {
	return &Router{model: m, opts: opts}
}

// Cursor returns the last pointer position used for the cursor readout.
func (r *Router) Cursor() geom.Point { return r.cursor }

// Dragging returns the control point being dragged, or model.None.
func (r *Router) Dragging() model.Handle { return r.drag }

// TiltActive reports whether tilt input is enabled.
func (r *Router) TiltActive() bool { return r.tilt }

// Sensor returns the last accepted tilt angles in degrees.
func (r *Router) Sensor() (beta, gamma float64, ok bool) {
	return r.beta, r.gamma, r.hasTilt
}

// SetMode switches the model's mode and ends any drag in progress.
func (r *Router) SetMode(mode model.Mode) Result {
	r.drag = model.None
	r.model.SetMode(mode)
	return Result{ModeChanged: true, Redraw: true}
}

// PointerMove handles a pointer position in canvas space. While tilt is
// active in auto mode the pointer is ignored; manual drags always follow it.
func (r *Router) PointerMove(p geom.Point) Result {
	if !p.IsFinite() {
		return Result{}
	}
	mode := r.model.Mode()
	if r.tilt && mode == model.Auto {
		return Result{}
	}
	r.cursor = p

	switch mode {
	case model.Auto:
		_, h := r.model.Size()
		_ = r.model.SetTarget(model.P1, p)
		_ = r.model.SetTarget(model.P2, geom.Pt(p.X+r.opts.MirrorOffset, h-p.Y))
		return Result{}
	default:
		return r.DragMove(p)
	}
}

// Hover reports which control point a drag starting at p with device d
// would grab. It never changes state.
func (r *Router) Hover(p geom.Point, d Device) model.Handle {
	if r.model.Mode() != model.Manual {
		return model.None
	}
	return r.model.HitTest(p, r.radius(d))
}

// DragStart begins dragging the control point under p, if any. It only
// acts in manual mode.
func (r *Router) DragStart(p geom.Point, d Device) model.Handle {
	if r.model.Mode() != model.Manual || !p.IsFinite() {
		return model.None
	}
	r.drag = r.model.HitTest(p, r.radius(d))
	return r.drag
}

// DragMove moves the dragged control point to p.
func (r *Router) DragMove(p geom.Point) Result {
	if r.drag == model.None || !p.IsFinite() {
		return Result{}
	}
	if err := r.model.DragTo(r.drag, p); err != nil {
		logging.Logger().Warn("drag rejected", "handle", r.drag, "err", err)
		r.drag = model.None
		return Result{}
	}
	return Result{Redraw: true}
}

// DragEnd releases the dragged control point.
func (r *Router) DragEnd() {
	r.drag = model.None
}

// EnableTilt applies the result of a sensor permission request. On Granted
// it forces auto mode, discarding manual control points, and hands
// targeting to the sensor. Otherwise the mode is left alone and the refusal
// is returned.
func (r *Router) EnableTilt(p Permission) (Result, error) {
	switch p {
	case Granted:
	case Denied:
		logging.Logger().Warn("tilt permission denied")
		return Result{}, ErrPermissionDenied
	default:
		logging.Logger().Warn("tilt unsupported")
		return Result{}, ErrUnsupported
	}

	var res Result
	if r.model.Mode() != model.Auto {
		res = r.SetMode(model.Auto)
	}
	r.tilt = true
	return res, nil
}

// DisableTilt hands targeting back to the pointer.
func (r *Router) DisableTilt() {
	r.tilt = false
	r.hasTilt = false
}

// Tilt handles a device orientation reading: beta is front-to-back tilt and
// gamma left-to-right, both in degrees. Readings are ignored until tilt is
// enabled and while the model is in manual mode.
func (r *Router) Tilt(beta, gamma float64) error {
	if math.IsNaN(beta) || math.IsNaN(gamma) {
		return ErrInvalidReading
	}
	if !r.tilt {
		return nil
	}
	beta = geom.Clamp(beta, -90, 90)
	gamma = geom.Clamp(gamma, -90, 90)
	r.beta, r.gamma, r.hasTilt = beta, gamma, true

	if r.model.Mode() != model.Auto {
		return nil
	}

	sens := r.opts.Sensitivity
	if !(sens > 0) {
		sens = DefaultOptions().Sensitivity
	}
	tx := geom.Clamp(gamma/sens, -1, 1)
	ty := geom.Clamp(beta/sens, -1, 1)

	w, h := r.model.Size()
	cx, cy := w/2, h/2
	off := geom.Vec(tx*w*r.opts.ReachX, ty*h*r.opts.ReachY)
	_ = r.model.SetTarget(model.P1, geom.Pt(cx+off.X, cy+off.Y))
	_ = r.model.SetTarget(model.P2, geom.Pt(cx-off.X, cy-off.Y))
	return nil
}

func (r *Router) radius(d Device) float64 {
	if d == Touch {
		return r.opts.TouchRadius
	}
	return r.opts.PointerRadius
}
