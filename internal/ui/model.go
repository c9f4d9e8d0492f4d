package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/springbez/internal/canvas"
	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/input"
	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/model"
	"github.com/olivier-w/springbez/internal/scene"
	"github.com/olivier-w/springbez/internal/sim"
	"github.com/olivier-w/springbez/internal/snapshot"
	"github.com/olivier-w/springbez/internal/util"
)

// Rows above and below the canvas.
const (
	canvasTop  = 1
	chromeRows = canvasTop + 5
)

// tiltStep is how far one arrow key leans the emulated sensor, in degrees.
const tiltStep = 5

// Options configures a Model.
type Options struct {
	Mode   model.Mode
	Params model.Params
	Input  input.Options
	Scene  scene.Options
	FPS    int
	// SnapshotDir is where the snapshot key writes PNG files.
	SnapshotDir string
	// RequestTilt resolves sensor permission off the update loop. Nil
	// grants it; in a terminal the arrow keys stand in for the sensor.
	RequestTilt func() input.Permission
	// Profile overrides colour detection when non-nil.
	Profile *canvas.Profile
}

// Model is the Bubbletea model for the springbez TUI.
type Model struct {
	opts     Options
	model    *model.Model
	router   *input.Router
	loop     *sim.Loop
	canvas   *canvas.Canvas
	interval time.Duration

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	lineBar progress.Model
	tanBar  progress.Model
	picker  presetPicker
	picking bool

	width      int
	height     int
	frame      scene.Frame
	canvasView string

	tiltPending bool
	beta        float64
	gamma       float64

	status    string
	statusErr bool
	statusSeq uint64

	quitting bool
}

// New creates a Model sized for an 80x24 terminal until the first
// WindowSizeMsg arrives.
func New(opts Options) (Model, error) {
	mdl, err := model.New(opts.Params, opts.Mode, 1, 1)
	if err != nil {
		return Model{}, err
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	h := help.New()
	h.Styles.ShortKey = labelStyle
	h.Styles.ShortDesc = helpStyle

	m := Model{
		opts:     opts,
		model:    mdl,
		router:   input.New(mdl, opts.Input),
		loop:     sim.NewLoop(opts.Params.MaxStep),
		interval: frameInterval(opts.FPS),
		keys:     newKeyMap(),
		help:     h,
		spinner:  s,
		lineBar:  newSlider(),
		tanBar:   newSlider(),
		picker:   newPresetPicker(DefaultPresets),
	}
	m.resize(80, 24)
	m.redraw()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.restartLoop(), tea.SetWindowTitle("springbez"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		cmd := m.restartLoop()
		m.redraw()
		return m, cmd

	case tickMsg:
		if _, ok := m.loop.Advance(msg.gen, msg.at, m.model); !ok {
			return m, nil
		}
		m.redraw()
		return m, tickCmd(msg.gen, m.interval)

	case tiltPermissionMsg:
		return m.applyTiltPermission(msg.perm)

	case snapshotSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Snapshot failed: %v", msg.err), true)
		}
		return m, m.setStatus("Saved "+msg.path, false)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.tiltPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.picking {
			return m, nil
		}
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case isQuit(msg):
		m.quitting = true
		m.loop.Stop()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Mode):
		m.router.SetMode(m.model.Mode().Next())
		cmd := m.restartLoop()
		m.redraw()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		m.model.Reset()
		m.router.DragEnd()
		cmd := m.restartLoop()
		m.redraw()
		return m, cmd

	case key.Matches(msg, m.keys.LineUp), key.Matches(msg, m.keys.LineDown):
		step := 1
		if key.Matches(msg, m.keys.LineDown) {
			step = -1
		}
		w, _ := m.model.Size()
		m.model.SetLineLength(m.model.LineLength().Adjust(w, step))
		m.router.DragEnd()
		cmd := m.restartLoop()
		m.redraw()
		return m, cmd

	case key.Matches(msg, m.keys.TangentUp), key.Matches(msg, m.keys.TangentDown):
		step := 10.0
		if key.Matches(msg, m.keys.TangentDown) {
			step = -10
		}
		m.opts.Scene.TangentLength = geom.Clamp(m.opts.Scene.TangentLength+step, minTangentLength, maxTangentLength)
		m.redraw()
		return m, nil

	case key.Matches(msg, m.keys.Tilt):
		if m.router.TiltActive() {
			m.router.DisableTilt()
			m.redraw()
			return m, m.setStatus("Tilt off", false)
		}
		if m.tiltPending {
			return m, nil
		}
		m.tiltPending = true
		return m, tea.Batch(m.spinner.Tick, requestTilt(m.opts.RequestTilt))

	case key.Matches(msg, m.keys.TiltUp), key.Matches(msg, m.keys.TiltDown),
		key.Matches(msg, m.keys.TiltLeft), key.Matches(msg, m.keys.TiltRight):
		if !m.router.TiltActive() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.TiltUp):
			m.beta = geom.Clamp(m.beta-tiltStep, -90, 90)
		case key.Matches(msg, m.keys.TiltDown):
			m.beta = geom.Clamp(m.beta+tiltStep, -90, 90)
		case key.Matches(msg, m.keys.TiltLeft):
			m.gamma = geom.Clamp(m.gamma-tiltStep, -90, 90)
		default:
			m.gamma = geom.Clamp(m.gamma+tiltStep, -90, 90)
		}
		if err := m.router.Tilt(m.beta, m.gamma); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Presets):
		m.picking = true
		m.picker = m.picker.open()
		return m, nil

	case key.Matches(msg, m.keys.Snapshot):
		name := fmt.Sprintf("springbez-%s.png", time.Now().Format("20060102-150405"))
		return m, saveSnapshot(filepath.Join(m.opts.SnapshotDir, name), m.frame)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	p := canvas.CellToDot(msg.X, msg.Y-canvasTop)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.router.PointerMove(p)
		if m.model.Mode() == model.Manual {
			m.redraw()
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if h := m.router.DragStart(p, input.Pointer); h != model.None {
			logging.Logger().Debug("drag start", "handle", h)
			m.redraw()
		}
	case tea.MouseActionRelease:
		if m.router.Dragging() != model.None {
			m.router.DragEnd()
			m.redraw()
		}
	}
	return m
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m.handleKey(km)
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if !m.picker.done {
		return m, cmd
	}
	m.picking = false
	if p := m.picker.chosen; p != nil {
		if err := m.model.Tune(p.Stiffness, p.Damping); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, m.setStatus("Springs: "+p.Name, false)
	}
	return m, nil
}

func (m Model) applyTiltPermission(perm input.Permission) (Model, tea.Cmd) {
	m.tiltPending = false
	res, err := m.router.EnableTilt(perm)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Tilt unavailable: %v", err), true)
	}
	status := m.setStatus("Tilt on", false)
	if res.ModeChanged {
		cmd := m.restartLoop()
		m.redraw()
		return m, tea.Batch(status, cmd)
	}
	m.holdTilt()
	m.redraw()
	return m, status
}

// restartLoop follows every reseed of the control points. It cancels any
// running loop instance, re-aims the fresh springs at the held tilt reading
// and, in auto mode, starts a new instance. Manual mode has no loop.
func (m Model) restartLoop() tea.Cmd {
	if m.model.Mode() != model.Auto {
		m.loop.Stop()
		return nil
	}
	m.holdTilt()
	return tickCmd(m.loop.Start(), m.interval)
}

// holdTilt replays the last emulated sensor reading. The keyboard sensor
// only reports on a key press, so reseeded springs would otherwise sit on
// their seeds until the next one.
func (m Model) holdTilt() {
	if m.router.TiltActive() {
		_ = m.router.Tilt(m.beta, m.gamma)
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := max(width, 1)
	rows := max(height-chromeRows, 1)
	m.canvas = canvas.New(cols, rows)
	if m.opts.Profile != nil {
		m.canvas.SetProfile(*m.opts.Profile)
	}
	dw, dh := canvas.DotSize(cols, rows)
	m.model.Resize(float64(dw), float64(dh))
	m.router.DragEnd()
	logging.Logger().Debug("resize", "cols", cols, "rows", rows, "dots_w", dw, "dots_h", dh)

	m.lineBar.Width = sliderWidth(width)
	m.tanBar.Width = sliderWidth(width)
	m.picker = m.picker.setSize(width, height)
}

func (m *Model) redraw() {
	m.frame = scene.Build(m.model, m.router.Cursor(), m.router.Dragging(), m.opts.Scene)
	p0, p3 := m.model.Endpoints()
	m.canvas.SetGradient(p0.X, p3.X)
	canvas.Draw(m.canvas, m.frame)
	m.canvasView = m.canvas.String()
}

func (m *Model) setStatus(s string, isErr bool) tea.Cmd {
	if isErr {
		logging.Logger().Warn("status", "msg", s)
	}
	m.status = s
	m.statusErr = isErr
	m.statusSeq++
	return expireStatus(m.statusSeq)
}

func requestTilt(request func() input.Permission) tea.Cmd {
	return func() tea.Msg {
		if request == nil {
			return tiltPermissionMsg{perm: input.Granted}
		}
		return tiltPermissionMsg{perm: request()}
	}
}

func saveSnapshot(path string, f scene.Frame) tea.Cmd {
	return func() tea.Msg {
		return snapshotSavedMsg{path: path, err: snapshot.Save(path, f)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picking {
		return m.picker.View()
	}

	header := "  " + headerStyle.Render("springbez") + "  " + modeStyle.Render(m.model.Mode().String())
	if m.router.TiltActive() {
		header += "  " + statusStyle.Render("tilt")
	}

	pts := m.frame.Points
	points := joinFields(
		renderPoint("P0", pts[0], false),
		renderPoint("P1", pts[1], true),
		renderPoint("P2", pts[2], true),
		renderPoint("P3", pts[3], false),
	)

	c := m.frame.Cursor
	cursor := joinFields(
		labelStyle.Render("t")+" "+valueStyle.Render(fmt.Sprintf("%.2f", c.T)),
		labelStyle.Render("pos")+" "+valueStyle.Render(util.FormatPoint(c.Point.X, c.Point.Y)),
		labelStyle.Render("tan")+" "+valueStyle.Render(util.FormatPoint(c.Tangent.X, c.Tangent.Y)),
		labelStyle.Render("angle")+" "+valueStyle.Render(util.FormatAngle(c.Angle)),
	)

	var info string
	switch {
	case m.tiltPending:
		info = m.spinner.View() + " " + statusStyle.Render("Requesting tilt...")
	case m.status != "" && m.statusErr:
		info = errorStyle.Render(m.status)
	case m.status != "":
		info = statusStyle.Render(m.status)
	}
	if beta, gamma, ok := m.router.Sensor(); ok && m.router.TiltActive() {
		sensor := labelStyle.Render("β") + " " + valueStyle.Render(util.FormatAngle(beta)) + "  " +
			labelStyle.Render("γ") + " " + valueStyle.Render(util.FormatAngle(gamma))
		info = joinFields(sensor, info)
	}

	w, _ := m.model.Size()
	line := m.model.LineLength()
	lineValue := util.FormatFloat(line.Resolve(w))
	if line.Compact(w) {
		lineValue = util.FormatPercent(line.Percent)
	}
	sliders := joinFields(
		renderSlider(m.lineBar, "line", line.Fraction(w), lineValue),
		renderSlider(m.tanBar, "tangent", tangentFraction(m.opts.Scene.TangentLength), util.FormatFloat(m.opts.Scene.TangentLength)),
	)

	lines := header + "\n"
	lines += m.canvasView + "\n"
	lines += "  " + points + "\n"
	lines += "  " + cursor + "\n"
	lines += "  " + info + "\n"
	lines += "  " + sliders + "\n"
	lines += "  " + m.help.View(m.keys)
	return lines
}
