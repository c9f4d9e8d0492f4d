package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/springbez/internal/config"
	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/input"
	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/model"
	"github.com/olivier-w/springbez/internal/scene"
	"github.com/olivier-w/springbez/internal/sim"
	"github.com/olivier-w/springbez/internal/snapshot"
)

// headlessJob renders a single frame without a terminal.
type headlessJob struct {
	path       string
	width      float64
	height     float64
	frames     int
	pointer    geom.Point
	hasPointer bool
}

func renderHeadless(cfg config.Config, job headlessJob) error {
	params, err := cfg.ModelParams()
	if err != nil {
		return err
	}
	m, err := model.New(params, cfg.StartMode(), job.width, job.height)
	if err != nil {
		return err
	}
	router := input.New(m, cfg.InputOptions())
	if job.hasPointer {
		router.PointerMove(job.pointer)
	}

	if m.Mode() == model.Auto {
		clock := &sim.Steady{
			At:       time.Unix(0, 0),
			Interval: time.Duration(harmonica.FPS(cfg.FPS) * float64(time.Second)),
		}
		sim.NewLoop(cfg.MaxStep).Drive(job.frames, clock, m)
	}

	f := scene.Build(m, router.Cursor(), model.None, cfg.SceneOptions())
	if err := snapshot.Save(job.path, f); err != nil {
		return err
	}
	logging.Logger().Debug("headless snapshot", "path", job.path, "frames", job.frames, "settled", m.Settled(0.5))
	return nil
}

// parseSize reads "WxH".
func parseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	wi, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || wi < 1 {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || hi < 1 {
		return 0, 0, fmt.Errorf("size %q: bad height", s)
	}
	return float64(wi), float64(hi), nil
}

// parsePoint reads "X,Y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("point %q: want X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}
