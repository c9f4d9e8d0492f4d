// Package config holds the tunable settings and loads them from TOML.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/olivier-w/springbez/internal/input"
	"github.com/olivier-w/springbez/internal/model"
	"github.com/olivier-w/springbez/internal/scene"
	"github.com/olivier-w/springbez/internal/spring"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of settings. Zero values are not meaningful; start
// from Default.
type Config struct {
	Mode       string  `toml:"mode"`
	Integrator string  `toml:"integrator"`
	Stiffness  float64 `toml:"stiffness"`
	Damping    float64 `toml:"damping"`
	MaxStep    float64 `toml:"max_dt"`
	FPS        int     `toml:"fps"`

	Curve CurveConfig `toml:"curve"`
	Input InputConfig `toml:"input"`
}

// CurveConfig controls sampling and the anchor layout.
type CurveConfig struct {
	Steps           int     `toml:"steps"`
	TangentInterval int     `toml:"tangent_interval"`
	TangentLength   float64 `toml:"tangent_length"`
	LinePixels      float64 `toml:"line_pixels"`
	LinePercent     float64 `toml:"line_percent"`
}

// InputConfig controls pointer and tilt mapping.
type InputConfig struct {
	PointerRadius float64 `toml:"pointer_radius"`
	TouchRadius   float64 `toml:"touch_radius"`
	MirrorOffset  float64 `toml:"mirror_offset"`
	Sensitivity   float64 `toml:"tilt_sensitivity"`
}

// Default returns the stock settings.
func Default() Config {
	opts := input.DefaultOptions()
	return Config{
		Mode:       model.Auto.String(),
		Integrator: spring.Euler{}.Name(),
		Stiffness:  80,
		Damping:    10,
		MaxStep:    spring.MaxStep,
		FPS:        60,
		Curve: CurveConfig{
			Steps:           100,
			TangentInterval: 10,
			TangentLength:   100,
			LinePixels:      200,
			LinePercent:     0.6,
		},
		Input: InputConfig{
			PointerRadius: opts.PointerRadius,
			TouchRadius:   opts.TouchRadius,
			MirrorOffset:  opts.MirrorOffset,
			Sensitivity:   opts.Sensitivity,
		},
	}
}

// Load decodes the TOML file at path over the defaults. Keys the file
// omits keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("loading config %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case !(c.Stiffness > 0):
		return fmt.Errorf("stiffness %v must be positive: %w", c.Stiffness, ErrInvalid)
	case !(c.Damping >= 0):
		return fmt.Errorf("damping %v must not be negative: %w", c.Damping, ErrInvalid)
	case !(c.MaxStep > 0):
		return fmt.Errorf("max_dt %v must be positive: %w", c.MaxStep, ErrInvalid)
	case c.FPS < 1:
		return fmt.Errorf("fps %d must be at least 1: %w", c.FPS, ErrInvalid)
	case c.Curve.Steps < 1:
		return fmt.Errorf("steps %d must be at least 1: %w", c.Curve.Steps, ErrInvalid)
	case c.Curve.TangentInterval < 1:
		return fmt.Errorf("tangent_interval %d must be at least 1: %w", c.Curve.TangentInterval, ErrInvalid)
	case !(c.Curve.LinePercent > 0 && c.Curve.LinePercent <= 1):
		return fmt.Errorf("line_percent %v must be in (0, 1]: %w", c.Curve.LinePercent, ErrInvalid)
	case !(c.Curve.LinePixels > 0):
		return fmt.Errorf("line_pixels %v must be positive: %w", c.Curve.LinePixels, ErrInvalid)
	}
	if _, err := model.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", err, ErrInvalid)
	}
	if _, err := spring.ByName(c.Integrator); err != nil {
		return fmt.Errorf("%w: %w", err, ErrInvalid)
	}
	return nil
}

// StartMode returns the parsed initial mode. Call after Validate.
func (c Config) StartMode() model.Mode {
	mode, err := model.ParseMode(c.Mode)
	if err != nil {
		return model.Auto
	}
	return mode
}

// ModelParams returns the spring and layout parameters for model.New.
func (c Config) ModelParams() (model.Params, error) {
	integ, err := spring.ByName(c.Integrator)
	if err != nil {
		return model.Params{}, err
	}
	return model.Params{
		Stiffness:  c.Stiffness,
		Damping:    c.Damping,
		Integrator: integ,
		MaxStep:    c.MaxStep,
		Line: model.LineLength{
			Pixels:  c.Curve.LinePixels,
			Percent: c.Curve.LinePercent,
		},
	}, nil
}

// InputOptions returns the router tuning.
func (c Config) InputOptions() input.Options {
	opts := input.DefaultOptions()
	opts.PointerRadius = c.Input.PointerRadius
	opts.TouchRadius = c.Input.TouchRadius
	opts.MirrorOffset = c.Input.MirrorOffset
	opts.Sensitivity = c.Input.Sensitivity
	return opts
}

// SceneOptions returns the sampling options for scene.Build.
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		Steps:           c.Curve.Steps,
		TangentInterval: c.Curve.TangentInterval,
		TangentLength:   c.Curve.TangentLength,
	}
}
