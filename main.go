package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springbez/internal/config"
	"github.com/olivier-w/springbez/internal/logging"
	"github.com/olivier-w/springbez/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "TOML config file")
		mode       = flag.String("mode", "", "start mode: auto or manual")
		stiffness  = flag.Float64("stiffness", 0, "spring stiffness")
		damping    = flag.Float64("damping", 0, "spring damping")
		integrator = flag.String("integrator", "", "spring integrator: euler or harmonica")
		fps        = flag.Int("fps", 0, "animation frame rate")
		logPath    = flag.String("log", "", "write debug log to file")
		snapPath   = flag.String("snapshot", "", "render headless to this PNG file and exit")
		frames     = flag.Int("frames", 120, "frames to simulate before a headless snapshot")
		size       = flag.String("size", "800x600", "headless canvas size WxH")
		pointer    = flag.String("pointer", "", "headless pointer position X,Y")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "stiffness":
			cfg.Stiffness = *stiffness
		case "damping":
			cfg.Damping = *damping
		case "integrator":
			cfg.Integrator = *integrator
		case "fps":
			cfg.FPS = *fps
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logging.SetLogger(logging.NewText(f, slog.LevelDebug))
	}

	if *snapPath != "" {
		job := headlessJob{path: *snapPath, frames: *frames}
		var err error
		if job.width, job.height, err = parseSize(*size); err == nil && *pointer != "" {
			job.pointer, err = parsePoint(*pointer)
			job.hasPointer = err == nil
		}
		if err != nil {
			return err
		}
		return renderHeadless(cfg, job)
	}

	params, err := cfg.ModelParams()
	if err != nil {
		return err
	}
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	model, err := ui.New(ui.Options{
		Mode:        cfg.StartMode(),
		Params:      params,
		Input:       cfg.InputOptions(),
		Scene:       cfg.SceneOptions(),
		FPS:         cfg.FPS,
		SnapshotDir: dir,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}
