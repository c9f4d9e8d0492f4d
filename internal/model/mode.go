package model

import "fmt"

// Mode selects where control-point positions come from.
type Mode int

const (
	// Auto drives both control points with springs chasing targets.
	Auto Mode = iota
	// Manual leaves control points where they are dragged.
	Manual
)

// Next cycles to the other mode.
func (m Mode) Next() Mode {
	switch m {
	case Auto:
		return Manual
	default:
		return Auto
	}
}

// String returns the name of the mode as used in config files and flags.
func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	default:
		return "auto"
	}
}

// ParseMode parses "auto" or "manual".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "manual":
		return Manual, nil
	}
	return Auto, fmt.Errorf("unknown mode %q (want auto or manual)", s)
}

// Handle names one of the two control points.
type Handle int

const (
	None Handle = iota
	P1
	P2
)

func (h Handle) String() string {
	switch h {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return "none"
	}
}

func (h Handle) index() (int, bool) {
	switch h {
	case P1:
		return 0, true
	case P2:
		return 1, true
	}
	return 0, false
}
