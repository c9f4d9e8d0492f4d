package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/springbez/internal/input"
	"github.com/olivier-w/springbez/internal/sim"
)

// tickMsg is one animation frame for the loop generation that scheduled it.
type tickMsg struct {
	gen sim.Generation
	at  time.Time
}

type tiltPermissionMsg struct {
	perm input.Permission
}

type snapshotSavedMsg struct {
	path string
	err  error
}

type statusExpiredMsg struct {
	seq uint64
}

const statusTTL = 5 * time.Second

// frameInterval converts a frame rate to a tick interval.
func frameInterval(fps int) time.Duration {
	if fps < 1 {
		fps = 60
	}
	return time.Duration(harmonica.FPS(fps) * float64(time.Second))
}

func tickCmd(gen sim.Generation, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func expireStatus(seq uint64) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
