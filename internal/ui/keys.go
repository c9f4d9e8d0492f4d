package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Mode        key.Binding
	LineUp      key.Binding
	LineDown    key.Binding
	TangentUp   key.Binding
	TangentDown key.Binding
	Tilt        key.Binding
	TiltUp      key.Binding
	TiltDown    key.Binding
	TiltLeft    key.Binding
	TiltRight   key.Binding
	Presets     key.Binding
	Reset       key.Binding
	Snapshot    key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Mode:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		LineUp:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "line")),
		LineDown:    key.NewBinding(key.WithKeys("-", "_")),
		TangentUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "tangent")),
		TangentDown: key.NewBinding(key.WithKeys("[")),
		Tilt:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tilt")),
		TiltUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("←↑↓→", "lean")),
		TiltDown:    key.NewBinding(key.WithKeys("down", "j")),
		TiltLeft:    key.NewBinding(key.WithKeys("left", "h")),
		TiltRight:   key.NewBinding(key.WithKeys("right", "l")),
		Presets:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "springs")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Snapshot:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapshot")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.LineUp, k.TangentUp, k.Tilt, k.Presets, k.Reset, k.Snapshot, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Reset, k.Presets},
		{k.LineUp, k.TangentUp},
		{k.Tilt, k.TiltUp},
		{k.Snapshot, k.Quit},
	}
}

var quitKey = newKeyMap().Quit

func isQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, quitKey)
}
