package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/springbez/internal/util"
)

// Preset is a named pair of spring constants.
type Preset struct {
	Name      string
	Stiffness float64
	Damping   float64
}

func (p Preset) Title() string { return p.Name }
func (p Preset) Description() string {
	return "stiffness " + util.FormatFloat(p.Stiffness) + "  damping " + util.FormatFloat(p.Damping)
}
func (p Preset) FilterValue() string { return p.Name }

type customItem struct{}

func (customItem) Title() string       { return "Custom..." }
func (customItem) Description() string { return "enter stiffness and damping" }
func (customItem) FilterValue() string { return "custom" }

// DefaultPresets are offered by the spring picker.
var DefaultPresets = []Preset{
	{Name: "default", Stiffness: 80, Damping: 10},
	{Name: "critical", Stiffness: 100, Damping: 20},
	{Name: "snappy", Stiffness: 300, Damping: 30},
	{Name: "bouncy", Stiffness: 120, Damping: 4},
	{Name: "sluggish", Stiffness: 20, Damping: 12},
}

// presetPicker lists spring presets and accepts custom constants.
// After an Update, chosen is set when the user picked one and done is set
// when the picker should close.
type presetPicker struct {
	list   list.Model
	input  textinput.Model
	custom bool
	errMsg string

	chosen *Preset
	done   bool
}

func newPresetPicker(presets []Preset) presetPicker {
	items := make([]list.Item, 0, len(presets)+1)
	for _, p := range presets {
		items = append(items, p)
	}
	items = append(items, customItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 60, 20)
	l.Title = "springs"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "stiffness damping"
	ti.CharLimit = 32
	ti.Width = 30

	return presetPicker{list: l, input: ti}
}

// open resets the picker for another selection.
func (p presetPicker) open() presetPicker {
	p.chosen = nil
	p.done = false
	p.custom = false
	p.errMsg = ""
	p.input.Reset()
	p.input.Blur()
	return p
}

func (p presetPicker) setSize(width, height int) presetPicker {
	p.list.SetWidth(width)
	p.list.SetHeight(height)
	return p
}

func (p presetPicker) Update(msg tea.Msg) (presetPicker, tea.Cmd) {
	if p.custom {
		return p.updateCustom(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && p.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			switch item := p.list.SelectedItem().(type) {
			case customItem:
				p.custom = true
				p.errMsg = ""
				p.input.Focus()
				return p, textinput.Blink
			case Preset:
				p.chosen = &item
				p.done = true
				return p, nil
			}
		case "q", "esc":
			p.done = true
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p presetPicker) updateCustom(msg tea.Msg) (presetPicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			preset, err := parsePreset(p.input.Value())
			if err != nil {
				p.errMsg = err.Error()
				return p, nil
			}
			p.chosen = &preset
			p.done = true
			return p, nil
		case "esc":
			p.custom = false
			p.errMsg = ""
			p.input.Reset()
			p.input.Blur()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// parsePreset reads "stiffness damping" as typed into the custom field.
func parsePreset(s string) (Preset, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 2 {
		return Preset{}, fmt.Errorf("want two numbers, got %q", s)
	}
	k, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Preset{}, fmt.Errorf("stiffness: %w", err)
	}
	c, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Preset{}, fmt.Errorf("damping: %w", err)
	}
	return Preset{Name: "custom", Stiffness: k, Damping: c}, nil
}

func (p presetPicker) View() string {
	if p.custom {
		s := "\n"
		s += "  " + headerStyle.Render("springs") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Stiffness and damping:") + "\n"
		s += "  " + p.input.View() + "\n"
		if p.errMsg != "" {
			s += "  " + errorStyle.Render(p.errMsg) + "\n"
		}
		s += "\n"
		s += "  " + helpStyle.Render("enter apply  esc back") + "\n"
		return s
	}
	return p.list.View()
}
