package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/olivier-w/springbez/internal/geom"
	"github.com/olivier-w/springbez/internal/util"
)

const (
	minTangentLength = 10
	maxTangentLength = 300
)

func newSlider() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#00FFFF", "#FFFFFF"),
		progress.WithoutPercentage(),
	)
}

// sliderWidth splits the panel row between the two sliders.
func sliderWidth(termWidth int) int {
	w := termWidth/2 - 20
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

func renderSlider(bar progress.Model, label string, frac float64, value string) string {
	return labelStyle.Render(label) + " " + bar.ViewAs(geom.Clamp(frac, 0, 1)) + " " + valueStyle.Render(value)
}

func renderPoint(name string, p geom.Point, control bool) string {
	style := valueStyle
	if control {
		style = controlStyle
	}
	return labelStyle.Render(name) + " " + style.Render(util.FormatPoint(p.X, p.Y))
}

func tangentFraction(length float64) float64 {
	return (length - minTangentLength) / (maxTangentLength - minTangentLength)
}

func joinFields(fields ...string) string {
	return strings.Join(fields, "  ")
}
