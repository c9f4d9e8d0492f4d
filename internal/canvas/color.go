package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/muesli/termenv"
)

// Profile is the colour depth the terminal supports.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

// DetectProfile reads the colour profile from the environment, honouring
// NO_COLOR and CLICOLOR_FORCE.
func DetectProfile() Profile {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return ProfileTrueColor
	case termenv.ANSI256:
		return ProfileANSI256
	case termenv.ANSI:
		return ProfileANSI16
	default:
		return ProfileNone
	}
}

func (p Profile) envProfile() termenv.Profile {
	switch p {
	case ProfileTrueColor:
		return termenv.TrueColor
	case ProfileANSI256:
		return termenv.ANSI256
	case ProfileANSI16:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// Sequence returns the SGR escape that sets c as the foreground, degraded
// to the nearest colour p can show. It is empty for ProfileNone.
func (p Profile) Sequence(c RGB) string {
	col := p.envProfile().Color(c.Hex())
	if col == nil {
		return ""
	}
	seq := col.Sequence(false)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

// RGB is an 8-bit colour.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Ink colours.
var (
	colorGrid    = RGB{R: 48, G: 48, B: 58}
	colorCyan    = RGB{R: 0, G: 255, B: 255}
	colorWhite   = RGB{R: 255, G: 255, B: 255}
	colorHandle  = RGB{R: 136, G: 136, B: 136}
	colorTangent = RGB{R: 255, G: 255, B: 0}
	colorControl = RGB{R: 255, G: 0, B: 255}
	colorTarget  = RGB{R: 120, G: 60, B: 120}
	colorCursor  = RGB{R: 255, G: 140, B: 0}
)

func lerpColor(a, b RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// curveColor is the cyan→white→cyan gradient at fraction f along the anchors.
func curveColor(f float64) RGB {
	f = math.Max(0, math.Min(1, f))
	return lerpColor(colorCyan, colorWhite, 1-math.Abs(2*f-1))
}

// pen writes colour changes into a row buffer, skipping repeats.
type pen struct {
	profile Profile
	seqs    map[RGB]string
	current RGB
	inked   bool
}

func (p *pen) set(sb *strings.Builder, c RGB) {
	if p.profile == ProfileNone || (p.inked && c == p.current) {
		return
	}
	seq, ok := p.seqs[c]
	if !ok {
		seq = p.profile.Sequence(c)
		p.seqs[c] = seq
	}
	sb.WriteString(seq)
	p.current, p.inked = c, true
}

func (p *pen) reset(sb *strings.Builder) {
	if !p.inked {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	p.inked = false
}
