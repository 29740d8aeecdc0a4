package visualizer

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

// RGB is a 24-bit foreground colour for one surface cell.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			profile = colorNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			profile = colorTrueColor
		case strings.Contains(term, "256color"):
			profile = colorANSI256
		case term == "", term == "dumb":
			profile = colorNone
		default:
			profile = colorANSI16
		}
	})
	return profile
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// hex parses a #rrggbb palette constant. Palettes are fixed at compile time,
// so a bad literal is a programming error.
func hex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("visualizer: bad palette colour %q: %v", s, err))
	}
	return fromColorful(c)
}

func lerpColor(a, b RGB, t float64) RGB {
	return fromColorful(a.toColorful().BlendRgb(b.toColorful(), clamp01(t)))
}

// scale dims a colour toward black; f is clamped to [0,1].
func (c RGB) scale(f float64) RGB {
	f = clamp01(f)
	return RGB{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f)}
}

// rgbFromHSV takes hue as a fraction of a turn; s and v are clamped.
func rgbFromHSV(h, s, v float64) RGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	return fromColorful(colorful.Hsv(h*360, clamp01(s), clamp01(v)))
}

func heatColor(t float64) RGB {
	t = clamp01(t)
	switch {
	case t < 0.25:
		return lerpColor(RGB{R: 16, G: 25, B: 70}, RGB{R: 0, G: 174, B: 255}, t/0.25)
	case t < 0.5:
		return lerpColor(RGB{R: 0, G: 174, B: 255}, RGB{R: 20, G: 255, B: 161}, (t-0.25)/0.25)
	case t < 0.75:
		return lerpColor(RGB{R: 20, G: 255, B: 161}, RGB{R: 255, G: 230, B: 92}, (t-0.5)/0.25)
	default:
		return lerpColor(RGB{R: 255, G: 230, B: 92}, RGB{R: 255, G: 80, B: 60}, (t-0.75)/0.25)
	}
}

type ansiState struct {
	profile colorProfile
	current uint32
}

func newANSIState() ansiState {
	return ansiState{profile: currentColorProfile(), current: ^uint32(0)}
}

func (s *ansiState) set(sb *strings.Builder, c RGB) {
	if s.profile == colorNone {
		return
	}
	key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if key == s.current {
		return
	}
	sb.WriteString(colorSequence(s.profile, c))
	s.current = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || s.current == ^uint32(0) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.current = ^uint32(0)
}

var ansi16Palette = []RGB{
	{R: 0, G: 0, B: 0},
	{R: 205, G: 49, B: 49},
	{R: 13, G: 188, B: 121},
	{R: 229, G: 229, B: 16},
	{R: 36, G: 114, B: 200},
	{R: 188, G: 63, B: 188},
	{R: 17, G: 168, B: 205},
	{R: 229, G: 229, B: 229},
}

func colorSequence(profile colorProfile, c RGB) string {
	key := uint32(profile)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[38;5;%dm", 16+36*r+6*g+b)
	case colorANSI16:
		// nearest by perceptual distance
		target := c.toColorful()
		best := 0
		bestDist := math.MaxFloat64
		for i, p := range ansi16Palette {
			if d := target.DistanceLab(p.toColorful()); d < bestDist {
				bestDist = d
				best = i
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", 30+best)
	}

	seqCache.Store(key, seq)
	return seq
}
