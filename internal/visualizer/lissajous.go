package visualizer

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/vizwall/internal/envelope"
)

var lissajousTrail = []rune{'·', '•', '✶', '✹'}

type lissajousPoint struct {
	x float64
	y float64
}

// Lissajous renders a stereo phase-space figure with a trailing path. The
// left and right volumes set the horizontal and vertical amplitude; the
// balance between bass and treble bends the frequency ratio.
type Lissajous struct {
	trail    []lissajousPoint
	maxTrail int
	spring   harmonica.Spring
	ax, vx   float64 // horizontal amplitude and its velocity
	ay, vy   float64
	phase    float64
}

func NewLissajous() *Lissajous {
	return &Lissajous{
		spring: harmonica.NewSpring(harmonica.FPS(springFPS), 10.0, 0.7),
	}
}

func (l *Lissajous) Name() string { return "lissajous" }

const lissajousSteps = 24

func (l *Lissajous) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	cols, rows := s.Width(), s.Height()
	if cols < 2 || rows < 2 {
		return
	}

	l.maxTrail = max(cols*4, 32)

	l.ax, l.vx = l.spring.Update(l.ax, l.vx, level(st.VolumeLeft))
	l.ay, l.vy = l.spring.Update(l.ay, l.vy, level(st.VolumeRight))

	bass := level(st.BassLevel())
	treble := level(st.Mean(envelope.NumBands/2, envelope.NumBands))
	ratio := 2 + treble*2 - bass
	delta := 0.08 + bass*0.2

	for range lissajousSteps {
		l.phase += delta / lissajousSteps
		x := 0.5 + 0.5*l.ax*math.Sin(ratio*l.phase+math.Pi/2)
		y := 0.5 + 0.5*l.ay*math.Sin(3*l.phase)
		l.trail = append(l.trail, lissajousPoint{x: x, y: y})
	}
	if len(l.trail) > l.maxTrail {
		l.trail = l.trail[len(l.trail)-l.maxTrail:]
	}

	for i, p := range l.trail {
		x := int(clamp01(p.x) * float64(cols-1))
		y := int((1 - clamp01(p.y)) * float64(rows-1))
		freshness := float64(i) / float64(max(1, len(l.trail)-1))
		ch := lissajousTrail[min(len(lissajousTrail)-1, int(freshness*float64(len(lissajousTrail)-1)))]
		hue := math.Mod(0.08+float64(x)/float64(cols)*0.75+freshness*0.12, 1)
		s.Set(x, y, ch, rgbFromHSV(hue, 0.78, 0.3+0.7*freshness))
	}
}
