package visualizer

import (
	"math"

	"github.com/olivier-w/vizwall/internal/envelope"
)

// Kitt mirrors the lower half of the spectrum outward from the centre as
// vertically centred red bars, with a scanner light sweeping the bottom row.
type Kitt struct {
	scan float64
	dir  float64
	bar  RGB
	dim  RGB
}

func NewKitt() *Kitt {
	return &Kitt{dir: 1, bar: hex("#ff1a1a"), dim: hex("#3a0000")}
}

func (k *Kitt) Name() string { return "kitt" }

func (k *Kitt) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	half := w / 2
	limit := len(st.Bands) / 2
	if half == 0 || limit == 0 {
		return
	}
	mid := float64(h) / 2

	for d := range half {
		band := d * limit / half
		v := level(st.Band(band))
		rows := int(math.Round(v * float64(h) * 0.6))
		if rows < 1 {
			rows = 1
		}
		top := int(math.Round(mid - float64(rows)/2))
		col := lerpColor(k.dim, k.bar, 0.35+v)
		for r := range rows {
			s.Set(half+d, top+r, '█', col)
			s.Set(half-1-d, top+r, '█', col)
		}
	}

	k.scan += k.dir * (0.01 + level(st.Mean(0, 8))*0.02)
	if k.scan >= 1 {
		k.scan, k.dir = 1, -1
	} else if k.scan <= 0 {
		k.scan, k.dir = 0, 1
	}
	head := int(k.scan * float64(w-1))
	for x := range w {
		dist := math.Abs(float64(x - head))
		glow := math.Max(0, 1-dist/6)
		if glow == 0 {
			continue
		}
		s.Set(x, h-1, '▬', lerpColor(k.dim, k.bar, glow))
	}
}
