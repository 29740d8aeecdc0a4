package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

// Neon draws gradient bars rising from the floor. The top of the gradient
// brightens with the lowest band.
type Neon struct {
	levels []float64
	low    RGB
	mid    RGB
	high   RGB
}

func NewNeon() *Neon {
	return &Neon{
		low:  hex("#00F260"),
		mid:  hex("#0575E6"),
		high: hex("#8E2DE2"),
	}
}

func (n *Neon) Name() string { return "neon" }

func (n *Neon) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	bass := level(st.Band(0))
	top := lerpColor(n.high.scale(0.5), n.high, 0.5+bass)

	// leave a gap column between bars once every band fits twice
	cols := w
	stride := 1
	if w >= 2*len(st.Bands) && len(st.Bands) > 0 {
		cols = len(st.Bands)
		stride = w / cols
	}
	n.levels = columnLevels(st.Bands, cols, n.levels)

	gradient := func(t float64) RGB {
		if t < 0.5 {
			return lerpColor(n.low, n.mid, t*2)
		}
		return lerpColor(n.mid, top, (t-0.5)*2)
	}

	for c, v := range n.levels {
		rows := v * float64(h) * 0.85
		if rows < 0.25 {
			rows = 0.25
		}
		for dx := range max(stride-1, 1) {
			s.VBar(c*stride+dx, rows, gradient)
		}
	}
}
