package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

var waterfallChars = []rune{' ', '.', ':', '-', '=', '+', '*', '#', '%', '@'}

// Waterfall renders a scrolling spectrogram: the newest spectrum line enters
// at the top and older lines fade as they sink.
type Waterfall struct {
	smooth  springField
	levels  []float64
	history [][]float64
	fade    RGB
}

func NewWaterfall() *Waterfall {
	return &Waterfall{
		smooth: newSpringField(8.5, 0.72),
		fade:   RGB{R: 18, G: 22, B: 32},
	}
}

func (w *Waterfall) Name() string { return "waterfall" }

func (w *Waterfall) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	cols, height := s.Width(), s.Height()
	if cols == 0 || height == 0 {
		return
	}

	w.smooth.resize(cols)
	w.levels = columnLevels(st.Bands, cols, w.levels)

	if len(w.history) != height || len(w.history[0]) != cols {
		w.history = make([][]float64, height)
		for r := range height {
			w.history[r] = make([]float64, cols)
		}
	}

	// recycle the oldest row as the newest
	oldest := w.history[height-1]
	copy(w.history[1:], w.history[:height-1])
	w.history[0] = oldest
	for c := range cols {
		oldest[c] = clamp01(w.smooth.step(c, w.levels[c]))
	}

	for r := range height {
		age := float64(r) / float64(height)
		for c := range cols {
			v := w.history[r][c]
			idx := min(int(v*float64(len(waterfallChars)-1)), len(waterfallChars)-1)
			ch := waterfallChars[idx]
			if ch == ' ' {
				continue
			}
			s.Set(c, r, ch, lerpColor(heatColor(v), w.fade, age*0.65))
		}
	}
}
