package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

const ledPeakFall = 0.012

// LED draws segmented meters with green, amber and red zones and a falling
// peak cap per column.
type LED struct {
	levels []float64
	peaks  []float64
	off    RGB
	normal RGB
	warn   RGB
	peak   RGB
}

func NewLED() *LED {
	return &LED{
		off:    hex("#1a1a1a"),
		normal: hex("#00ff00"),
		warn:   hex("#ffcc00"),
		peak:   hex("#ff0000"),
	}
}

func (l *LED) Name() string { return "led" }

func (l *LED) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	cols := w
	gap := 0
	if w >= 2*len(st.Bands) && len(st.Bands) > 0 {
		cols = len(st.Bands)
		gap = 1
	}
	stride := w / cols

	l.levels = columnLevels(st.Bands, cols, l.levels)
	if len(l.peaks) != cols {
		l.peaks = make([]float64, cols)
	}

	total := int(float64(h) * 0.9)
	if total < 1 {
		total = 1
	}

	for c, v := range l.levels {
		if v >= l.peaks[c] {
			l.peaks[c] = v
		} else {
			l.peaks[c] = max(l.peaks[c]-ledPeakFall, 0)
		}

		active := int(v * float64(total))
		peakBlock := int(l.peaks[c] * float64(total))
		for b := range total {
			y := h - 1 - b
			col := l.off
			ch := '▪'
			switch {
			case b < active && float64(b) > float64(total)*0.85:
				col, ch = l.peak, '■'
			case b < active && float64(b) > float64(total)*0.6:
				col, ch = l.warn, '■'
			case b < active:
				col, ch = l.normal, '■'
			case b == peakBlock && peakBlock > 0:
				col, ch = l.peak.scale(0.8), '▬'
			}
			for dx := range stride - gap {
				s.Set(c*stride+dx, y, ch, col)
			}
		}
	}
}
