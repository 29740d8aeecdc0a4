package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

// Hatching renders a spectrum with an engraving/etching aesthetic using
// directional line characters. Low frequencies use horizontal lines,
// mid frequencies use diagonals, high frequencies use verticals.
// Amplitude controls density from dots to cross-hatching.
type Hatching struct {
	levels []float64
	ink    RGB
}

func NewHatching() *Hatching {
	return &Hatching{ink: hex("#d8cfc0")}
}

func (h *Hatching) Name() string { return "hatching" }

func (h *Hatching) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	cols, height := s.Width(), s.Height()
	if cols == 0 || height == 0 {
		return
	}
	h.levels = columnLevels(st.Bands, cols, h.levels)

	for row := range height {
		rowFromBottom := float64(height - 1 - row)
		for c := range cols {
			dist := h.levels[c]*float64(height) - rowFromBottom
			if dist <= 0 {
				continue
			}
			density := min(dist/float64(height), 1)
			ch := hatchChar(density, float64(c)/float64(cols), row, c)
			if ch != ' ' {
				s.Set(c, row, ch, h.ink.scale(0.45+density*0.55))
			}
		}
	}
}

// Density layers from sparse to dense: dot, directional line, cross, #, @.
func hatchChar(density, freq float64, row, col int) rune {
	switch {
	case density < 0.15:
		if (row+col)%3 == 0 {
			return '·'
		}
		return ' '
	case density < 0.35:
		return dirChar(freq, row, col)
	case density < 0.55:
		if (row+col)%2 == 0 {
			return dirChar(freq, row, col)
		}
		return '+'
	case density < 0.75:
		return '#'
	default:
		return '@'
	}
}

func dirChar(freq float64, row, col int) rune {
	switch {
	case freq < 0.33:
		return '-'
	case freq < 0.66:
		if (row+col)%2 == 0 {
			return '/'
		}
		return '\\'
	default:
		return '|'
	}
}
