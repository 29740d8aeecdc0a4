package visualizer

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/olivier-w/vizwall/internal/envelope"
)

// Graph plots the smoothed bands as an asciigraph line chart on a fixed
// 0..100 axis, with the bass window named in the caption.
type Graph struct {
	low  RGB
	high RGB
	axis RGB
}

func NewGraph() *Graph {
	return &Graph{
		low:  hex("#2AF598"),
		high: hex("#F5576C"),
		axis: hex("#5C6370"),
	}
}

func (g *Graph) Name() string { return "graph" }

func (g *Graph) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	// label column (3 digits), offset and axis glyph take eight cells
	plotW := w - 8
	if plotW < 4 || h < 4 || len(st.Bands) < 2 {
		return
	}

	lo, hi := st.Config.BassHz()
	chart := asciigraph.Plot(st.Bands,
		asciigraph.Height(h-2),
		asciigraph.Width(plotW),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(envelope.MaxLevel),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("bass %d Hz - %d Hz  level %.0f", lo, hi, st.BassLevel())),
	)

	lines := strings.Split(chart, "\n")
	plotRows := max(len(lines)-1, 1)
	for y, line := range lines {
		if y >= h {
			break
		}
		t := 1 - float64(y)/float64(plotRows)
		color := lerpColor(g.low, g.high, clamp01(t))
		x := 0
		for _, ch := range line {
			switch {
			case ch == ' ':
			case ch == '┤' || ch == '┼' || (ch >= '0' && ch <= '9' && x < 8) || y == len(lines)-1:
				s.Set(x, y, ch, g.axis)
			default:
				s.Set(x, y, ch, color)
			}
			x++
		}
	}
}
