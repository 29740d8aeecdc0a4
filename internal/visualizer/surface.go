package visualizer

import (
	"math"
	"strings"
)

// Cell is one character position on a Surface.
type Cell struct {
	Ch     rune
	FG     RGB
	Styled bool
}

// Surface is a fixed-size character grid that renderers paint into.
// Writes outside the grid are ignored.
type Surface struct {
	width  int
	height int
	cells  []Cell
}

// NewSurface allocates a cleared surface. Negative sizes are treated as 0.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates the grid when the size changed and clears it.
func (s *Surface) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width != s.width || height != s.height || len(s.cells) != width*height {
		s.width, s.height = width, height
		s.cells = make([]Cell, width*height)
		return
	}
	s.Clear()
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Clear blanks every cell.
func (s *Surface) Clear() {
	clear(s.cells)
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// Set paints one coloured cell.
func (s *Surface) Set(x, y int, ch rune, c RGB) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Ch: ch, FG: c, Styled: true}
}

// SetPlain paints one cell in the terminal's default colour.
func (s *Surface) SetPlain(x, y int, ch rune) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Ch: ch}
}

// At returns the cell at x, y; out of range reads as an empty cell.
func (s *Surface) At(x, y int) Cell {
	if !s.inside(x, y) {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// Print writes str left to right starting at x, y.
func (s *Surface) Print(x, y int, str string, c RGB) {
	for _, r := range str {
		s.Set(x, y, r, c)
		x++
	}
}

// Fill paints the rectangle [x0,x1) x [y0,y1).
func (s *Surface) Fill(x0, y0, x1, y1 int, ch rune, c RGB) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.width), min(y1, s.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.cells[y*s.width+x] = Cell{Ch: ch, FG: c, Styled: true}
		}
	}
}

// blockRamp holds vertical eighths, from empty to full.
var blockRamp = []rune(" ▁▂▃▄▅▆▇█")

// VBar paints a bottom-anchored bar of fractional height (in rows) in column x.
// color is called with the row's fraction of the surface height so bars can
// carry a gradient.
func (s *Surface) VBar(x int, level float64, color func(t float64) RGB) {
	if x < 0 || x >= s.width || s.height == 0 || math.IsNaN(level) {
		return
	}
	level = math.Min(math.Max(level, 0), float64(s.height))
	full := int(level)
	for r := range full {
		y := s.height - 1 - r
		s.Set(x, y, blockRamp[len(blockRamp)-1], color(float64(r)/float64(s.height)))
	}
	frac := level - float64(full)
	if idx := int(frac * float64(len(blockRamp)-1)); idx > 0 && full < s.height {
		s.Set(x, s.height-1-full, blockRamp[idx], color(float64(full)/float64(s.height)))
	}
}

// Line draws a Bresenham line of ch between two points.
func (s *Surface) Line(x0, y0, x1, y1 int, ch rune, c RGB) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		s.Set(x0, y0, ch, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid as ANSI-coloured text, one line per row.
func (s *Surface) String() string {
	var out strings.Builder
	color := newANSIState()
	for y := range s.height {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := range s.width {
			cell := s.cells[y*s.width+x]
			if cell.Ch == 0 || cell.Ch == ' ' {
				out.WriteByte(' ')
				continue
			}
			if cell.Styled {
				color.set(&out, cell.FG)
			} else {
				color.reset(&out)
			}
			out.WriteRune(cell.Ch)
		}
		color.reset(&out)
	}
	return out.String()
}

// Plain renders the grid without colour sequences.
func (s *Surface) Plain() string {
	var out strings.Builder
	for y := range s.height {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := range s.width {
			ch := s.cells[y*s.width+x].Ch
			if ch == 0 {
				ch = ' '
			}
			out.WriteRune(ch)
		}
	}
	return out.String()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
