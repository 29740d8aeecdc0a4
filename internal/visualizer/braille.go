package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

// Braille renders a high-resolution spectrum using Unicode Braille characters.
// Each cell is a 2x4 dot grid, giving 2x horizontal and 4x vertical resolution.
type Braille struct {
	levels []float64
}

func NewBraille() *Braille {
	return &Braille{}
}

func (b *Braille) Name() string { return "braille" }

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

func (b *Braille) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	cols, height := s.Width(), s.Height()
	if cols == 0 || height == 0 {
		return
	}

	dotCols := cols * 2
	dotRows := height * 4
	b.levels = columnLevels(st.Bands, dotCols, b.levels)

	for row := range height {
		shade := rgbFromHSV(0.55-0.2*float64(height-row)/float64(height), 0.7, 0.95)
		for col := range cols {
			var pattern uint
			for dx := range 2 {
				lvl := b.levels[col*2+dx] * float64(dotRows)
				for dy := range 4 {
					dotFromBottom := float64(dotRows - 1 - (row*4 + dy))
					if lvl > dotFromBottom {
						pattern |= 1 << brailleBits[dx][dy]
					}
				}
			}
			if pattern != 0 {
				s.Set(col, row, rune(0x2800+pattern), shade)
			}
		}
	}
}
