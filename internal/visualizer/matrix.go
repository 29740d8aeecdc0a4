package visualizer

import (
	"math/rand"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const matrixTrailLen = 8

// Matrix renders falling code rain. Each column follows one band: louder
// bands start drops more often and make them fall faster.
type Matrix struct {
	columns []matrixCol
	levels  []float64
	rng     *rand.Rand
	head    RGB
	trail   RGB
}

type matrixCol struct {
	active bool
	headY  float64 // fractional row position of the falling head
	speed  float64
	chars  []rune
}

func NewMatrix() *Matrix {
	return &Matrix{
		rng:   rand.New(rand.NewSource(42)),
		head:  RGB{R: 220, G: 255, B: 220},
		trail: RGB{R: 0, G: 230, B: 65},
	}
}

func (m *Matrix) Name() string { return "matrix" }

func (m *Matrix) randomChar() rune {
	n := m.rng.Intn(36)
	if n < 10 {
		return rune('0' + n)
	}
	return rune('A' + n - 10)
}

func (m *Matrix) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	cols, height := s.Width(), s.Height()
	if cols == 0 || height == 0 {
		return
	}

	if len(m.columns) != cols {
		m.columns = make([]matrixCol, cols)
		for i := range m.columns {
			m.columns[i].chars = make([]rune, matrixTrailLen)
			for j := range m.columns[i].chars {
				m.columns[i].chars[j] = m.randomChar()
			}
		}
	}
	m.levels = columnLevels(st.Bands, cols, m.levels)

	for c := range cols {
		magnitude := m.levels[c]
		col := &m.columns[c]

		if !col.active {
			if m.rng.Float64() < magnitude*0.15 {
				col.active = true
				col.headY = 0
				col.speed = 0.3 + magnitude*1.2
				for j := range col.chars {
					col.chars[j] = m.randomChar()
				}
			}
			continue
		}

		col.headY += col.speed
		col.chars[0] = m.randomChar()
		if int(col.headY)-matrixTrailLen > height {
			col.active = false
		}
	}

	for c := range cols {
		col := &m.columns[c]
		if !col.active {
			continue
		}
		headRow := int(col.headY)
		for t := range matrixTrailLen {
			color := m.trail.scale(1 - float64(t)/matrixTrailLen)
			if t == 0 {
				color = m.head
			}
			s.Set(c, headRow-t, col.chars[t%len(col.chars)], color)
		}
	}
}
