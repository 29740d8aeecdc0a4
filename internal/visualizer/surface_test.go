package visualizer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceIgnoresOutOfRangeWrites(t *testing.T) {
	s := NewSurface(3, 2)
	s.Set(-1, 0, 'x', RGB{})
	s.Set(3, 0, 'x', RGB{})
	s.Set(0, 2, 'x', RGB{})
	s.Print(1, 1, "abcdef", RGB{})

	assert.Equal(t, "   \n ab", s.Plain())
}

func TestSurfaceResizeClears(t *testing.T) {
	s := NewSurface(2, 2)
	s.SetPlain(0, 0, '#')
	s.Resize(2, 2)
	assert.Equal(t, Cell{}, s.At(0, 0))

	s.Resize(5, 1)
	assert.Equal(t, 5, s.Width())
	assert.Equal(t, 1, s.Height())

	s.Resize(-3, -3)
	assert.Equal(t, 0, s.Width())
	assert.Equal(t, "", s.Plain())
}

func TestSurfaceVBar(t *testing.T) {
	s := NewSurface(1, 4)
	s.VBar(0, 2.5, func(float64) RGB { return RGB{R: 255} })

	lines := strings.Split(s.Plain(), "\n")
	assert.Equal(t, []string{" ", "▄", "█", "█"}, lines)

	s.Clear()
	s.VBar(0, math.NaN(), func(float64) RGB { return RGB{} })
	s.VBar(0, 99, func(float64) RGB { return RGB{} })
	assert.Equal(t, "█\n█\n█\n█", s.Plain())
}

func TestSurfaceFillClips(t *testing.T) {
	s := NewSurface(3, 3)
	s.Fill(-5, 1, 10, 2, '=', RGB{})
	assert.Equal(t, "   \n===\n   ", s.Plain())
}

func TestSurfaceLine(t *testing.T) {
	s := NewSurface(4, 4)
	s.Line(0, 0, 3, 3, '\\', RGB{})
	for i := range 4 {
		assert.Equal(t, '\\', s.At(i, i).Ch)
	}
}

func TestColumnLevels(t *testing.T) {
	bands := []float64{0, 100}
	got := columnLevels(bands, 4, nil)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1}, got, 1e-9)

	assert.Empty(t, columnLevels(bands, 0, nil))
	assert.Equal(t, []float64{0, 0}, columnLevels(nil, 2, nil))
}
