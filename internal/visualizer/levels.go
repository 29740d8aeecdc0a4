package visualizer

import (
	"math"

	"github.com/olivier-w/vizwall/internal/envelope"
)

// columnLevels spreads bands across cols columns with linear interpolation and
// normalizes them to [0,1]. buf is reused when it has the right length.
func columnLevels(bands []float64, cols int, buf []float64) []float64 {
	if cols <= 0 {
		return buf[:0]
	}
	if len(buf) != cols {
		buf = make([]float64, cols)
	}
	n := len(bands)
	if n == 0 {
		clear(buf)
		return buf
	}

	for c := range cols {
		frac := float64(c) / float64(cols) * float64(n)
		lo := int(math.Floor(frac))
		hi := lo + 1
		t := frac - float64(lo)
		if lo >= n {
			lo = n - 1
		}
		if hi >= n {
			hi = n - 1
		}
		v := bands[lo]*(1-t) + bands[hi]*t
		buf[c] = clamp01(v / envelope.MaxLevel)
	}
	return buf
}

// level normalizes a band reading to [0,1].
func level(v float64) float64 {
	return clamp01(v / envelope.MaxLevel)
}
