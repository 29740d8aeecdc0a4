package visualizer

import (
	"fmt"
	"math"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const (
	vuLabelWidth = 7
	vuReadout    = 8
	vuPeakDecay  = 0.006
)

const (
	needleLeft = iota
	needleRight
	needleBalance
	needleBass
	needleCount
)

// VU renders stereo channel meters with peak hold, a balance gauge and a bass
// meter fed by the configured bass band range. Needles ride on springs so
// they overshoot a little, like a moving-coil meter.
type VU struct {
	needles   springField
	leftPeak  float64
	rightPeak float64
	green     RGB
	amber     RGB
	red       RGB
	hold      RGB
	scale     RGB
	label     RGB
}

func NewVU() *VU {
	v := &VU{
		needles: newSpringField(9.0, 0.55),
		green:   RGB{R: 60, G: 224, B: 116},
		amber:   RGB{R: 240, G: 198, B: 72},
		red:     RGB{R: 242, G: 96, B: 86},
		hold:    RGB{R: 255, G: 252, B: 210},
		scale:   RGB{R: 70, G: 70, B: 70},
		label:   hex("#f4ecd8"),
	}
	v.needles.resize(needleCount)
	v.needles.pos[needleBalance] = 0.5
	return v
}

func (v *VU) Name() string { return "vu" }

func (v *VU) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	left := clamp01(v.needles.step(needleLeft, level(st.VolumeLeft)))
	right := clamp01(v.needles.step(needleRight, level(st.VolumeRight)))
	balance := clamp01(v.needles.step(needleBalance, 0.5+(st.VolumeLeft-st.VolumeRight)/(2*envelope.MaxLevel)))
	bass := clamp01(v.needles.step(needleBass, level(st.BassLevel())))

	v.leftPeak = holdPeak(v.leftPeak, left)
	v.rightPeak = holdPeak(v.rightPeak, right)

	barWidth := w - vuLabelWidth - vuReadout
	if barWidth < 4 {
		barWidth = max(w-vuLabelWidth, 1)
	}

	top := max((h-5)/2, 0)
	v.meterRow(s, top, "LEFT", left, v.leftPeak, barWidth)
	if h >= 3 {
		v.meterRow(s, top+2, "RIGHT", right, v.rightPeak, barWidth)
	} else {
		v.meterRow(s, top+1, "RIGHT", right, v.rightPeak, barWidth)
	}
	if h < 5 {
		return
	}

	y := top + 4
	half := max((w-2)/2, 1)
	v.balanceGauge(s, 0, y, half, balance)
	v.bassGauge(s, half+2, y, w-half-2, bass, st.Config)
}

func holdPeak(peak, cur float64) float64 {
	if cur > peak {
		return cur
	}
	return max(peak-vuPeakDecay, 0)
}

func (v *VU) zoneColor(i, width int) RGB {
	switch {
	case i < width*6/10:
		return v.green
	case i < width*8/10:
		return v.amber
	default:
		return v.red
	}
}

func (v *VU) meterRow(s *Surface, y int, label string, lvl, peak float64, width int) {
	s.Print(1, y, label, v.label)
	x0 := vuLabelWidth

	filled := int(lvl * float64(width))
	peakPos := min(int(peak*float64(width)), width-1)
	for i := range width {
		switch {
		case i < filled:
			s.Set(x0+i, y, '█', v.zoneColor(i, width))
		case i == peakPos && peakPos > 0:
			s.Set(x0+i, y, '│', v.hold)
		default:
			s.Set(x0+i, y, '─', v.scale)
		}
	}

	db := 20 * math.Log10(math.Max(lvl, 0.01))
	s.Print(x0+width+1, y, fmt.Sprintf("%+4.0fdB", db), v.label)
}

func (v *VU) balanceGauge(s *Surface, x, y, width int, balance float64) {
	s.Print(x+1, y, "BAL", v.label)
	track := width - 7
	if track < 3 {
		return
	}
	x0 := x + 5
	s.Set(x0, y, '◀', v.label)
	s.Set(x0+track+1, y, '▶', v.label)
	pos := int(math.Round(balance * float64(track-1)))
	for i := range track {
		ch, col := '─', v.scale
		if i == track/2 {
			ch = '┼'
		}
		if i == pos {
			ch, col = '●', v.amber
		}
		s.Set(x0+1+i, y, ch, col)
	}
}

func (v *VU) bassGauge(s *Surface, x, y, width int, bass float64, cfg envelope.BandConfig) {
	lo, hi := cfg.BassHz()
	caption := fmt.Sprintf("%d-%dHz", lo, hi)
	s.Print(x, y, "BASS", v.label)
	track := width - 6 - len(caption)
	if track < 3 {
		return
	}
	x0 := x + 5
	filled := int(bass * float64(track))
	for i := range track {
		if i < filled {
			s.Set(x0+i, y, '█', v.zoneColor(i, track))
		} else {
			s.Set(x0+i, y, '─', v.scale)
		}
	}
	s.Print(x0+track+1, y, caption, v.scale)
}
