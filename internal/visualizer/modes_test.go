package visualizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/vizwall/internal/envelope"
)

func loudState() *envelope.DisplayState {
	st := envelope.NewDisplayState(envelope.NumBands)
	for i := range st.Bands {
		st.Bands[i] = float64(100 - i)
	}
	st.VolumeLeft = 80
	st.VolumeRight = 60
	return st
}

func TestEveryModeDrawsAtAnySize(t *testing.T) {
	sizes := [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 7}, {80, 24}, {200, 3}}
	for key, factory := range Modes() {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%dx%d", key, size[0], size[1]), func(t *testing.T) {
				r := factory()
				s := NewSurface(size[0], size[1])
				states := []*envelope.DisplayState{
					envelope.NewDisplayState(envelope.NumBands),
					loudState(),
					envelope.NewDisplayState(0),
				}
				require.NotPanics(t, func() {
					for i := range 30 {
						s.Clear()
						f := Frame{Index: uint64(i), Elapsed: time.Duration(i) * 16 * time.Millisecond}
						r.Draw(s, states[i%len(states)], f)
					}
				})
			})
		}
	}
}

func TestLoudModesPaintSomething(t *testing.T) {
	for key, factory := range Modes() {
		r := factory()
		s := NewSurface(80, 24)
		st := loudState()
		for i := range 60 {
			s.Clear()
			r.Draw(s, st, Frame{Index: uint64(i), Elapsed: time.Duration(i) * 16 * time.Millisecond})
		}
		painted := false
		for y := range s.Height() {
			for x := range s.Width() {
				if ch := s.At(x, y).Ch; ch != 0 && ch != ' ' {
					painted = true
				}
			}
		}
		assert.True(t, painted, "%s drew nothing for a loud state", key)
	}
}

func TestSynthwaveKeepsScrollAcrossSwitch(t *testing.T) {
	r := NewDefaultRegistry()
	require.NoError(t, r.Select("synthwave"))
	s := NewSurface(60, 20)
	st := loudState()

	for i := range 10 {
		r.Current().Draw(s, st, Frame{Index: uint64(i)})
	}
	sw := r.Current().(*Synthwave)
	offset := sw.offset
	assert.NotZero(t, offset)

	require.NoError(t, r.Select("neon"))
	r.Current().Draw(s, st, Frame{})
	require.NoError(t, r.Select("synthwave"))

	assert.Same(t, sw, r.Current())
	assert.Equal(t, offset, r.Current().(*Synthwave).offset)
}

func TestParticleSliders(t *testing.T) {
	assert.InDelta(t, 0.3, particleThreshold(0), 1e-9)
	assert.InDelta(t, 0.625, particleThreshold(50), 1e-9)
	assert.InDelta(t, 0.95, particleThreshold(100), 1e-9)
	assert.Equal(t, 8, particleCount(50))
	assert.Equal(t, 0, particleCount(5))
}
