package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/visualizer"
)

type paintRenderer struct {
	size   [2]int
	frames []visualizer.Frame
}

func (p *paintRenderer) Name() string { return "paint" }

func (p *paintRenderer) Draw(s *visualizer.Surface, st *envelope.DisplayState, f visualizer.Frame) {
	p.size = [2]int{s.Width(), s.Height()}
	p.frames = append(p.frames, f)
	s.SetPlain(0, 0, '#')
}

type panicRenderer struct{ calls int }

func (p *panicRenderer) Name() string { return "boom" }

func (p *panicRenderer) Draw(s *visualizer.Surface, _ *envelope.DisplayState, _ visualizer.Frame) {
	p.calls++
	s.SetPlain(0, 0, 'x')
	panic("renderer bug")
}

func newTestScheduler(t *testing.T) (*Scheduler, *paintRenderer, *panicRenderer) {
	t.Helper()
	paint := &paintRenderer{}
	boom := &panicRenderer{}
	reg := visualizer.NewRegistry()
	reg.Register("paint", func() visualizer.Renderer { return paint })
	reg.Register("boom", func() visualizer.Renderer { return boom })
	require.NoError(t, reg.Select("paint"))
	return New(reg, nil, 4, 2), paint, boom
}

func TestTickDrawsActiveRenderer(t *testing.T) {
	s, paint, _ := newTestScheduler(t)
	start := time.Unix(100, 0)

	assert.True(t, s.Tick(start))
	assert.True(t, s.Tick(start.Add(16*time.Millisecond)))

	require.Len(t, paint.frames, 2)
	assert.Equal(t, uint64(0), paint.frames[0].Index)
	assert.Equal(t, uint64(1), paint.frames[1].Index)
	assert.Equal(t, 16*time.Millisecond, paint.frames[1].Elapsed)
	assert.Equal(t, "#   \n    ", s.Plain())
	assert.Equal(t, Stats{Drawn: 2}, s.Stats())
}

func TestTickClearsBeforeDrawing(t *testing.T) {
	reg := visualizer.NewRegistry()
	reg.Register("blank", nil)
	s := New(reg, nil, 3, 1)

	s.Tick(time.Now())
	s.surface.SetPlain(1, 0, 'z')
	require.NoError(t, reg.Select("blank"))
	s.Tick(time.Now())
	assert.Equal(t, "   ", s.Plain())
}

func TestPanickingRendererDropsFrameOnly(t *testing.T) {
	s, paint, boom := newTestScheduler(t)
	require.NoError(t, s.Registry().Select("boom"))

	assert.False(t, s.Tick(time.Now()))
	assert.False(t, s.Tick(time.Now()))
	assert.Equal(t, 2, boom.calls)
	assert.Equal(t, uint64(2), s.Dropped())
	assert.Equal(t, "    \n    ", s.Plain())

	require.NoError(t, s.Registry().Select("paint"))
	assert.True(t, s.Tick(time.Now()))
	assert.Len(t, paint.frames, 1)
	assert.Equal(t, Stats{Drawn: 1, Dropped: 2}, s.Stats())
}

func TestDrawRecoversPanicAsError(t *testing.T) {
	s, _, boom := newTestScheduler(t)

	err := s.draw(boom, visualizer.Frame{})
	require.Error(t, err)
	assert.Equal(t, "renderer boom panicked: renderer bug", err.Error())
}

func TestResizeAppliesAtNextTick(t *testing.T) {
	s, paint, _ := newTestScheduler(t)
	s.Tick(time.Now())
	s.Resize(10, 5)
	assert.Equal(t, [2]int{4, 2}, paint.size)

	w, h := s.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)

	s.Tick(time.Now())
	assert.Equal(t, [2]int{10, 5}, paint.size)
}

func TestNoActiveRendererLeavesBlankFrame(t *testing.T) {
	s := New(visualizer.NewRegistry(), nil, 2, 1)
	assert.True(t, s.Tick(time.Now()))
	assert.Equal(t, "  ", s.Plain())
}

func TestPushAppliesFollower(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	bars := make([]float64, envelope.NumBands)
	bars[0] = 100
	s.Push(envelope.Snapshot{Bars: bars})
	assert.InDelta(t, 95.0, s.State().Bands[0], 1e-9)

	err := s.PushPayload([]byte(`{"volL": 3}`))
	assert.ErrorIs(t, err, envelope.ErrMalformedSnapshot)
	assert.InDelta(t, 95.0, s.State().Bands[0], 1e-9)
}

func TestCloseStopsTicks(t *testing.T) {
	s, paint, _ := newTestScheduler(t)
	s.Close()
	s.Close()

	assert.False(t, s.Tick(time.Now()))
	assert.Empty(t, paint.frames)
	assert.Equal(t, "", s.View())
	assert.NoError(t, s.PushPayload([]byte("garbage")))
}
