package visualizer

import (
	"time"

	"github.com/olivier-w/vizwall/internal/envelope"
)

// Frame identifies one scheduled redraw. Renderers derive animation phase
// from it instead of reading the wall clock.
type Frame struct {
	Index   uint64
	Elapsed time.Duration
}

// Seconds returns the elapsed time as fractional seconds.
func (f Frame) Seconds() float64 {
	return f.Elapsed.Seconds()
}

// Renderer paints one full frame of a visual style.
//
// Draw is called once per scheduled frame while the renderer is active and
// never concurrently. It may keep private animation state between calls but
// must treat the display state as read-only.
type Renderer interface {
	Name() string
	Draw(s *Surface, st *envelope.DisplayState, f Frame)
}
