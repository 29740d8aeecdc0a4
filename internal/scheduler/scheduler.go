// Package scheduler runs the frame loop: it owns the display state, feeds
// snapshots through the envelope follower and asks the active renderer to
// paint one frame per tick.
package scheduler

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/visualizer"
)

// Stats counts frames since the scheduler was created.
type Stats struct {
	Drawn   uint64
	Dropped uint64
}

// Scheduler is single-threaded: Push, Resize and Tick must be called from the
// same goroutine (the bubbletea Update loop or a headless driver).
type Scheduler struct {
	registry *visualizer.Registry
	follower *envelope.Follower
	state    *envelope.DisplayState
	surface  *visualizer.Surface

	width, height int
	resized       bool

	start  time.Time
	frame  uint64
	stats  Stats
	closed bool
}

// New creates a scheduler drawing into a width x height surface. A nil state
// gets a fresh DisplayState with the default band count.
func New(reg *visualizer.Registry, st *envelope.DisplayState, width, height int) *Scheduler {
	if st == nil {
		st = envelope.NewDisplayState(envelope.NumBands)
	}
	return &Scheduler{
		registry: reg,
		follower: envelope.NewFollower(),
		state:    st,
		surface:  visualizer.NewSurface(width, height),
		width:    max(width, 0),
		height:   max(height, 0),
	}
}

func (s *Scheduler) Registry() *visualizer.Registry { return s.registry }

// State returns the display state. Configuration changes are written into it
// directly; the follower and renderers read them on the next tick.
func (s *Scheduler) State() *envelope.DisplayState { return s.state }

// Push runs one snapshot through the envelope follower.
func (s *Scheduler) Push(snap envelope.Snapshot) {
	if s.closed {
		return
	}
	s.follower.Apply(snap, s.state)
}

// PushPayload decodes and applies one feed line. A malformed payload leaves
// the state untouched and is returned to the caller.
func (s *Scheduler) PushPayload(data []byte) error {
	if s.closed {
		return nil
	}
	return s.follower.ApplyPayload(data, s.state)
}

// Resize records a new surface size; it takes effect at the next Tick.
func (s *Scheduler) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.resized = true
}

// Size returns the size the next frame will be drawn at.
func (s *Scheduler) Size() (int, int) {
	return s.width, s.height
}

// Tick draws one frame and reports whether it completed. A renderer that
// panics loses its frame, which is left blank, and the next Tick proceeds
// normally. Tick after Close does nothing and returns false.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.closed {
		return false
	}
	if s.resized {
		s.surface.Resize(s.width, s.height)
		s.resized = false
	} else {
		s.surface.Clear()
	}
	if s.start.IsZero() {
		s.start = now
	}

	f := visualizer.Frame{Index: s.frame, Elapsed: now.Sub(s.start)}
	s.frame++

	r := s.registry.Current()
	if r == nil {
		s.stats.Drawn++
		return true
	}
	if err := s.draw(r, f); err != nil {
		s.stats.Dropped++
		s.surface.Clear()
		logrus.WithFields(logrus.Fields{
			"function": "Tick",
			"style":    s.registry.Active(),
			"frame":    f.Index,
			"error":    err,
		}).Warn("Dropped frame")
		return false
	}
	s.stats.Drawn++
	return true
}

func (s *Scheduler) draw(r visualizer.Renderer, f visualizer.Frame) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("renderer %s panicked: %v", r.Name(), p)
		}
	}()
	r.Draw(s.surface, s.state, f)
	return nil
}

// View returns the last frame as ANSI-coloured text.
func (s *Scheduler) View() string {
	if s.closed {
		return ""
	}
	return s.surface.String()
}

// Plain returns the last frame without colour sequences.
func (s *Scheduler) Plain() string {
	if s.closed {
		return ""
	}
	return s.surface.Plain()
}

func (s *Scheduler) Stats() Stats { return s.stats }

func (s *Scheduler) Dropped() uint64 { return s.stats.Dropped }

// Close stops the loop and releases the surface. It is safe to call twice.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.surface = visualizer.NewSurface(0, 0)
	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"drawn":    s.stats.Drawn,
		"dropped":  s.stats.Dropped,
	}).Debug("Scheduler closed")
}
