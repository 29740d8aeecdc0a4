package visualizer

import "github.com/olivier-w/vizwall/internal/envelope"

// Blank is the no-op renderer installed for styles without an engine.
type Blank struct{}

func (Blank) Name() string { return "blank" }

func (Blank) Draw(*Surface, *envelope.DisplayState, Frame) {}
