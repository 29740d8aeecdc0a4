package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/vizwall/internal/config"
	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/feed"
	"github.com/olivier-w/vizwall/internal/logging"
	"github.com/olivier-w/vizwall/internal/scheduler"
	"github.com/olivier-w/vizwall/internal/visualizer"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := visualizer.NewDefaultRegistry()
	if err := reg.Select("neon"); err != nil {
		t.Fatalf("select neon: %v", err)
	}
	settings := config.Default()
	st := envelope.NewDisplayState(envelope.NumBands)
	settings.ApplyTo(st)

	m := New(Options{
		Scheduler:    scheduler.New(reg, st, 40, 10),
		Settings:     settings,
		SettingsPath: filepath.Join(t.TempDir(), "config.yaml"),
		Feed:         make(chan feed.Message),
	})
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 40, Height: 12})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func barsPayload(v int) feed.Message {
	bars := make([]float64, envelope.NumBands)
	for i := range bars {
		bars[i] = float64(v)
	}
	payload, _ := envelope.EncodeSnapshot(envelope.Snapshot{Bars: bars, VolL: 50, VolR: 50})
	return feed.Message{Kind: feed.KindBands, Payload: payload}
}

func TestFrameMsgTicksAndReschedules(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.handleMsg(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected next frame command")
	}
	if got := next.sched.Stats().Drawn; got != 1 {
		t.Fatalf("expected one drawn frame, got %d", got)
	}
}

func TestFeedMsgAppliesSnapshot(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.handleMsg(feedMsg(barsPayload(100)))
	if cmd == nil {
		t.Fatal("expected command waiting for the next feed message")
	}
	if got := next.sched.State().Bands[0]; got != 95 {
		t.Fatalf("expected first band at 95 after one tick, got %v", got)
	}
}

func TestMalformedFeedMsgIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleMsg(feedMsg(barsPayload(100)))

	next, _ := m.handleMsg(feedMsg(feed.Message{Kind: feed.KindBands, Payload: []byte(`{"volL":1}`)}))
	if got := next.sched.State().Bands[0]; got != 95 {
		t.Fatalf("expected state untouched, got %v", got)
	}
}

func TestMediaMsgShowsAndHidesOverlay(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.handleMsg(feedMsg(feed.Message{Kind: feed.KindMedia, Payload: []byte(`{"title":"Song","artist":"Band"}`)}))
	if !next.media.Visible() {
		t.Fatal("expected overlay to be visible")
	}
	if w, h := next.sched.Size(); w != 40 || h != 10 {
		t.Fatalf("expected surface 40x10 with overlay, got %dx%d", w, h)
	}
	next, _ = next.handleMsg(frameMsg(time.Now()))
	view := next.View()
	if first := strings.SplitN(view, "\n", 2)[0]; !strings.Contains(first, "Song") {
		t.Fatalf("expected overlay on the first line, got %q", view)
	}

	next, _ = next.handleMsg(feedMsg(feed.Message{Kind: feed.KindMedia, Payload: []byte(`{"title":""}`)}))
	if next.media.Visible() {
		t.Fatal("expected empty title to hide the overlay")
	}
	if _, h := next.sched.Size(); h != 11 {
		t.Fatalf("expected surface to regain the overlay row, got %d", h)
	}
}

func TestFeedClosedDecaysToRest(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleMsg(feedMsg(barsPayload(255)))
	m, cmd := m.handleMsg(feedClosedMsg{})
	if cmd != nil {
		t.Fatal("expected no further feed command")
	}

	now := time.Now()
	for i := range 20 {
		m, _ = m.handleMsg(frameMsg(now.Add(time.Duration(i) * time.Millisecond)))
	}
	if got := m.sched.State().Bands[0]; got != 0 {
		t.Fatalf("expected bass band at rest after 20 silent frames, got %v", got)
	}
}

func TestStyleCycling(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	if next.sched.Registry().Active() != "nyancat" {
		t.Fatalf("expected nyancat after neon, got %q", next.sched.Registry().Active())
	}
	if next.settings.Style != "nyancat" {
		t.Fatalf("expected settings to follow, got %q", next.settings.Style)
	}
	next, _ = next.handleMsg(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.sched.Registry().Active() != "neon" {
		t.Fatalf("expected neon again, got %q", next.sched.Registry().Active())
	}
}

func TestPromptUnknownStyleKeepsActive(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleMsg(runes(":"))
	if m.mode != modePrompt {
		t.Fatal("expected prompt mode")
	}
	m.prompt.SetValue("nonexistent")
	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected picker done command")
	}
	m, _ = m.handleMsg(cmd())

	if m.mode != modeVisual {
		t.Fatal("expected visual mode after prompt")
	}
	if got := m.sched.Registry().Active(); got != "neon" {
		t.Fatalf("expected neon to stay active, got %q", got)
	}
	if !m.flashWarn || !strings.Contains(m.flash, "nonexistent") {
		t.Fatalf("expected warning flash, got %q", m.flash)
	}
}

func TestPickerSelectsStyle(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleMsg(runes("s"))
	if m.mode != modePicker {
		t.Fatal("expected picker mode")
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	done, ok := cmd().(pickerDoneMsg)
	if !ok {
		t.Fatalf("expected pickerDoneMsg")
	}
	m, _ = m.handleMsg(done)
	if got := m.sched.Registry().Active(); got != done.key || got == "neon" {
		t.Fatalf("expected the style after neon, got %q", got)
	}
}

func TestSensitivityAndBassKeys(t *testing.T) {
	m := newTestModel(t)
	st := m.sched.State()

	m, _ = m.handleMsg(runes("+"))
	if st.Config.Sensitivity != 1.1 {
		t.Fatalf("expected sensitivity 1.1, got %v", st.Config.Sensitivity)
	}
	for range 30 {
		m, _ = m.handleMsg(runes("-"))
	}
	if st.Config.Sensitivity != minSens {
		t.Fatalf("expected sensitivity clamped at %v, got %v", minSens, st.Config.Sensitivity)
	}

	m, _ = m.handleMsg(runes("]"))
	m, _ = m.handleMsg(runes("}"))
	m, _ = m.handleMsg(runes(">"))
	if st.Config.BassStart != 6 || st.Config.BassLength != 6 || st.Config.BassSensitivity != 1.3 {
		t.Fatalf("unexpected bass config %+v", st.Config)
	}
	for range 10 {
		m, _ = m.handleMsg(runes("{"))
	}
	if st.Config.BassLength != 1 {
		t.Fatalf("expected bass length floor of 1, got %d", st.Config.BassLength)
	}

	m, _ = m.handleMsg(runes("x"))
	if st.Particles.Enabled {
		t.Fatal("expected particles toggled off")
	}
	if !strings.Contains(m.statusLine(), "(") {
		t.Fatalf("expected Hz range in status line, got %q", m.statusLine())
	}
}

func TestOverlayCornerCycles(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleMsg(runes("o"))
	if m.settings.MediaPosition != config.TopRight {
		t.Fatalf("expected top-right, got %q", m.settings.MediaPosition)
	}
}

func TestConsoleToggleShrinksSurface(t *testing.T) {
	m := newTestModel(t)
	m.console = logging.NewConsole(10, logrus.InfoLevel)
	m.console.Fire(&logrus.Entry{Level: logrus.InfoLevel, Message: "hello console", Time: time.Now()})

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlE})
	if _, h := m.sched.Size(); h != 11-consoleHeight {
		t.Fatalf("expected surface to shrink for the console, got %d", h)
	}
	if !strings.Contains(m.View(), "hello console") {
		t.Fatal("expected console lines in the view")
	}
}

func TestSaveWritesSettings(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleMsg(runes("v"))
	m, _ = m.handleMsg(runes("]"))

	_, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	saved, ok := cmd().(settingsSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("expected successful save, got %+v", saved)
	}
	if _, err := os.Stat(saved.path); err != nil {
		t.Fatalf("expected settings file: %v", err)
	}

	loaded, err := config.Load(saved.path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Style != "nyancat" || loaded.BassOffset != 6 {
		t.Fatalf("unexpected saved settings %+v", loaded)
	}
}

func TestQuitClosesScheduler(t *testing.T) {
	m := newTestModel(t)
	m, cmd := m.handleMsg(runes("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
	if m.sched.Tick(time.Now()) {
		t.Fatal("expected closed scheduler to refuse ticks")
	}
}
