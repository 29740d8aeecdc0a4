package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/vizwall/internal/config"
	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/feed"
	"github.com/olivier-w/vizwall/internal/logging"
	"github.com/olivier-w/vizwall/internal/scheduler"
)

const (
	consoleHeight = 6
	flashTTL      = 4 * time.Second

	sensStep    = 0.1
	minSens     = 0.1
	maxSens     = 10.0
	maxBassSens = 5.0
)

type mode int

const (
	modeVisual mode = iota
	modePicker
	modePrompt
)

// Options wires a Model to its collaborators.
type Options struct {
	Scheduler    *scheduler.Scheduler
	Settings     *config.Settings
	SettingsPath string
	// Console backs the ctrl+e log view; nil disables it.
	Console *logging.Console
	// Feed delivers snapshots and media messages; nil runs without input.
	Feed  <-chan feed.Message
	Media feed.MediaInfo
}

// Model is the Bubbletea model hosting the visualizer.
type Model struct {
	sched        *scheduler.Scheduler
	settings     *config.Settings
	settingsPath string
	console      *logging.Console
	feed         <-chan feed.Message
	feedDone     bool
	media        feed.MediaInfo

	width    int
	height   int
	mode     mode
	picker   list.Model
	prompt   textinput.Model
	showLog  bool
	quitting bool

	flash     string    // transient status message
	flashWarn bool      // render flash as a warning
	flashTime time.Time // when flash was set
}

// New creates a Model. The scheduler's display state should already carry the
// settings (see config.Settings.ApplyTo).
func New(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.Default()
	}
	return Model{
		sched:        opts.Scheduler,
		settings:     settings,
		settingsPath: opts.SettingsPath,
		console:      opts.Console,
		feed:         opts.Feed,
		feedDone:     opts.Feed == nil,
		media:        opts.Media,
		prompt:       newPrompt(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.settings.FPS), waitForFeed(m.feed), tea.SetWindowTitle("vizwall"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if m.feedDone {
			m.sched.Push(envelope.Silence())
		}
		m.sched.Tick(time.Time(msg))
		if m.flash != "" && time.Time(msg).Sub(m.flashTime) > flashTTL {
			m.flash = ""
		}
		return m, frameCmd(m.settings.FPS)

	case feedMsg:
		m.handleFeed(feed.Message(msg))
		return m, waitForFeed(m.feed)

	case feedClosedMsg:
		m.feedDone = true
		m.setFlash("feed ended", true)
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.setFlash(fmt.Sprintf("save failed: %v", msg.err), true)
		} else {
			m.setFlash("saved to "+msg.path, false)
		}
		return m, nil

	case pickerDoneMsg:
		m.mode = modeVisual
		m.prompt.Reset()
		m.prompt.Blur()
		if msg.key != "" {
			m.selectStyle(msg.key)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.mode == modePicker {
			m.picker.SetWidth(msg.Width)
			m.picker.SetHeight(msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}

	switch m.mode {
	case modePicker:
		return m.updatePicker(msg)
	case modePrompt:
		return m.updatePrompt(msg)
	}
	return m, nil
}

func (m *Model) handleFeed(msg feed.Message) {
	if msg.Kind == feed.KindMedia {
		info, err := feed.ParseMediaInfo(msg.Payload)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "handleFeed",
				"error":    err,
			}).Debug("Ignored media message")
			return
		}
		visible := m.media.Visible()
		m.media = info
		if visible != info.Visible() {
			m.layout()
		}
		return
	}
	if err := m.sched.PushPayload(msg.Payload); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "handleFeed",
			"error":    err,
		}).Debug("Ignored snapshot")
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}

	st := m.sched.State()
	switch msg.String() {
	case "v", "tab":
		m.settings.Style = m.sched.Registry().Next()
	case "shift+tab":
		m.settings.Style = m.sched.Registry().Prev()
	case "s":
		m.mode = modePicker
		m.picker = newPickerList(m.sched.Registry().Keys(), m.sched.Registry().Active(), m.width, m.height)
	case ":":
		m.mode = modePrompt
		m.prompt.Reset()
		m.prompt.Focus()
		return m, textinput.Blink
	case "+", "=":
		st.Config.Sensitivity = stepFloat(st.Config.Sensitivity, sensStep, minSens, maxSens)
	case "-", "_":
		st.Config.Sensitivity = stepFloat(st.Config.Sensitivity, -sensStep, minSens, maxSens)
	case "]":
		st.Config.BassStart = min(st.Config.BassStart+1, envelope.NumBands-1)
	case "[":
		st.Config.BassStart = max(st.Config.BassStart-1, 0)
	case "}":
		st.Config.BassLength = min(st.Config.BassLength+1, envelope.NumBands)
	case "{":
		st.Config.BassLength = max(st.Config.BassLength-1, 1)
	case ">", ".":
		st.Config.BassSensitivity = stepFloat(st.Config.BassSensitivity, sensStep, minSens, maxBassSens)
	case "<", ",":
		st.Config.BassSensitivity = stepFloat(st.Config.BassSensitivity, -sensStep, minSens, maxBassSens)
	case "o":
		m.settings.MediaPosition = m.settings.MediaPosition.Next()
		m.layout()
	case "x":
		st.Particles.Enabled = !st.Particles.Enabled
	case "ctrl+e":
		if m.console != nil {
			m.showLog = !m.showLog
			m.layout()
		}
	case "ctrl+s":
		return m, m.saveCmd()
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.sched.Close()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m *Model) selectStyle(key string) {
	if err := m.sched.Registry().Select(key); err != nil {
		m.setFlash(fmt.Sprintf("unknown style %q", key), true)
		return
	}
	m.settings.Style = key
}

func (m Model) saveCmd() tea.Cmd {
	if m.settingsPath == "" {
		return nil
	}
	snapshot := *m.settings
	snapshot.CaptureFrom(m.sched.State())
	if active := m.sched.Registry().Active(); active != "" {
		snapshot.Style = active
	}
	path := m.settingsPath
	return func() tea.Msg {
		return settingsSavedMsg{path: path, err: config.Save(path, &snapshot)}
	}
}

func (m *Model) setFlash(text string, warn bool) {
	m.flash = text
	m.flashWarn = warn
	m.flashTime = time.Now()
}

// layout resizes the drawing surface to the rows left after the overlay,
// console and status line.
func (m *Model) layout() {
	m.sched.Resize(m.width, m.visualHeight())
}

func (m Model) visualHeight() int {
	h := m.height - 1 // status line
	if m.media.Visible() {
		h--
	}
	if m.showLog {
		h -= consoleHeight
	}
	return max(h, 0)
}

func stepFloat(v, step, lo, hi float64) float64 {
	v = math.Round((v+step)*10) / 10
	return math.Min(math.Max(v, lo), hi)
}
