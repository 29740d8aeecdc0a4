package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/vizwall/internal/feed"
)

type frameMsg time.Time
type feedMsg feed.Message
type feedClosedMsg struct{}
type settingsSavedMsg struct {
	path string
	err  error
}

func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForFeed delivers the next feed message. A nil channel never delivers.
func waitForFeed(ch <-chan feed.Message) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return feedMsg(msg)
	}
}
