package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type styleItem struct {
	key    string
	active bool
}

func (i styleItem) Title() string { return i.key }
func (i styleItem) Description() string {
	if i.active {
		return "active"
	}
	return ""
}
func (i styleItem) FilterValue() string { return i.key }

// pickerDoneMsg ends picker or prompt mode. An empty key means cancelled.
type pickerDoneMsg struct {
	key string
}

func newPickerList(keys []string, active string, width, height int) list.Model {
	items := make([]list.Item, 0, len(keys))
	selected := 0
	for i, k := range keys {
		items = append(items, styleItem{key: k, active: k == active})
		if k == active {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	l := list.New(items, delegate, width, height)
	l.Title = "vizwall styles"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle
	l.Select(selected)
	return l
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "style key"
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.picker.FilterState() != list.Filtering {
		switch key.String() {
		case "enter":
			if item, ok := m.picker.SelectedItem().(styleItem); ok {
				return m, pick(item.key)
			}
		case "q", "esc":
			return m, pick("")
		case "ctrl+c":
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, pick(strings.TrimSpace(m.prompt.Value()))
		case "esc":
			return m, pick("")
		case "ctrl+c":
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func pick(key string) tea.Cmd {
	return func() tea.Msg { return pickerDoneMsg{key: key} }
}
