package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modePicker:
		return m.picker.View()
	case modePrompt:
		s := "\n"
		s += "  " + headerStyle.Render("vizwall") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Style:") + "\n"
		s += "  " + m.prompt.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter select  esc back  "+strings.Join(m.sched.Registry().Keys(), " ")) + "\n"
		return s
	}

	var b strings.Builder
	top := m.settings.MediaPosition.Top()
	if m.media.Visible() && top {
		b.WriteString(m.overlayLine())
		b.WriteByte('\n')
	}
	if frame := m.sched.View(); frame != "" {
		b.WriteString(frame)
		b.WriteByte('\n')
	}
	if m.media.Visible() && !top {
		b.WriteString(m.overlayLine())
		b.WriteByte('\n')
	}
	if m.showLog {
		b.WriteString(m.consoleView())
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) overlayLine() string {
	text := titleStyle.Render("♪ " + m.media.Title)
	if m.media.Artist != "" {
		text += artistStyle.Render("  " + m.media.Artist)
	}
	if label := m.media.CoverLabel(); label != "" {
		text += coverStyle.Render("  [" + label + "]")
	}

	pos := lipgloss.Left
	if !m.settings.MediaPosition.Left() {
		pos = lipgloss.Right
	}
	if m.width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(m.width, pos, text)
}

func (m Model) consoleView() string {
	var lines []string
	if m.console != nil {
		lines = m.console.Lines(consoleHeight)
	}
	var b strings.Builder
	for i := range consoleHeight {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if m.width > 0 && lipgloss.Width(line) > m.width {
			line = string([]rune(line)[:max(m.width-1, 0)]) + "…"
		}
		b.WriteString(consoleStyle.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) statusLine() string {
	st := m.sched.State()
	lo, hi := st.Config.BassHz()

	style := m.sched.Registry().Active()
	if style == "" {
		style = "none"
	}
	left := styleNameStyle.Render(style) + statusStyle.Render(
		"  "+renderSensitivity(st.Config.Sensitivity)+
			"  "+renderBassRange(lo, hi, st.Config.BassSensitivity)+
			" "+renderLevelBar(st.BassLevel(), 8)+
			"  "+renderParticles(st.Particles.Enabled))

	var right string
	switch {
	case m.flash != "" && m.flashWarn:
		right = warnStyle.Render(m.flash)
	case m.flash != "":
		right = statusStyle.Render(m.flash)
	case m.sched.Dropped() > 0:
		right = warnStyle.Render("dropped " + strconv.FormatUint(m.sched.Dropped(), 10))
	case lipgloss.Width(left)+len(helpText())+2 <= m.width:
		right = helpStyle.Render(helpText())
	default:
		right = helpStyle.Render(shortHelpText)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
