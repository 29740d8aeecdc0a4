package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultConsoleLines is how many entries the in-app console remembers.
const DefaultConsoleLines = 200

// Console is a logrus hook that keeps the most recent entries as short
// one-line strings for display inside the TUI.
type Console struct {
	ring   *lineRing
	levels []logrus.Level
}

// NewConsole keeps up to size lines for entries at minLevel or more severe.
func NewConsole(size int, minLevel logrus.Level) *Console {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= minLevel {
			levels = append(levels, l)
		}
	}
	return &Console{ring: newLineRing(size), levels: levels}
}

func (c *Console) Levels() []logrus.Level {
	return c.levels
}

func (c *Console) Fire(e *logrus.Entry) error {
	c.ring.push(formatLine(e))
	return nil
}

// Lines returns up to n of the most recent lines, oldest first.
func (c *Console) Lines(n int) []string {
	return c.ring.last(n)
}

func (c *Console) Clear() {
	c.ring.clear()
}

func formatLine(e *logrus.Entry) string {
	var b strings.Builder
	b.WriteString(e.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level.String())[:4])
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k == "function" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	return b.String()
}
