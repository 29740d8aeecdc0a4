package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRingKeepsNewest(t *testing.T) {
	r := newLineRing(3)
	assert.Nil(t, r.last(5))

	for _, l := range []string{"a", "b", "c", "d"} {
		r.push(l)
	}
	assert.Equal(t, []string{"b", "c", "d"}, r.last(5))
	assert.Equal(t, []string{"d"}, r.last(1))

	r.clear()
	assert.Nil(t, r.last(3))
}

func TestConsoleFiltersByLevel(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	console := NewConsole(10, logrus.WarnLevel)
	logger.AddHook(console)

	logger.Info("quiet")
	logger.WithFields(logrus.Fields{"function": "Tick", "frame": 3}).Warn("Dropped frame")
	logger.Error("loud")

	lines := console.Lines(10)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN Dropped frame frame=3")
	assert.NotContains(t, lines[0], "function")
	assert.Contains(t, lines[1], "ERRO loud")
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.log")
	console, closer, err := Setup(Options{Path: path, Level: "debug", ConsoleLines: 4})
	require.NoError(t, err)
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	})

	logrus.WithField("function", "test").Info("hello file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.NotEmpty(t, console.Lines(4))
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}
