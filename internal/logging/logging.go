// Package logging configures logrus for a program that owns the terminal:
// entries go to a file and to an in-memory console the UI can display.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPath is where the log file goes when no path is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "vizwall.log")
}

// Options controls Setup.
type Options struct {
	// Path of the log file. Empty discards file output.
	Path  string
	Level string
	// ConsoleLines sizes the in-app console; 0 uses DefaultConsoleLines.
	ConsoleLines int
}

// Setup points the standard logrus logger at the configured file and attaches
// a Console hook. The returned closer flushes and closes the file.
func Setup(opts Options) (*Console, io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "log level %q", opts.Level)
		}
		level = parsed
	}

	var out io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		out, closer = f, f
	}

	lines := opts.ConsoleLines
	if lines <= 0 {
		lines = DefaultConsoleLines
	}
	console := NewConsole(lines, level)

	logrus.SetOutput(out)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	logrus.AddHook(console)

	logrus.WithFields(logrus.Fields{
		"function": "Setup",
		"path":     opts.Path,
		"level":    level.String(),
	}).Debug("Logging configured")

	return console, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
