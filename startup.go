package main

import (
	"context"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/olivier-w/vizwall/internal/config"
	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/feed"
	"github.com/olivier-w/vizwall/internal/scheduler"
	"github.com/olivier-w/vizwall/internal/ui"
	"github.com/olivier-w/vizwall/internal/visualizer"
)

// loadSettings reads the settings file and applies the flags the user set
// explicitly. A broken settings file is logged and replaced by defaults.
func loadSettings(cmd *cobra.Command, opts *options) *config.Settings {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "loadSettings",
			"path":     opts.configPath,
			"error":    err,
		}).Warn("Using default settings")
	}

	flags := cmd.Flags()
	if opts.style != "" {
		settings.Style = opts.style
	}
	if flags.Changed("sensitivity") {
		settings.Sensitivity = opts.sensitivity
	}
	if flags.Changed("fps") {
		settings.FPS = opts.fps
	}
	settings.Sanitize()
	return settings
}

// buildScheduler wires the registry and display state for settings. A style
// key that does not resolve falls back to the default style.
func buildScheduler(settings *config.Settings, width, height int) *scheduler.Scheduler {
	reg := visualizer.NewDefaultRegistry()
	if err := reg.Select(settings.Style); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "buildScheduler",
			"style":    settings.Style,
			"fallback": visualizer.DefaultStyle,
		}).Warn("Configured style not found")
		settings.Style = visualizer.DefaultStyle
		_ = reg.Select(visualizer.DefaultStyle)
	}

	st := envelope.NewDisplayState(envelope.NumBands)
	settings.ApplyTo(st)
	return scheduler.New(reg, st, width, height)
}

func runTUI(cmd *cobra.Command, opts *options) error {
	settings := loadSettings(cmd, opts)
	sched := buildScheduler(settings, 0, 0)
	defer sched.Close()

	var media feed.MediaInfo
	if opts.track != "" {
		info, err := feed.ReadTrackInfo(opts.track)
		if err != nil {
			return err
		}
		media = info
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt)
	defer stop()

	src, err := feed.Open(ctx, opts.feed, feed.DemoConfig{Seed: 1})
	if err != nil {
		return err
	}
	defer src.Close()

	teaOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if src.Name == feed.StdinFeed {
		// stdin carries the feed, so keys come from the terminal
		teaOpts = append(teaOpts, tea.WithInputTTY())
	}

	model := ui.New(ui.Options{
		Scheduler:    sched,
		Settings:     settings,
		SettingsPath: opts.configPath,
		Console:      opts.console,
		Feed:         src.C,
		Media:        media,
	})
	if _, err := tea.NewProgram(model, teaOpts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run ui")
	}

	stats := sched.Stats()
	logrus.WithFields(logrus.Fields{
		"function": "runTUI",
		"drawn":    stats.Drawn,
		"dropped":  stats.Dropped,
	}).Info("Exiting")
	return nil
}

// contextOrBackground guards against commands executed without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
