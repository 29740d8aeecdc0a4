package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olivier-w/vizwall/internal/config"
	"github.com/olivier-w/vizwall/internal/logging"
)

// options holds the flags shared by every command.
type options struct {
	feed        string
	configPath  string
	style       string
	sensitivity float64
	track       string
	logFile     string
	logLevel    string
	fps         int

	// filled in by PersistentPreRunE
	console  *logging.Console
	closeLog func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "vizwall",
		Short:         "audio-reactive terminal visualizer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			console, closer, err := logging.Setup(logging.Options{Path: opts.logFile, Level: opts.logLevel})
			if err != nil {
				return err
			}
			opts.console = console
			opts.closeLog = closer.Close
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeLog == nil {
				return nil
			}
			return opts.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.feed, "feed", "-", `band feed: "-" for stdin, "demo", or a file/FIFO path`)
	pf.StringVar(&opts.configPath, "config", config.DefaultPath(), "settings file (yaml)")
	pf.StringVar(&opts.style, "style", "", "renderer style key (overrides settings)")
	pf.Float64Var(&opts.sensitivity, "sensitivity", config.Default().Sensitivity, "band sensitivity multiplier (overrides settings)")
	pf.IntVar(&opts.fps, "fps", config.DefaultFPS, "frames per second (overrides settings)")
	pf.StringVar(&opts.logFile, "log-file", logging.DefaultPath(), "log file; empty discards logs")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level")
	rootCmd.Flags().StringVar(&opts.track, "track", "", "audio file whose tags seed the track overlay")

	rootCmd.AddCommand(
		newStylesCmd(opts),
		newHzCmd(),
		newRenderCmd(opts),
		newDemoCmd(),
	)
	return rootCmd
}
