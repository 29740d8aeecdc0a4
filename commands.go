package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/olivier-w/vizwall/internal/envelope"
	"github.com/olivier-w/vizwall/internal/feed"
	"github.com/olivier-w/vizwall/internal/scheduler"
	"github.com/olivier-w/vizwall/internal/visualizer"
)

func newStylesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "list renderer styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadSettings(cmd, opts)
			out := cmd.OutOrStdout()
			for _, key := range visualizer.NewDefaultRegistry().Keys() {
				marker := " "
				if key == settings.Style {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, key)
			}
			return nil
		},
	}
}

func newHzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hz START LEN",
		Short: "print the frequency span of a bass band range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "start %q", args[0])
			}
			length, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "length %q", args[1])
			}
			lo, hi := envelope.BandConfig{BassStart: start, BassLength: length}.BassHz()
			fmt.Fprintf(cmd.OutOrStdout(), "%d Hz - %d Hz\n", lo, hi)
			return nil
		},
	}
}

type renderOptions struct {
	frames int
	width  int
	height int
	color  bool
	seed   int64
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "run the pipeline headless and print the last frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, ro)
		},
	}
	cmd.Flags().IntVar(&ro.frames, "frames", 120, "frames to draw")
	cmd.Flags().IntVar(&ro.width, "width", 80, "surface width")
	cmd.Flags().IntVar(&ro.height, "height", 24, "surface height")
	cmd.Flags().BoolVar(&ro.color, "color", false, "print ANSI colours")
	cmd.Flags().Int64Var(&ro.seed, "seed", 1, "demo feed seed")
	return cmd
}

func runRender(cmd *cobra.Command, opts *options, ro *renderOptions) error {
	if ro.frames <= 0 {
		return errors.Errorf("frames must be positive, got %d", ro.frames)
	}
	settings := loadSettings(cmd, opts)
	sched := buildScheduler(settings, ro.width, ro.height)
	defer sched.Close()

	step := time.Second / time.Duration(settings.FPS)
	start := time.Unix(0, 0)

	// headless runs default to the synthetic feed
	feedName := opts.feed
	if !cmd.Flags().Changed("feed") {
		feedName = feed.DemoFeed
	}

	if feedName == feed.DemoFeed {
		gen := feed.NewDemoGenerator(ro.seed, step)
		for i := range ro.frames {
			sched.Push(gen.Next())
			sched.Tick(start.Add(time.Duration(i) * step))
		}
	} else {
		if err := renderFromFeed(contextOrBackground(cmd.Context()), sched, feedName, ro.frames, start, step); err != nil {
			return err
		}
	}

	frame := sched.Plain()
	if ro.color {
		frame = sched.View()
	}
	fmt.Fprintln(cmd.OutOrStdout(), frame)
	return nil
}

// renderFromFeed draws one frame per band message. When the feed ends early
// the remaining frames are drawn with silence so the meters fall to rest.
func renderFromFeed(ctx context.Context, sched *scheduler.Scheduler, feedName string, frames int, start time.Time, step time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := feed.Open(ctx, feedName, feed.DemoConfig{})
	if err != nil {
		return err
	}
	defer src.Close()

	open := true
	for i := 0; i < frames; i++ {
		pushed := false
		for open && !pushed {
			msg, ok := <-src.C
			if !ok {
				open = false
				break
			}
			if msg.Kind != feed.KindBands {
				continue
			}
			// malformed lines are skipped like in the UI
			pushed = sched.PushPayload(msg.Payload) == nil
		}
		if !open {
			sched.Push(envelope.Silence())
		}
		sched.Tick(start.Add(time.Duration(i) * step))
	}
	return nil
}

type demoOptions struct {
	interval time.Duration
	seed     int64
	count    int
}

func newDemoCmd() *cobra.Command {
	do := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "write synthetic band snapshots to stdout, one JSON object per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt)
			defer stop()

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			for msg := range feed.Demo(ctx, feed.DemoConfig{Interval: do.interval, Seed: do.seed, Count: do.count}) {
				if _, err := w.Write(append(msg.Payload, '\n')); err != nil {
					return errors.Wrap(err, "write snapshot")
				}
				if err := w.Flush(); err != nil {
					return errors.Wrap(err, "flush snapshot")
				}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&do.interval, "interval", feed.DefaultDemoInterval, "time between snapshots")
	cmd.Flags().Int64Var(&do.seed, "seed", 1, "generator seed")
	cmd.Flags().IntVar(&do.count, "count", 0, "stop after this many snapshots (0 runs until interrupted)")
	return cmd
}
