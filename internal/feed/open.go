package feed

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// StdinFeed reads the feed from standard input.
	StdinFeed = "-"
	// DemoFeed runs the built-in generator.
	DemoFeed = "demo"
)

// Source is an open feed.
type Source struct {
	Name string
	C    <-chan Message

	cancel context.CancelFunc
	closer io.Closer
}

// Open starts the named feed: "-" for stdin, "demo" for the
// synthetic generator, anything else is a file or FIFO path.
func Open(ctx context.Context, name string, demo DemoConfig) (*Source, error) {
	ctx, cancel := context.WithCancel(ctx)
	src := &Source{Name: name, cancel: cancel}

	switch name {
	case DemoFeed:
		src.C = Demo(ctx, demo)
	case StdinFeed, "":
		src.Name = StdinFeed
		src.C = Lines(ctx, os.Stdin)
	default:
		f, err := os.Open(name)
		if err != nil {
			cancel()
			return nil, errors.Wrapf(err, "open feed %s", name)
		}
		src.closer = f
		// closing the file unblocks a pending read on cancel
		context.AfterFunc(ctx, func() { f.Close() })
		src.C = Lines(ctx, f)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Open",
		"feed":     src.Name,
	}).Info("Feed opened")
	return src, nil
}

// Close stops the feed. Messages already queued may still be received until
// the channel closes.
func (s *Source) Close() error {
	s.cancel()
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrap(err, "close feed")
	}
	return nil
}
