package feed

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// maxLineSize bounds one feed line; media lines can carry an inline cover.
const maxLineSize = 8 << 20

var errLineTooLong = errors.New("feed line too long")

// Lines reads newline-separated JSON messages from r until EOF, a read
// error or ctx is done, then closes the returned channel. Blank lines are
// skipped, and so are lines longer than maxLineSize. Cancelling ctx stops
// delivery; a read already blocked in r returns only when r does, so
// callers owning r should close it too.
func Lines(ctx context.Context, r io.Reader) <-chan Message {
	out := make(chan Message)
	go func() {
		defer close(out)

		br := bufio.NewReaderSize(r, 64*1024)
		n, skipped := 0, 0
		var err error
		for {
			var line []byte
			line, err = readLine(br, maxLineSize)
			if errors.Is(err, errLineTooLong) {
				skipped++
				logrus.WithFields(logrus.Fields{
					"function": "Lines",
					"limit":    maxLineSize,
				}).Debug("Skipped oversized feed line")
				continue
			}
			if payload := bytes.TrimSpace(line); len(payload) > 0 {
				msg := Message{Kind: Classify(payload), Payload: payload}
				select {
				case out <- msg:
					n++
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				break
			}
		}

		entry := logrus.WithFields(logrus.Fields{
			"function": "Lines",
			"messages": n,
			"skipped":  skipped,
		})
		if err != io.EOF && ctx.Err() == nil {
			entry.WithField("error", err).Warn("Feed read failed")
			return
		}
		entry.Info("Feed ended")
	}()
	return out
}

// readLine returns the next line including its newline in a fresh slice.
// A line whose content exceeds limit is consumed up to its newline and
// reported as errLineTooLong. The last line may lack a newline; io.EOF is
// returned only once nothing is left.
func readLine(br *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	overflow := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !overflow {
			line = append(line, chunk...)
			size := len(line)
			if size > 0 && line[size-1] == '\n' {
				size--
			}
			if size > limit {
				overflow, line = true, nil
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if overflow {
			if err == nil || err == io.EOF {
				return nil, errLineTooLong
			}
			return nil, errors.Wrap(err, "read feed")
		}
		switch {
		case err == io.EOF && len(line) > 0:
			return line, nil
		case err == io.EOF:
			return nil, io.EOF
		case err != nil:
			return line, errors.Wrap(err, "read feed")
		}
		return line, nil
	}
}
