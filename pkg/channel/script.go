package channel

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// scriptChannel replays a command file one line per poll
type scriptChannel struct {
	path string
	r    *bufio.Reader
	c    io.Closer
	log  *slog.Logger

	done      bool
	closeOnce sync.Once
	closeErr  error
}

// OpenScript opens path for replay
func OpenScript(path string, logger *slog.Logger) (Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	logger.Info("reading commands from file", "path", path)
	return NewScript(f, path, logger), nil
}

// NewScript replays lines from rc. The channel owns rc and closes it at EOF.
func NewScript(rc io.ReadCloser, name string, logger *slog.Logger) Channel {
	return &scriptChannel{
		path: name,
		r:    bufio.NewReader(rc),
		c:    rc,
		log:  logger.With("channel", "script", "path", name),
	}
}

// Poll returns the next line with trailing whitespace removed. At end of file
// the script is closed and every later poll is empty.
func (s *scriptChannel) Poll() (string, error) {
	if s.done {
		return "", nil
	}

	line, err := s.r.ReadString('\n')
	if line != "" {
		return strings.TrimRight(line, " \t\r\n"), nil
	}

	s.done = true
	if err != io.EOF {
		s.log.Warn("script read failed, no further commands", "error", err)
	} else {
		s.log.Info("script finished")
	}
	if cerr := s.Close(); cerr != nil {
		s.log.Warn("close failed", "error", cerr)
	}
	return "", nil
}

func (s *scriptChannel) Kind() Kind {
	if s.done {
		return KindNone
	}
	return KindScript
}

func (s *scriptChannel) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = wrapClose(s.path, s.c.Close())
	})
	return s.closeErr
}
