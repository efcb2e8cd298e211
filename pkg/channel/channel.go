// Package channel provides the pull-based sources of command text consumed by
// the idle tick: a live network stream, a replayed script file, or nothing.
//
// Poll never blocks. An empty string with a nil error means "no command this
// tick". Terminal transport conditions degrade the channel to KindNone instead
// of surfacing an error; only an explicit quit is reported, as ErrQuit.
package channel

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/leterax/go-viewsync/internal/log"
	"github.com/leterax/go-viewsync/pkg/command"
)

// ErrQuit is returned by Poll when the peer sent the quit token. The channel
// has already been closed when it is returned.
var ErrQuit = command.ErrQuit

// QuitToken is the protocol-level termination message on a live channel
const QuitToken = "quit"

// Kind identifies the active backend of a channel
type Kind uint8

const (
	KindNone Kind = iota
	KindLive
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindScript:
		return "script"
	default:
		return "none"
	}
}

// Channel is a non-blocking source of command lines
type Channel interface {
	// Poll returns the next command text, or "" when nothing is available
	Poll() (string, error)
	// Kind reports the active backend; it becomes KindNone once the source is exhausted
	Kind() Kind
	// Close releases the backing resource. Calling it more than once is safe.
	Close() error
}

// Defaults for Config
const (
	DefaultController  = "nil-command"
	DefaultPort        = 6666
	DefaultDialTimeout = 10 * time.Second
)

// Config selects and parameterizes the backend opened by Open
type Config struct {
	// Network connects to Controller:Port. A ws:// or wss:// controller selects
	// the WebSocket transport and Port is ignored.
	Network     bool
	Controller  string
	Port        int
	DialTimeout time.Duration

	// Script replays commands from this file
	Script string

	Logger *slog.Logger
}

// ErrConflictingSources is returned when both network mode and a script are requested
var ErrConflictingSources = errors.New("channel: network mode and script replay are mutually exclusive")

// Open creates the channel described by cfg. It is called once at startup.
func Open(cfg Config) (Channel, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}

	switch {
	case cfg.Network && cfg.Script != "":
		return nil, ErrConflictingSources
	case cfg.Script != "":
		return OpenScript(cfg.Script, logger)
	case cfg.Network:
		timeout := cfg.DialTimeout
		if timeout <= 0 {
			timeout = DefaultDialTimeout
		}
		if isWebSocketURL(cfg.Controller) {
			return DialWebSocket(cfg.Controller, timeout, logger)
		}
		port := cfg.Port
		if port == 0 {
			port = DefaultPort
		}
		return DialTCP(net.JoinHostPort(cfg.Controller, strconv.Itoa(port)), timeout, logger)
	default:
		logger.Info("taking commands from the keyboard and mouse")
		return None(), nil
	}
}

func isWebSocketURL(s string) bool {
	return strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}

type noneChannel struct{}

// None returns the inert channel: every poll is empty
func None() Channel {
	return noneChannel{}
}

func (noneChannel) Poll() (string, error) { return "", nil }
func (noneChannel) Kind() Kind            { return KindNone }
func (noneChannel) Close() error          { return nil }

func wrapClose(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("close %s: %w", what, err)
}
