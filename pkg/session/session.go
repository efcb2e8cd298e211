// Package session runs the per-tick command pump of one rendering process:
// consult the pacer, poll the channel once, apply what arrived.
package session

import (
	"errors"
	"log/slog"

	"github.com/leterax/go-viewsync/internal/log"
	"github.com/leterax/go-viewsync/pkg/channel"
	"github.com/leterax/go-viewsync/pkg/command"
)

// Pacer reports whether the previous command is still playing out
type Pacer interface {
	Busy() bool
}

// Session ties a channel, a pacer and an interpreter together. It is driven
// from the render goroutine only.
type Session struct {
	ch     channel.Channel
	pacer  Pacer
	interp *command.Interpreter
	idle   func()
	log    *slog.Logger
}

// New creates a session. The session owns ch and closes it on Close.
func New(ch channel.Channel, pacer Pacer, interp *command.Interpreter, logger *slog.Logger) *Session {
	if ch == nil {
		ch = channel.None()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Session{
		ch:     ch,
		pacer:  pacer,
		interp: interp,
		log:    logger,
	}
}

// Interpreter returns the command interpreter
func (s *Session) Interpreter() *command.Interpreter {
	return s.interp
}

// Channel returns the command source
func (s *Session) Channel() channel.Channel {
	return s.ch
}

// SetIdleFunc registers a function run at the start of every tick, before the
// pacing check. Programs use it to advance their own animations.
func (s *Session) SetIdleFunc(fn func()) {
	s.idle = fn
}

// Idle runs one tick. While the pacer is busy the channel is not polled but a
// redraw is still requested. It returns command.ErrQuit when the process
// should exit; any other failure is logged and the tick is dropped.
func (s *Session) Idle() (bool, error) {
	if s.idle != nil {
		s.idle()
	}

	if s.pacer != nil && s.pacer.Busy() {
		return true, nil
	}

	line, err := s.ch.Poll()
	if err != nil {
		if errors.Is(err, command.ErrQuit) {
			return false, err
		}
		s.log.Warn("poll failed", "error", err)
		return false, nil
	}

	return s.apply(s.interp.Apply(line))
}

// HandleKey forwards a local key press to the interpreter
func (s *Session) HandleKey(key string) (bool, error) {
	return s.apply(s.interp.HandleKey(key))
}

// HandleSpecial forwards a cursor key to the interpreter
func (s *Session) HandleSpecial(k command.Special) (bool, error) {
	return s.apply(s.interp.HandleSpecial(k))
}

// Click records a pointer press
func (s *Session) Click(x, y float64) {
	s.interp.Click(x, y)
}

// Drag forwards pointer motion with a button held
func (s *Session) Drag(x, y float64) (bool, error) {
	return s.apply(s.interp.Drag(x, y))
}

// apply passes quit through and logs everything else
func (s *Session) apply(redraw bool, err error) (bool, error) {
	if err == nil {
		return redraw, nil
	}
	if errors.Is(err, command.ErrQuit) {
		return false, err
	}
	s.log.Warn("command failed", "error", err)
	return false, nil
}

// Close releases the channel
func (s *Session) Close() error {
	return s.ch.Close()
}
