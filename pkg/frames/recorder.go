// Package frames keeps the bookkeeping for dumping rendered frames to disk:
// whether saving is on, the file name template and the running frame number.
// The pixels themselves are captured by a Saver supplied by the renderer.
package frames

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leterax/go-viewsync/internal/log"
)

// DefaultTemplate names frames frame-00001.png, frame-00002.png, ...
const DefaultTemplate = "frame-%5.5d.png"

var (
	// ErrNoSaver is returned when a frame is requested but nothing can capture it
	ErrNoSaver = errors.New("frames: no saver configured")
	// ErrBadTemplate is returned for templates that do not take exactly one integer
	ErrBadTemplate = errors.New("frames: template must contain one integer verb")
)

// Saver writes the current frame to path
type Saver interface {
	SaveFrame(path string) error
}

// SaverFunc adapts a function to Saver
type SaverFunc func(path string) error

func (f SaverFunc) SaveFrame(path string) error {
	return f(path)
}

// Recorder decides when a posted frame is written and under which name.
// It is used from the render goroutine only.
type Recorder struct {
	saver    Saver
	saving   bool
	template string
	number   int
	log      *slog.Logger
}

// NewRecorder returns a recorder with saving off and the default template
func NewRecorder(saver Saver, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = log.Discard()
	}
	return &Recorder{
		saver:    saver,
		template: DefaultTemplate,
		log:      logger,
	}
}

// SetSaver replaces the frame saver
func (r *Recorder) SetSaver(s Saver) {
	r.saver = s
}

// Saving reports whether every posted frame is written
func (r *Recorder) Saving() bool {
	return r.saving
}

// SetSaving turns continuous saving on or off
func (r *Recorder) SetSaving(on bool) {
	r.saving = on
}

// Template returns the file name template
func (r *Recorder) Template() string {
	return r.template
}

// SetTemplate changes the file name template. It must format one integer.
func (r *Recorder) SetTemplate(t string) error {
	if t == "" || strings.Contains(fmt.Sprintf(t, 0), "%!") {
		return fmt.Errorf("%w: %q", ErrBadTemplate, t)
	}
	r.template = t
	return nil
}

// Number returns the number the next saved frame will carry
func (r *Recorder) Number() int {
	return r.number
}

// SetNumber sets the frame number
func (r *Recorder) SetNumber(n int) {
	r.number = n
}

// Filename returns the name the current frame would be saved under
func (r *Recorder) Filename() string {
	return fmt.Sprintf(r.template, r.number)
}

// SaveNow writes the current frame regardless of the saving mode
func (r *Recorder) SaveNow() error {
	if r.saver == nil {
		return ErrNoSaver
	}
	name := r.Filename()
	if err := r.saver.SaveFrame(name); err != nil {
		return fmt.Errorf("save frame %s: %w", name, err)
	}
	r.log.Debug("frame saved", "file", name)
	return nil
}

// Posted is called once after every displayed frame. When saving is on the
// frame is written, except for frame zero which is never complete. The frame
// number always advances.
func (r *Recorder) Posted() error {
	var err error
	if r.saving && r.number > 0 {
		err = r.SaveNow()
	}
	r.number++
	return err
}
