package command

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/leterax/go-viewsync/internal/log"
	"github.com/leterax/go-viewsync/pkg/frames"
	"github.com/leterax/go-viewsync/pkg/keymap"
	"github.com/leterax/go-viewsync/pkg/navigation"
)

// KeyHandler is the embedding program's keyboard extension. It returns true
// when it has fully handled key.
type KeyHandler interface {
	HandleKey(key string) bool
}

// KeyHandlerFunc adapts a function to KeyHandler
type KeyHandlerFunc func(key string) bool

func (f KeyHandlerFunc) HandleKey(key string) bool {
	return f(key)
}

// CommandHandler is the embedding program's command extension. It is offered
// every non-empty line before the built-in vocabulary and returns true when it
// has fully handled it.
type CommandHandler interface {
	HandleCommand(line string) bool
}

// CommandHandlerFunc adapts a function to CommandHandler
type CommandHandlerFunc func(line string) bool

func (f CommandHandlerFunc) HandleCommand(line string) bool {
	return f(line)
}

// Pacer is armed after every applied command
type Pacer interface {
	Arm(d time.Duration)
}

// Options configures an Interpreter. Zero fields get working defaults.
type Options struct {
	Keymap   *keymap.Table
	Pacer    Pacer
	Pause    time.Duration
	Frames   *frames.Recorder
	Keys     KeyHandler
	Commands CommandHandler

	// Out receives the help screen and printed viewpoints
	Out    io.Writer
	Logger *slog.Logger
}

// Interpreter applies command lines and local input to one camera.
// Like the camera it is driven from a single goroutine.
type Interpreter struct {
	cam      *navigation.Camera
	keys     *keymap.Table
	defaults *keymap.Table
	pacer    Pacer
	pause    time.Duration
	frames   *frames.Recorder
	keyExt   KeyHandler
	cmdExt   CommandHandler
	out      io.Writer
	log      *slog.Logger

	seed int64
	rng  *rand.Rand

	// last pointer position, see Click and Drag
	lastX, lastY float64
}

// New creates an interpreter driving cam
func New(cam *navigation.Camera, opts Options) *Interpreter {
	in := &Interpreter{
		cam:      cam,
		keys:     opts.Keymap,
		defaults: keymap.Default(),
		pacer:    opts.Pacer,
		pause:    opts.Pause,
		frames:   opts.Frames,
		keyExt:   opts.Keys,
		cmdExt:   opts.Commands,
		out:      opts.Out,
		log:      opts.Logger,
		rng:      rand.New(rand.NewSource(0)),
	}
	if in.keys == nil {
		in.keys = in.defaults
	}
	if in.frames == nil {
		in.frames = frames.NewRecorder(nil, opts.Logger)
	}
	if in.out == nil {
		in.out = os.Stdout
	}
	if in.log == nil {
		in.log = log.Discard()
	}
	return in
}

// Camera returns the camera driven by the interpreter
func (in *Interpreter) Camera() *navigation.Camera {
	return in.cam
}

// Keymap returns the active key bindings
func (in *Interpreter) Keymap() *keymap.Table {
	return in.keys
}

// Frames returns the frame recorder
func (in *Interpreter) Frames() *frames.Recorder {
	return in.frames
}

// SetKeyHandler registers the keyboard extension; nil removes it
func (in *Interpreter) SetKeyHandler(h KeyHandler) {
	in.keyExt = h
}

// SetCommandHandler registers the command extension; nil removes it
func (in *Interpreter) SetCommandHandler(h CommandHandler) {
	in.cmdExt = h
}

// Pause returns the delay armed after each applied command
func (in *Interpreter) Pause() time.Duration {
	return in.pause
}

// SetPause sets the delay armed after each applied command
func (in *Interpreter) SetPause(d time.Duration) {
	in.pause = d
}

// Seed returns the last seed received
func (in *Interpreter) Seed() int64 {
	return in.seed
}

// Rand returns the generator reseeded by the seed command. Programs use it for
// effects that must stay identical on every cooperating process.
func (in *Interpreter) Rand() *rand.Rand {
	return in.rng
}

// Apply interprets one received line. It reports whether the view needs to be
// redrawn. The only errors are ErrQuit and failed navigation math; dropped
// lines are not errors.
func (in *Interpreter) Apply(line string) (bool, error) {
	cmd := Parse(line)

	switch cmd.Kind {
	case Help:
		in.WriteHelp(in.out)
		return false, nil
	case Quit:
		in.log.Info("quit command received")
		return false, ErrQuit
	}

	if in.cmdExt != nil && line != "" && in.cmdExt.HandleCommand(line) {
		in.arm()
		return true, nil
	}

	if cmd.Kind == Empty {
		return false, nil
	}

	if in.keyExt != nil {
		if key, ok := in.keys.Key(cmd.Name); ok && in.keyExt.HandleKey(key) {
			in.arm()
			return true, nil
		}
	}

	return in.execute(cmd, true)
}

// execute runs a built-in command. pace is false for local input, which is
// never throttled.
func (in *Interpreter) execute(cmd Command, pace bool) (bool, error) {
	var err error

	switch cmd.Kind {
	case Unrecognized:
		in.log.Debug("dropping unknown command", "command", cmd.Name)
		return false, nil
	case Malformed:
		in.log.Debug("dropping malformed command", "command", cmd.Name, "error", cmd.Err)
		return false, nil
	case Empty:
		return false, nil
	case Help:
		in.WriteHelp(in.out)
		return false, nil
	case Quit:
		return false, ErrQuit

	case Viewpoint:
		err = in.cam.SetViewpoint(cmd.Viewpoint)

	case MoveForward:
		err = in.cam.MoveForward(in.step(cmd))
	case MoveBackward:
		err = in.cam.MoveForward(-in.step(cmd))
	case MoveLeft:
		err = in.cam.MoveLeft(in.step(cmd))
	case MoveRight:
		err = in.cam.MoveLeft(-in.step(cmd))
	case MoveUp:
		in.cam.MoveUp(in.step(cmd))
	case MoveDown:
		in.cam.MoveUp(-in.step(cmd))

	case TurnLeft:
		err = in.cam.RotateHorizontally(in.angle(cmd))
	case TurnRight:
		err = in.cam.RotateHorizontally(-in.angle(cmd))
	case TurnUp:
		err = in.cam.RotateVertically(in.angle(cmd))
	case TurnDown:
		err = in.cam.RotateVertically(-in.angle(cmd))

	case ResetViewpoint:
		in.cam.ResetViewpoint()
	case FlyMode:
		in.cam.FlyMode()
	case WalkMode:
		in.cam.WalkMode()
	case ViewMode:
		in.cam.ViewMode()

	case IncreaseStep:
		in.cam.IncreaseStep()
	case DecreaseStep:
		in.cam.DecreaseStep()
	case IncreaseAngle:
		in.cam.IncreaseAngle()
	case DecreaseAngle:
		in.cam.DecreaseAngle()
	case PrintViewpoint:
		in.cam.PrintViewpoint(in.out, "")

	case SaveNow:
		if err := in.frames.SaveNow(); err != nil {
			in.log.Warn("frame not saved", "error", err)
		}
	case SaveOn:
		in.frames.SetSaving(true)
	case SaveOff:
		in.frames.SetSaving(false)
	case SaveFrame:
		in.frames.SetNumber(cmd.Frame)
	case SaveTemplate:
		if err := in.frames.SetTemplate(cmd.Template); err != nil {
			in.log.Debug("dropping save_template", "error", err)
			return false, nil
		}
	case Pause:
		in.pause = cmd.Pause
	case Seed:
		in.seed = cmd.Seed
		in.rng.Seed(cmd.Seed)

	default:
		return false, fmt.Errorf("command: unhandled kind %v", cmd.Kind)
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", cmd.Name, err)
	}

	if pace {
		in.arm()
	}
	return true, nil
}

func (in *Interpreter) arm() {
	if in.pause > 0 && in.pacer != nil {
		in.pacer.Arm(in.pause)
	}
}

func (in *Interpreter) step(cmd Command) float64 {
	if cmd.HasMagnitude {
		return cmd.Magnitude
	}
	return in.cam.Step()
}

func (in *Interpreter) angle(cmd Command) float64 {
	if cmd.HasMagnitude {
		return cmd.Magnitude
	}
	return in.cam.Angle()
}
