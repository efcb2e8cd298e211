// Package command parses the line-oriented command protocol and applies it to
// a navigation camera.
//
// Every line parses to exactly one Command. Lines that do not belong to the
// vocabulary become Unrecognized, lines with bad arguments become Malformed;
// both are dropped by the interpreter without further effect.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/go-viewsync/pkg/navigation"
)

// ErrQuit requests orderly termination of the process
var ErrQuit = errors.New("quit requested")

// Kind is the closed set of command variants
type Kind uint8

const (
	Unrecognized Kind = iota
	Empty
	Malformed

	Help
	Quit

	Viewpoint

	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown

	TurnLeft
	TurnRight
	TurnUp
	TurnDown

	ResetViewpoint
	FlyMode
	WalkMode
	ViewMode

	IncreaseStep
	DecreaseStep
	IncreaseAngle
	DecreaseAngle
	PrintViewpoint

	SaveNow
	SaveOn
	SaveOff
	SaveFrame
	SaveTemplate
	Pause
	Seed
)

// names maps the first token of a line to its variant. The save command is
// resolved from its argument.
var names = map[string]Kind{
	"help":            Help,
	"quit":            Quit,
	"viewpoint":       Viewpoint,
	"move_forward":    MoveForward,
	"move_backward":   MoveBackward,
	"move_left":       MoveLeft,
	"move_right":      MoveRight,
	"move_up":         MoveUp,
	"move_down":       MoveDown,
	"turn_left":       TurnLeft,
	"turn_right":      TurnRight,
	"turn_up":         TurnUp,
	"turn_down":       TurnDown,
	"reset_viewpoint": ResetViewpoint,
	"fly_mode":        FlyMode,
	"walk_mode":       WalkMode,
	"view_mode":       ViewMode,
	"increase_step":   IncreaseStep,
	"decrease_step":   DecreaseStep,
	"increase_angle":  IncreaseAngle,
	"decrease_angle":  DecreaseAngle,
	"print_viewpoint": PrintViewpoint,
	"save_frame":      SaveFrame,
	"save_template":   SaveTemplate,
	"pause":           Pause,
	"seed":            Seed,
}

func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case Empty:
		return "empty"
	case Malformed:
		return "malformed"
	case SaveNow:
		return "save"
	case SaveOn:
		return "save on"
	case SaveOff:
		return "save off"
	}
	for name, kind := range names {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Command is one parsed line. Only the fields of its Kind are set.
type Command struct {
	Kind Kind
	// Name is the first token as received
	Name string

	// Magnitude overrides the default step or angle when HasMagnitude is set
	Magnitude    float64
	HasMagnitude bool

	Viewpoint navigation.Viewpoint
	Frame     int
	Template  string
	Pause     time.Duration
	Seed      int64

	// Err explains why a Malformed line was rejected
	Err error
}

// Viewpoint lines carry the command name, nine numbers and one tolerated extra field
const (
	viewpointFields    = 10
	viewpointFieldsMax = 11
)

// Parse turns one line into a Command. It never fails: problems are reported
// through the Malformed and Unrecognized kinds.
func Parse(line string) Command {
	words := strings.Fields(line)
	if len(words) == 0 {
		return Command{Kind: Empty}
	}

	cmd := Command{Name: words[0]}
	args := words[1:]

	if words[0] == "save" {
		return parseSave(cmd, args)
	}

	kind, ok := names[words[0]]
	if !ok {
		cmd.Kind = Unrecognized
		return cmd
	}
	cmd.Kind = kind

	switch kind {
	case Viewpoint:
		return parseViewpoint(cmd, words)

	case MoveForward, MoveBackward, MoveLeft, MoveRight, MoveUp, MoveDown,
		TurnLeft, TurnRight, TurnUp, TurnDown:
		if len(args) > 0 {
			v, err := parseFinite(args[0])
			if err != nil {
				return malformed(cmd, err)
			}
			cmd.Magnitude = v
			cmd.HasMagnitude = true
		}

	case SaveFrame:
		if len(args) < 1 {
			return malformed(cmd, errMissingArg)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return malformed(cmd, err)
		}
		cmd.Frame = n

	case SaveTemplate:
		if len(args) < 1 {
			return malformed(cmd, errMissingArg)
		}
		cmd.Template = args[0]

	case Pause:
		if len(args) < 1 {
			return malformed(cmd, errMissingArg)
		}
		secs, err := parseFinite(args[0])
		if err != nil {
			return malformed(cmd, err)
		}
		if secs < 0 {
			return malformed(cmd, errNegativePause)
		}
		nanos := secs * float64(time.Second)
		if nanos >= maxPauseNanos {
			return malformed(cmd, errPauseTooLong)
		}
		cmd.Pause = time.Duration(nanos)

	case Seed:
		if len(args) < 1 {
			return malformed(cmd, errMissingArg)
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return malformed(cmd, err)
		}
		cmd.Seed = n
	}

	return cmd
}

var (
	errMissingArg    = errors.New("missing argument")
	errNegativePause = errors.New("negative pause")
	errFieldCount    = errors.New("wrong number of fields")
	errNonFinite     = errors.New("number is not finite")
	errPauseTooLong  = errors.New("pause too long")
)

// maxPauseNanos is the first value past the range of time.Duration
const maxPauseNanos = float64(math.MaxInt64)

// parseFinite parses a float and rejects NaN and the infinities, which
// strconv accepts but which would poison the camera state.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errNonFinite, s)
	}
	return v, nil
}

func malformed(cmd Command, err error) Command {
	cmd.Kind = Malformed
	cmd.Err = err
	return cmd
}

func parseSave(cmd Command, args []string) Command {
	if len(args) == 0 {
		cmd.Kind = SaveNow
		return cmd
	}
	switch args[0] {
	case "on":
		cmd.Kind = SaveOn
	case "off":
		cmd.Kind = SaveOff
	default:
		return malformed(cmd, fmt.Errorf("save: unknown argument %q", args[0]))
	}
	return cmd
}

// parseViewpoint accepts only the exact field counts. Two viewpoint messages
// delivered in one chunk have too many fields and are dropped whole.
func parseViewpoint(cmd Command, words []string) Command {
	if len(words) != viewpointFields && len(words) != viewpointFieldsMax {
		return malformed(cmd, fmt.Errorf("%w: %d", errFieldCount, len(words)))
	}

	var v [9]float64
	for i := range v {
		f, err := parseFinite(words[i+1])
		if err != nil {
			return malformed(cmd, err)
		}
		v[i] = f
	}

	cmd.Viewpoint = navigation.Viewpoint{
		Position: mgl64.Vec3{v[0], v[1], v[2]},
		Target:   mgl64.Vec3{v[3], v[4], v[5]},
		Up:       mgl64.Vec3{v[6], v[7], v[8]},
	}
	return cmd
}
