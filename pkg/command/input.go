package command

// Escape is the key string delivered for the escape key
const Escape = "\x1b"

// Special identifies a non-character key
type Special uint8

const (
	SpecialUp Special = iota + 1
	SpecialDown
	SpecialLeft
	SpecialRight
)

// HandleKey processes one local key press. The keyboard extension sees the key
// first; otherwise the key is looked up in the active keymap and then in the
// default bindings. Local input applies immediately and never arms pacing.
func (in *Interpreter) HandleKey(key string) (bool, error) {
	if in.keyExt != nil && in.keyExt.HandleKey(key) {
		return true, nil
	}
	if key == Escape {
		return false, ErrQuit
	}

	name, ok := in.keys.Command(key)
	if !ok {
		name, ok = in.defaults.Command(key)
	}
	if !ok {
		in.log.Debug("unbound key", "key", key)
		return false, nil
	}

	cmd := Parse(name)
	if cmd.Kind == Unrecognized && in.cmdExt != nil && in.cmdExt.HandleCommand(name) {
		return true, nil
	}
	return in.execute(cmd, false)
}

// HandleSpecial processes the cursor keys: up and down move, left and right turn
func (in *Interpreter) HandleSpecial(k Special) (bool, error) {
	var cmd Command
	switch k {
	case SpecialUp:
		cmd.Kind = MoveForward
	case SpecialDown:
		cmd.Kind = MoveBackward
	case SpecialLeft:
		cmd.Kind = TurnLeft
	case SpecialRight:
		cmd.Kind = TurnRight
	default:
		return false, nil
	}
	cmd.Name = cmd.Kind.String()
	return in.execute(cmd, false)
}

// Click records the pointer position that the next Drag is measured from
func (in *Interpreter) Click(x, y float64) {
	in.lastX, in.lastY = x, y
}

// Drag moves the view by one default step per event: horizontal motion turns,
// vertical motion moves forwards (pointer up) or backwards (pointer down).
func (in *Interpreter) Drag(x, y float64) (bool, error) {
	var turn, move Kind
	switch {
	case x > in.lastX:
		turn = TurnRight
	case x < in.lastX:
		turn = TurnLeft
	}
	switch {
	case y > in.lastY:
		move = MoveBackward
	case y < in.lastY:
		move = MoveForward
	}
	in.lastX, in.lastY = x, y

	redraw := false
	for _, k := range []Kind{turn, move} {
		if k == Unrecognized {
			continue
		}
		changed, err := in.execute(Command{Kind: k, Name: k.String()}, false)
		if err != nil {
			return redraw, err
		}
		redraw = redraw || changed
	}
	return redraw, nil
}
