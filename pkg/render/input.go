package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leterax/go-viewsync/pkg/command"
)

// specialKeys maps cursor keys onto the interpreter's special keys
var specialKeys = map[glfw.Key]command.Special{
	glfw.KeyUp:    command.SpecialUp,
	glfw.KeyDown:  command.SpecialDown,
	glfw.KeyLeft:  command.SpecialLeft,
	glfw.KeyRight: command.SpecialRight,
}

// charCallback receives printable characters; keymaps bind characters, not
// physical keys, so "+" and "?" work on any layout.
func (r *Renderer) charCallback(_ *glfw.Window, char rune) {
	r.handle(r.session.HandleKey(string(char)))
}

func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if key == glfw.KeyEscape && action == glfw.Press {
		r.handle(r.session.HandleKey(command.Escape))
		return
	}
	if special, ok := specialKeys[key]; ok {
		r.handle(r.session.HandleSpecial(special))
	}
}

func (r *Renderer) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		x, y := w.GetCursorPos()
		r.session.Click(x, y)
		r.dragging = true
	case glfw.Release:
		r.dragging = false
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, x, y float64) {
	if r.dragging {
		r.handle(r.session.Drag(x, y))
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.perspective.Resize(width, height)
	r.dirty = true
}

func (r *Renderer) refreshCallback(_ *glfw.Window) {
	r.dirty = true
}
