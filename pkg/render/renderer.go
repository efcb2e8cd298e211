// Package render is the embedding program: it opens the window, draws a demo
// scene from the shared viewpoint and feeds local input and idle ticks to a
// session.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewsync/internal/log"
	"github.com/leterax/go-viewsync/internal/openglhelper"
	"github.com/leterax/go-viewsync/pkg/command"
	"github.com/leterax/go-viewsync/pkg/projection"
	"github.com/leterax/go-viewsync/pkg/session"
)

// Options configures a Renderer
type Options struct {
	Window openglhelper.WindowConfig
	// Host selects the display transform, see projection.HostTransform
	Host   string
	Logger *slog.Logger
}

// Renderer owns the window and runs the render loop
type Renderer struct {
	window      *openglhelper.Window
	session     *session.Session
	perspective *projection.Perspective
	host        mgl32.Mat4
	scene       *Scene

	// dirty is set by callbacks that need a redraw
	dirty bool
	quit  bool

	dragging bool

	log *slog.Logger
}

// NewRenderer opens the window, builds the scene and installs the input
// callbacks. The renderer becomes the frame saver of the session's recorder.
func NewRenderer(sess *session.Session, opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	if opts.Window.Title == "" {
		opts.Window.Title = DefaultTitle
	}

	window, err := openglhelper.NewWindow(opts.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	logger.Info("window opened", "opengl", window.Version(), "fullscreen", opts.Window.Fullscreen)

	host, known := projection.HostTransform(opts.Host)
	if !known {
		logger.Warn("unknown display host, using identity transform", "host", opts.Host)
	}

	scene, err := NewScene()
	if err != nil {
		window.Close()
		return nil, err
	}

	width, height := window.Size()
	r := &Renderer{
		window:      window,
		session:     sess,
		perspective: projection.NewPerspective(width, height),
		host:        host,
		scene:       scene,
		dirty:       true,
		log:         logger,
	}

	glfwWindow := window.GLFWWindow()
	glfwWindow.SetCharCallback(r.charCallback)
	glfwWindow.SetKeyCallback(r.keyCallback)
	glfwWindow.SetMouseButtonCallback(r.mouseButtonCallback)
	glfwWindow.SetCursorPosCallback(r.cursorPosCallback)
	glfwWindow.SetFramebufferSizeCallback(r.framebufferSizeCallback)
	glfwWindow.SetRefreshCallback(r.refreshCallback)

	sess.Interpreter().Frames().SetSaver(r)

	return r, nil
}

// Run drives the loop until the window is closed or a quit arrives. Each
// iteration processes window events, runs one session tick and draws if
// anything asked for it. A quit is not an error: Run returns nil.
func (r *Renderer) Run() error {
	for !r.quit && !r.window.ShouldClose() {
		r.window.PollEvents()
		if r.quit {
			break
		}

		redraw, err := r.session.Idle()
		if errors.Is(err, command.ErrQuit) {
			r.log.Info("quit requested")
			break
		}

		if redraw || r.dirty {
			r.draw()
			r.window.SwapBuffers()
			r.dirty = false
			if err := r.session.Interpreter().Frames().Posted(); err != nil {
				r.log.Warn("frame capture failed", "error", err)
			}
			continue
		}

		r.window.WaitEvents(waitTimeout)
	}
	return nil
}

// draw renders the scene from the current, scaled viewpoint
func (r *Renderer) draw() {
	r.window.Clear(backgroundColor)

	vp := r.session.Interpreter().Camera().Scaled()
	view := projection.View(vp, r.host)
	r.scene.Draw(view, r.perspective.Matrix())
}

// Close releases the GPU resources and the window. The session is closed by
// its owner.
func (r *Renderer) Close() {
	r.scene.Delete()
	r.window.Close()
}

// handle applies the result of a local input event
func (r *Renderer) handle(redraw bool, err error) {
	if errors.Is(err, command.ErrQuit) {
		r.quit = true
		r.window.SetShouldClose(true)
		return
	}
	if redraw {
		r.dirty = true
	}
}
