package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/leterax/go-viewsync/internal/config"
	"github.com/leterax/go-viewsync/internal/log"
	"github.com/leterax/go-viewsync/internal/openglhelper"
	"github.com/leterax/go-viewsync/pkg/channel"
	"github.com/leterax/go-viewsync/pkg/command"
	"github.com/leterax/go-viewsync/pkg/frames"
	"github.com/leterax/go-viewsync/pkg/keymap"
	"github.com/leterax/go-viewsync/pkg/navigation"
	"github.com/leterax/go-viewsync/pkg/pacing"
	"github.com/leterax/go-viewsync/pkg/render"
	"github.com/leterax/go-viewsync/pkg/session"
)

func init() {
	// OpenGL and GLFW calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	pause := cfg.Pause.Seconds()

	cmd := &cobra.Command{
		Use:   "viewsync",
		Short: "Render a scene from a viewpoint shared by several displays",
		Long: `viewsync renders a demo scene from a camera that is steered by commands.
Commands come from a controller over TCP or WebSocket (--net), from a
script file (--play), or from the local keyboard and mouse.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg.Pause = time.Duration(pause * float64(time.Second))
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Controller, "controller", cfg.Controller, "controller host, or a ws:// URL")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "controller port")
	flags.BoolVar(&cfg.Windowed, "window", cfg.Windowed, "render in a window instead of full screen")
	flags.IntVarP(&cfg.Width, "width", "W", cfg.Width, "window width")
	flags.IntVarP(&cfg.Height, "height", "H", cfg.Height, "window height")
	flags.IntVarP(&cfg.X, "xpos", "X", cfg.X, "window x position (-1: window manager decides)")
	flags.IntVarP(&cfg.Y, "ypos", "Y", cfg.Y, "window y position (-1: window manager decides)")
	flags.BoolVar(&cfg.Save, "save", cfg.Save, "save every frame from the start")
	flags.Float64Var(&pause, "pause", pause, "seconds between consecutive commands")
	flags.BoolVar(&cfg.Network, "net", cfg.Network, "take commands from the controller")
	flags.BoolVar(&cfg.Network, "nil", cfg.Network, "alias for --net")
	flags.StringVar(&cfg.Script, "play", cfg.Script, "replay commands from a script file")
	flags.StringVar(&cfg.Keymap, "keymap", cfg.Keymap, "key binding file")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "display transform to use (default: this machine's hostname)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	_ = flags.MarkHidden("nil")
	cmd.MarkFlagsMutuallyExclusive("net", "play")
	cmd.MarkFlagsMutuallyExclusive("nil", "play")

	return cmd
}

func run(cfg *config.Config) error {
	log.Init(cfg.LogLevel)
	logger := log.L()

	if err := cfg.Validate(); err != nil {
		return err
	}

	keys, path, err := keymap.Load(cfg.Keymap, cfg.KeymapDirs...)
	switch {
	case errors.Is(err, keymap.ErrNotFound):
		logger.Warn("keymap not found, using built-in bindings", "keymap", cfg.Keymap)
		keys = keymap.Default()
	case err != nil:
		return err
	default:
		logger.Info("keymap loaded", "path", path)
	}

	chCfg := cfg.Channel()
	chCfg.DialTimeout = channel.DefaultDialTimeout
	chCfg.Logger = logger
	ch, err := channel.Open(chCfg)
	if err != nil {
		return fmt.Errorf("failed to open command channel: %w", err)
	}

	cam, err := navigation.NewCamera(navigation.DefaultViewpoint())
	if err != nil {
		ch.Close()
		return err
	}

	pacer := pacing.New()
	recorder := frames.NewRecorder(nil, logger)
	recorder.SetSaving(cfg.Save)

	interp := command.New(cam, command.Options{
		Keymap: keys,
		Pacer:  pacer,
		Pause:  cfg.Pause,
		Frames: recorder,
		Logger: logger,
	})
	sess := session.New(ch, pacer, interp, logger)

	renderer, err := render.NewRenderer(sess, render.Options{
		Window: openglhelper.WindowConfig{
			Title:      render.DefaultTitle,
			Width:      cfg.Width,
			Height:     cfg.Height,
			X:          cfg.X,
			Y:          cfg.Y,
			Fullscreen: !cfg.Windowed,
			VSync:      true,
			HideCursor: !cfg.Windowed,
		},
		Host:   cfg.HostName(),
		Logger: logger,
	})
	if err != nil {
		sess.Close()
		return err
	}

	logger.Info("viewsync started", "channel", ch.Kind(), "pause", cfg.Pause)
	err = renderer.Run()

	// The channel goes first so the controller sees the disconnect promptly
	if cerr := sess.Close(); cerr != nil {
		logger.Warn("closing command channel", "error", cerr)
	}
	renderer.Close()
	return err
}
