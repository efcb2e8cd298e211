// Package config holds the startup configuration of a viewsync process.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/leterax/go-viewsync/pkg/channel"
	"github.com/leterax/go-viewsync/pkg/keymap"
)

// Environment variables consulted by ApplyEnv
const (
	EnvController = "VIEWSYNC_CONTROLLER"
	EnvPort       = "VIEWSYNC_PORT"
	EnvKeymap     = "VIEWSYNC_KEYMAP"
)

// Config holds everything chosen at startup
type Config struct {
	// Controller is the host (or ws:// URL) distributing commands
	Controller string
	Port       int

	// Network takes commands from the controller; Script replays a file instead
	Network bool
	Script  string

	// Windowed renders into a Width x Height window instead of full screen.
	// The window is placed at X, Y only when both are non-negative.
	Windowed bool
	Width    int
	Height   int
	X, Y     int

	// Save writes every rendered frame from the start
	Save bool

	// Pause is the delay between consecutive commands
	Pause time.Duration

	// Keymap is the key binding file, looked for in each of KeymapDirs
	Keymap     string
	KeymapDirs []string

	// Host selects the per-display view transform; empty means the machine's hostname
	Host string

	LogLevel string
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Controller: channel.DefaultController,
		Port:       channel.DefaultPort,
		Width:      640,
		Height:     480,
		X:          -1,
		Y:          -1,
		Pause:      40 * time.Millisecond,
		Keymap:     keymap.DefaultFile,
		KeymapDirs: defaultKeymapDirs(),
		LogLevel:   "info",
	}
}

func defaultKeymapDirs() []string {
	dirs := []string{""}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// ApplyEnv overrides fields from the environment. Flags given on the command
// line are applied afterwards and take precedence.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvController); v != "" {
		c.Controller = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvKeymap); v != "" {
		c.Keymap = v
	}
	return nil
}

var (
	ErrConflictingSources = channel.ErrConflictingSources
	ErrInvalidSize        = errors.New("config: window dimensions must be positive")
	ErrInvalidPort        = errors.New("config: port out of range")
	ErrNegativePause      = errors.New("config: pause must not be negative")
)

// Validate reports the first inconsistent setting
func (c *Config) Validate() error {
	if c.Network && c.Script != "" {
		return ErrConflictingSources
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.Pause < 0 {
		return ErrNegativePause
	}
	return nil
}

// Channel returns the settings for opening the command channel
func (c *Config) Channel() channel.Config {
	return channel.Config{
		Network:    c.Network,
		Controller: c.Controller,
		Port:       c.Port,
		Script:     c.Script,
	}
}

// HostName returns Host, falling back to the machine's hostname
func (c *Config) HostName() string {
	if c.Host != "" {
		return c.Host
	}
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
