package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Controller != "nil-command" {
		t.Errorf("expected Controller nil-command, got %s", cfg.Controller)
	}
	if cfg.Port != 6666 {
		t.Errorf("expected Port 6666, got %d", cfg.Port)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.X != -1 || cfg.Y != -1 {
		t.Errorf("expected placement left to the window manager, got %d,%d", cfg.X, cfg.Y)
	}
	if cfg.Pause != 40*time.Millisecond {
		t.Errorf("expected Pause 40ms, got %v", cfg.Pause)
	}
	if cfg.Keymap != "nil.kbd" {
		t.Errorf("expected Keymap nil.kbd, got %s", cfg.Keymap)
	}
	if len(cfg.KeymapDirs) == 0 || cfg.KeymapDirs[0] != "" {
		t.Errorf("expected the working directory first, got %q", cfg.KeymapDirs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv(EnvController, "ws://director:8080/commands")
		t.Setenv(EnvPort, "7000")
		t.Setenv(EnvKeymap, "cave.kbd")

		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}
		if cfg.Controller != "ws://director:8080/commands" || cfg.Port != 7000 || cfg.Keymap != "cave.kbd" {
			t.Errorf("env not applied: %+v", cfg)
		}
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv(EnvPort, "sixty")
		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(); err == nil {
			t.Error("expected an error for a non-numeric port")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"net and play", func(c *Config) { c.Network = true; c.Script = "demo.nil" }, ErrConflictingSources},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidSize},
		{"port", func(c *Config) { c.Port = 70000 }, ErrInvalidPort},
		{"pause", func(c *Config) { c.Pause = -time.Second }, ErrNegativePause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChannelAndHost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = true
	cfg.Host = "cseenil1"

	ch := cfg.Channel()
	if !ch.Network || ch.Controller != cfg.Controller || ch.Port != cfg.Port {
		t.Errorf("Channel() = %+v", ch)
	}
	if cfg.HostName() != "cseenil1" {
		t.Errorf("HostName() = %q", cfg.HostName())
	}
}
