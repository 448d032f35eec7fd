// Package config holds the wallpaper's settings, read from an optional TOML
// file and overridden from the command line.
package config

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Particle modes.
const (
	ModeQuads  = "quads"
	ModePoints = "points"
	ModeNone   = "none"
)

// Config is the complete wallpaper configuration.
type Config struct {
	Window    Window    `toml:"window"`
	Particles Particles `toml:"particles"`
	Render    Render    `toml:"render"`
	Log       Log       `toml:"log"`
}

// Window settings.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Fit, when above zero, sizes the window to this fraction of the display.
	Fit     float64 `toml:"fit"`
	Display int     `toml:"display"`
	VSync   bool    `toml:"vsync"`
}

// Particles settings.
type Particles struct {
	// Mode picks the particle layer: quads, points or none.
	Mode string `toml:"mode"`
	// Seed for the particle random source. Zero seeds from the clock.
	Seed int64 `toml:"seed"`

	BurstSize     int     `toml:"burst_size"`
	BurstLifetime float64 `toml:"burst_lifetime"`
	SparkSize     float64 `toml:"spark_size"`
	Replenish     bool    `toml:"replenish"`

	MaxParticles int `toml:"max_particles"`
	SpawnPerTick int `toml:"spawn_per_tick"`
}

// Render settings.
type Render struct {
	Amplitude float64 `toml:"amplitude"`
	HUD       bool    `toml:"hud"`
	HUDSize   float64 `toml:"hud_size"`
	// MaxDelta clamps the frame delta, in seconds, after a stall.
	MaxDelta float64 `toml:"max_delta"`
	// MaxFrames stops the loop after this many frames. Zero runs until closed.
	MaxFrames int `toml:"max_frames"`
}

// Log settings.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the stock configuration: an 800x600 vsynced window with a
// burst of 100 sparks.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "Dynamic Wallpaper Engine",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Particles: Particles{
			Mode:          ModeQuads,
			BurstSize:     100,
			BurstLifetime: 5,
			SparkSize:     0.05,
			MaxParticles:  1000,
			SpawnPerTick:  5,
		},
		Render: Render{
			Amplitude: 0.5,
			HUDSize:   14,
			MaxDelta:  0.25,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

// Decode unmarshals TOML into cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Window.Fit <= 0 && (c.Window.Width <= 0 || c.Window.Height <= 0):
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.Fit > 1:
		return errors.Errorf("window fit %v must be in (0, 1]", c.Window.Fit)
	case c.Window.Display < 0:
		return errors.Errorf("display %d must not be negative", c.Window.Display)
	}

	switch c.Particles.Mode {
	case ModeQuads, ModePoints, ModeNone:
	default:
		return errors.Errorf("unknown particle mode %q", c.Particles.Mode)
	}

	switch {
	case c.Particles.BurstSize < 0:
		return errors.New("burst_size must not be negative")
	case c.Particles.BurstLifetime <= 0:
		return errors.New("burst_lifetime must be positive")
	case c.Particles.SparkSize <= 0:
		return errors.New("spark_size must be positive")
	case c.Particles.MaxParticles < 0:
		return errors.New("max_particles must not be negative")
	case c.Particles.SpawnPerTick < 0:
		return errors.New("spawn_per_tick must not be negative")
	case c.Render.MaxDelta <= 0:
		return errors.New("max_delta must be positive")
	case c.Render.MaxFrames < 0:
		return errors.New("max_frames must not be negative")
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errors.Wrapf(err, "log level %q", l.Level)
	}
	return level, nil
}
