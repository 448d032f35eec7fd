package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/supermuesli/dynwall/pkg/config"
	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/particle"
	"github.com/supermuesli/dynwall/pkg/render"
)

// parseFlags loads the config file named by -config and applies every flag
// given explicitly on top of it.
func parseFlags(fs *flag.FlagSet, args []string) (config.Config, error) {
	var (
		path   = fs.String("config", "", "TOML config file")
		mode   = fs.String("mode", "", "particle mode: quads, points or none")
		width  = fs.Int("width", 0, "window width")
		height = fs.Int("height", 0, "window height")
		fit    = fs.Float64("fit", 0, "size the window to this fraction of the display")
		frames = fs.Int("frames", 0, "stop after this many frames")
		seed   = fs.Int64("seed", 0, "particle random seed, 0 for the clock")
		hud    = fs.Bool("hud", false, "show the stats overlay")
		vsync  = fs.Bool("vsync", true, "wait for vertical sync")
		level  = fs.String("log", "", "log level: debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Particles.Mode = *mode
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fit":
			cfg.Window.Fit = *fit
		case "frames":
			cfg.Render.MaxFrames = *frames
		case "seed":
			cfg.Particles.Seed = *seed
		case "hud":
			cfg.Render.HUD = *hud
		case "vsync":
			cfg.Window.VSync = *vsync
		case "log":
			cfg.Log.Level = *level
		}
	})

	return cfg, errors.WithStack(cfg.Validate())
}

// newLayer builds the particle layer the config asks for, or nil for none.
func newLayer(ctx gfx.Context, p config.Particles) (render.Layer, error) {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	switch p.Mode {
	case config.ModeQuads:
		burst := particle.NewBurst(rng, float32(p.BurstLifetime))
		if p.Replenish {
			burst.Refill = p.BurstSize
		}
		burst.Emit(p.BurstSize)
		sparks, err := render.NewSparks(ctx, burst, float32(p.SparkSize), colornames.Red)
		if err != nil {
			return nil, err
		}
		return sparks, nil

	case config.ModePoints:
		sim := particle.NewSystem(p.MaxParticles, rng, particle.WithSpawnPerTick(p.SpawnPerTick))
		ps, err := render.NewParticleSystem(ctx, sim)
		if err != nil {
			return nil, err
		}
		return ps, nil
	}
	return nil, nil
}

// newGraphics compiles everything the wallpaper draws with.
func newGraphics(ctx gfx.Context, cfg config.Config) (*render.Graphics, error) {
	layer, err := newLayer(ctx, cfg.Particles)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions()
	opts.Amplitude = cfg.Render.Amplitude
	opts.HUD = cfg.Render.HUD
	opts.HUDSize = cfg.Render.HUDSize
	return render.NewGraphics(ctx, layer, opts)
}
