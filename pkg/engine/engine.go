// Package engine runs the wallpaper's render loop.
package engine

import (
	"context"
	"log/slog"

	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/render"
)

// Surface is the window the wallpaper presents to.
type Surface interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	// Time returns seconds on a monotonic clock.
	Time() float64
	FramebufferSize() (width, height int)
}

// Renderer draws a single frame.
type Renderer interface {
	Render(f render.Frame)
	Particles() int
}

// Options tune the loop.
type Options struct {
	// MaxDelta clamps frame deltas, in seconds.
	MaxDelta float64
	// MaxFrames stops the loop after this many frames when above zero.
	MaxFrames int
}

// Engine drives a Renderer on a Surface.
type Engine struct {
	surface  Surface
	renderer Renderer
	clock    *Clock
	opts     Options
	log      *slog.Logger

	frames int
}

// New prepares an Engine. A nil logger falls back to gfx.Logger.
func New(surface Surface, renderer Renderer, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = gfx.Logger()
	}
	return &Engine{
		surface:  surface,
		renderer: renderer,
		clock:    NewClock(surface.Time, opts.MaxDelta),
		opts:     opts,
		log:      log,
	}
}

// Run renders, presents and polls until the surface asks to close, ctx is
// cancelled or the frame limit is hit. It blocks the calling thread, which
// must own the GL context.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("render loop started")
	lastFPS := 0.0
	for !e.surface.ShouldClose() {
		if err := ctx.Err(); err != nil {
			e.log.Info("render loop cancelled", "frames", e.frames)
			return nil
		}

		e.Step()

		if fps := e.clock.FPS(); fps != lastFPS {
			lastFPS = fps
			e.log.Debug("frame stats", "fps", fps, "particles", e.renderer.Particles(), "frames", e.frames)
		}

		if e.opts.MaxFrames > 0 && e.frames >= e.opts.MaxFrames {
			e.log.Info("frame limit reached", "frames", e.frames)
			return nil
		}
	}
	e.log.Info("window closed", "frames", e.frames)
	return nil
}

// Step renders and presents a single frame.
func (e *Engine) Step() {
	elapsed, delta := e.clock.Tick()
	w, h := e.surface.FramebufferSize()
	e.renderer.Render(render.Frame{
		Time:   elapsed,
		Delta:  delta,
		Width:  w,
		Height: h,
		FPS:    e.clock.FPS(),
	})
	e.surface.SwapBuffers()
	e.surface.PollEvents()
	e.frames++
}

// Frames returns how many frames have been presented.
func (e *Engine) Frames() int {
	return e.frames
}
