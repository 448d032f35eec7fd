// Package render draws the wallpaper: an animated quad, an optional particle
// layer and an optional stats overlay, all through a gfx.Context.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/supermuesli/dynwall/pkg/gfx"
)

// Frame is the timing and surface state handed to each Render call.
type Frame struct {
	// Time is the number of seconds since the wallpaper started.
	Time float64
	// Delta is the number of seconds since the previous frame.
	Delta float64
	// Width and Height are the framebuffer size in pixels.
	Width, Height int
	// FPS is the most recent frames-per-second measurement.
	FPS float64
}

// Options configures Graphics. Zero fields fall back to DefaultOptions.
type Options struct {
	// Amplitude is how far, in clip space, the quad bobs up and down.
	Amplitude float64
	// QuadColor fills the animated quad.
	QuadColor color.Color
	// Background is the clear color.
	Background color.Color
	// HUD enables the stats overlay.
	HUD bool
	// HUDSize is the overlay font size in points.
	HUDSize float64
}

// DefaultOptions returns a red quad on opaque black without an overlay.
func DefaultOptions() Options {
	return Options{
		Amplitude:  0.5,
		QuadColor:  colornames.Red,
		Background: colornames.Black,
		HUDSize:    14,
	}
}

// Graphics owns the quad, the particle layer and the overlay.
type Graphics struct {
	ctx     gfx.Context
	opts    Options
	program *gfx.Program
	color   int32
	quad    *gfx.Mesh
	layer   Layer
	hud     *HUD
	closed  bool
}

// NewGraphics sets up GL state and compiles the quad shader. layer may be nil.
// Graphics takes ownership of layer and closes it, even when NewGraphics fails.
func NewGraphics(ctx gfx.Context, layer Layer, opts Options) (*Graphics, error) {
	def := DefaultOptions()
	if opts.QuadColor == nil {
		opts.QuadColor = def.QuadColor
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}
	if opts.HUDSize <= 0 {
		opts.HUDSize = def.HUDSize
	}

	ctx.Enable(gfx.DepthTest)
	ctx.DepthFunc(gfx.Lequal)
	ctx.Enable(gfx.Blend)
	ctx.BlendFunc(gfx.SrcAlpha, gfx.OneMinusSrcAlpha)
	ctx.ClearColor(rgba(opts.Background))

	g := &Graphics{ctx: ctx, opts: opts, layer: layer}

	program, err := gfx.NewProgram(ctx, solidVertexShader, solidFragmentShader)
	g.program = program
	if err != nil {
		g.Close()
		return nil, errors.Wrap(err, "quad program")
	}
	g.color = program.Uniform("uColor")
	g.quad = gfx.NewMesh(ctx, 4, gfx.DynamicDraw, gfx.Attrib{Index: 0, Size: 3})

	if opts.HUD {
		hud, err := NewHUD(ctx, DefaultFace(opts.HUDSize), colornames.White)
		if err != nil {
			g.Close()
			return nil, err
		}
		g.hud = hud
	}

	gfx.Logger().Info("graphics ready", "hud", opts.HUD, "layer", fmt.Sprintf("%T", layer))
	return g, nil
}

// QuadVertices returns the four corners of the quad lifted by offset, in
// triangle fan order.
func QuadVertices(offset float32) []float32 {
	return []float32{
		-0.5, -0.5 + offset, 0,
		0.5, -0.5 + offset, 0,
		0.5, 0.5 + offset, 0,
		-0.5, 0.5 + offset, 0,
	}
}

// Render clears the screen and draws one frame. Presenting it is up to the
// caller.
func (g *Graphics) Render(f Frame) {
	if g.closed {
		return
	}
	if f.Width > 0 && f.Height > 0 {
		g.ctx.Viewport(0, 0, int32(f.Width), int32(f.Height))
	}
	g.ctx.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)

	offset := float32(g.opts.Amplitude * math.Sin(f.Time))
	g.quad.Upload(QuadVertices(offset))
	g.program.Use()
	r, gr, b, a := rgba(g.opts.QuadColor)
	g.program.Uniform4f(g.color, r, gr, b, a)
	g.quad.Draw(gfx.TriangleFan, 4)

	if g.layer != nil {
		g.layer.Update(f.Delta)
		g.layer.Render()
	}

	if g.hud != nil {
		g.hud.Draw(fmt.Sprintf("fps %.0f  particles %d", f.FPS, g.Particles()), f.Width, f.Height)
	}
}

// Particles returns the number of live particles in the layer.
func (g *Graphics) Particles() int {
	if g.layer == nil {
		return 0
	}
	return g.layer.Len()
}

// Close frees every GPU object exactly once.
func (g *Graphics) Close() {
	if g.closed {
		return
	}
	g.closed = true

	if g.hud != nil {
		g.hud.Close()
	}
	if g.layer != nil {
		g.layer.Close()
	}
	g.quad.Delete()
	g.program.Delete()
}
