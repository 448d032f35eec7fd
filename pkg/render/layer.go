package render

import (
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/particle"
)

// Layer is a particle effect drawn on top of the animated quad.
type Layer interface {
	// Update advances the simulation by dt seconds.
	Update(dt float64)
	// Render draws the current state.
	Render()
	// Len is the number of live particles.
	Len() int
	// Close frees the layer's GPU objects.
	Close()
}

// SparkHalfSize is half the side of a spark square, in clip space.
const SparkHalfSize float32 = 0.05

// Sparks draws a particle.Burst as small solid squares.
type Sparks struct {
	burst   *particle.Burst
	program *gfx.Program
	color   int32
	tint    [4]float32
	half    float32
	mesh    *gfx.Mesh
	buf     []float32
}

// NewSparks compiles the solid shader and allocates room for a full burst.
// A nil tint draws red sparks.
func NewSparks(ctx gfx.Context, burst *particle.Burst, half float32, tint color.Color) (*Sparks, error) {
	if tint == nil {
		tint = colornames.Red
	}
	program, err := gfx.NewProgram(ctx, solidVertexShader, solidFragmentShader)
	if err != nil {
		program.Delete()
		return nil, errors.Wrap(err, "sparks program")
	}

	s := &Sparks{
		burst:   burst,
		program: program,
		color:   program.Uniform("uColor"),
		half:    half,
		mesh:    gfx.NewMesh(ctx, particle.BurstSize*6, gfx.DynamicDraw, gfx.Attrib{Index: 0, Size: 3}),
	}
	s.tint[0], s.tint[1], s.tint[2], s.tint[3] = rgba(tint)
	return s, nil
}

func (s *Sparks) Update(dt float64) {
	s.burst.Update(float32(dt))
}

// Render uploads every spark in one go and draws them with a single call.
func (s *Sparks) Render() {
	s.buf = s.burst.AppendQuads(s.buf[:0], s.half)
	n := s.mesh.Upload(s.buf)
	if n == 0 {
		return
	}
	s.program.Use()
	s.program.Uniform4f(s.color, s.tint[0], s.tint[1], s.tint[2], s.tint[3])
	s.mesh.Draw(gfx.Triangles, n)
}

func (s *Sparks) Len() int {
	return s.burst.Len()
}

func (s *Sparks) Close() {
	s.mesh.Delete()
	s.program.Delete()
}
