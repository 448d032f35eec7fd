package render

import (
	"github.com/pkg/errors"

	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/particle"
)

// ParticleSystem draws a particle.System as GPU points, one vertex per
// particle, sized and colored per particle.
type ParticleSystem struct {
	sim     *particle.System
	program *gfx.Program
	area    int32
	mesh    *gfx.Mesh
	buf     []float32
	count   int
}

// NewParticleSystem compiles the point shader once and allocates a stream
// buffer large enough for the system's cap.
func NewParticleSystem(ctx gfx.Context, sim *particle.System) (*ParticleSystem, error) {
	program, err := gfx.NewProgram(ctx, pointsVertexShader, pointsFragmentShader)
	if err != nil {
		program.Delete()
		return nil, errors.Wrap(err, "particle program")
	}
	ctx.Enable(gfx.ProgramPointSize)

	return &ParticleSystem{
		sim:     sim,
		program: program,
		area:    program.Uniform("uArea"),
		mesh: gfx.NewMesh(ctx, sim.Max(), gfx.StreamDraw,
			gfx.Attrib{Index: 0, Size: 2}, // position
			gfx.Attrib{Index: 1, Size: 1}, // lifetime
			gfx.Attrib{Index: 2, Size: 1}, // size
			gfx.Attrib{Index: 3, Size: 4}, // color
		),
		buf: make([]float32, 0, sim.Max()*particle.VertexStride),
	}, nil
}

// Update advances the simulation and re-uploads every live particle.
func (ps *ParticleSystem) Update(dt float64) {
	ps.sim.Update(dt)
	ps.buf = ps.sim.AppendVertices(ps.buf[:0])
	ps.count = ps.mesh.Upload(ps.buf)
}

func (ps *ParticleSystem) Render() {
	if ps.count == 0 {
		return
	}
	a := ps.sim.Area()
	ps.program.Use()
	ps.program.Uniform4f(ps.area, float32(a.Min.X), float32(a.Min.Y), float32(a.Max.X), float32(a.Max.Y))
	ps.mesh.Draw(gfx.Points, ps.count)
}

func (ps *ParticleSystem) Len() int {
	return ps.sim.Len()
}

func (ps *ParticleSystem) Close() {
	ps.mesh.Delete()
	ps.program.Delete()
}
