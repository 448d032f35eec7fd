package render_test

import (
	"math/rand"
	"testing"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/gfx/gltest"
	"github.com/supermuesli/dynwall/pkg/particle"
	"github.com/supermuesli/dynwall/pkg/render"
)

func TestParticleSystemUploadsAndDrawsPoints(t *testing.T) {
	rec := gltest.NewRecorder()
	sim := particle.NewSystem(50, rand.New(rand.NewSource(3)))
	ps, err := render.NewParticleSystem(rec, sim)
	require.NoError(t, err)
	defer ps.Close()

	assert.True(t, rec.Enabled[gfx.ProgramPointSize])

	for i := 0; i < 3; i++ {
		ps.Update(0.01)
	}
	ps.Render()

	require.Equal(t, 15, ps.Len())
	require.Len(t, rec.Draws, 1)
	assert.Equal(t, gfx.Points, rec.Draws[0].Mode)
	assert.EqualValues(t, 15, rec.Draws[0].Count)

	a := particle.DefaultArea
	assert.Equal(t, []float32{float32(a.Min.X), float32(a.Min.Y), float32(a.Max.X), float32(a.Max.Y)}, rec.Uniforms["uArea"])
	assert.Empty(t, rec.Faults)
}

func TestParticleSystemBufferMirrorsSimulation(t *testing.T) {
	rec := gltest.NewRecorder()
	sim := particle.NewSystem(4, rand.New(rand.NewSource(3)), particle.WithSpawnPerTick(0))
	sim.Push(particle.Particle{
		Position: pixel.V(10, 20),
		Velocity: pixel.V(2, 0),
		Lifetime: 2,
		Size:     6,
		Color:    pixel.RGBA{R: 1, G: 1, B: 1, A: 1},
	})
	ps, err := render.NewParticleSystem(rec, sim)
	require.NoError(t, err)
	defer ps.Close()

	ps.Update(0.5)
	ps.Render()

	require.Len(t, rec.Draws, 1)
	vbo := rec.Draws[0].VAO + 1
	got := rec.BufferContents(vbo)
	require.Len(t, got, 4*particle.VertexStride)
	assert.Equal(t, []float32{11, 20, 1.5, 6, 1, 1, 1, 1}, got[:particle.VertexStride])
}

func TestParticleSystemEmptySkipsDraw(t *testing.T) {
	rec := gltest.NewRecorder()
	sim := particle.NewSystem(10, rand.New(rand.NewSource(3)), particle.WithSpawnPerTick(0))
	ps, err := render.NewParticleSystem(rec, sim)
	require.NoError(t, err)

	ps.Update(1)
	ps.Render()
	assert.Empty(t, rec.Draws)

	ps.Close()
	assert.Zero(t, rec.Live(gltest.Program))
	assert.Zero(t, rec.Live(gltest.VertexArray))
	assert.Zero(t, rec.Live(gltest.Buffer))
	assert.Empty(t, rec.Faults)
}

func TestParticleSystemNeverOverflows(t *testing.T) {
	rec := gltest.NewRecorder()
	sim := particle.NewSystem(8, rand.New(rand.NewSource(3)))
	ps, err := render.NewParticleSystem(rec, sim)
	require.NoError(t, err)
	defer ps.Close()

	for i := 0; i < 20; i++ {
		ps.Update(0.01)
	}
	assert.Equal(t, 8, ps.Len())
	assert.Empty(t, rec.Faults)
}

func TestParticleSystemInGraphics(t *testing.T) {
	rec := gltest.NewRecorder()
	sim := particle.NewSystem(100, rand.New(rand.NewSource(3)))
	ps, err := render.NewParticleSystem(rec, sim)
	require.NoError(t, err)

	g, err := render.NewGraphics(rec, ps, render.DefaultOptions())
	require.NoError(t, err)
	defer g.Close()

	g.Render(render.Frame{Delta: 0.01})
	assert.Equal(t, 5, g.Particles())
	require.Len(t, rec.Draws, 2)
	assert.Equal(t, gfx.Points, rec.Draws[1].Mode)
}
