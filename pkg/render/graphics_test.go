package render_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/gfx/gltest"
	"github.com/supermuesli/dynwall/pkg/particle"
	"github.com/supermuesli/dynwall/pkg/render"
)

func newBurst() *particle.Burst {
	b := particle.NewBurst(rand.New(rand.NewSource(1)), particle.SparkLifetime)
	b.Emit(particle.BurstSize)
	return b
}

func newGraphics(t *testing.T, rec *gltest.Recorder, opts render.Options) *render.Graphics {
	t.Helper()
	sparks, err := render.NewSparks(rec, newBurst(), render.SparkHalfSize, colornames.Red)
	require.NoError(t, err)
	g, err := render.NewGraphics(rec, sparks, opts)
	require.NoError(t, err)
	return g
}

func TestGraphicsInitState(t *testing.T) {
	rec := gltest.NewRecorder()
	g := newGraphics(t, rec, render.DefaultOptions())
	defer g.Close()

	assert.True(t, rec.Enabled[gfx.DepthTest])
	assert.Equal(t, gfx.Lequal, rec.DepthFuncValue)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, rec.ClearColorValue)
	assert.Equal(t, 2, rec.Live(gltest.Program))
	assert.Equal(t, 0, rec.Live(gltest.Shader))
}

func TestGraphicsRenderFrame(t *testing.T) {
	rec := gltest.NewRecorder()
	g := newGraphics(t, rec, render.DefaultOptions())
	defer g.Close()

	g.Render(render.Frame{Time: math.Pi / 2, Delta: 0, Width: 800, Height: 600})

	require.Len(t, rec.Clears, 1)
	assert.Equal(t, gfx.ColorBufferBit|gfx.DepthBufferBit, rec.Clears[0])
	assert.Equal(t, [4]int32{0, 0, 800, 600}, rec.ViewportValue)

	require.Len(t, rec.Draws, 2)
	quad := rec.Draws[0]
	assert.Equal(t, gfx.TriangleFan, quad.Mode)
	assert.EqualValues(t, 4, quad.Count)

	sparks := rec.Draws[1]
	assert.Equal(t, gfx.Triangles, sparks.Mode)
	assert.EqualValues(t, 6*particle.BurstSize, sparks.Count)
	assert.NotEqual(t, quad.VAO, sparks.VAO)

	assert.Equal(t, []float32{1, 0, 0, 1}, rec.Uniforms["uColor"])
	assert.Empty(t, rec.Faults)
}

func TestGraphicsQuadBobs(t *testing.T) {
	tests := []struct {
		time   float64
		offset float32
	}{
		{0, 0},
		{math.Pi / 2, 0.5},
		{3 * math.Pi / 2, -0.5},
	}

	for _, tt := range tests {
		rec := gltest.NewRecorder()
		g, err := render.NewGraphics(rec, nil, render.DefaultOptions())
		require.NoError(t, err)

		g.Render(render.Frame{Time: tt.time})
		require.Len(t, rec.Draws, 1)

		vao := rec.Draws[0].VAO
		// The quad's buffer is allocated right after its vertex array.
		got := rec.BufferContents(vao + 1)
		want := render.QuadVertices(tt.offset)
		require.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-6, "time=%v vertex float %d", tt.time, i)
		}
		g.Close()
	}
}

func TestGraphicsCompilesOnce(t *testing.T) {
	rec := gltest.NewRecorder()
	g := newGraphics(t, rec, render.DefaultOptions())
	defer g.Close()

	for i := 0; i < 10; i++ {
		g.Render(render.Frame{Time: float64(i) / 60, Delta: 1.0 / 60})
	}
	assert.Equal(t, 2, rec.Live(gltest.Program))
	assert.Equal(t, 2, rec.Live(gltest.VertexArray))
	assert.Equal(t, 2, rec.Live(gltest.Buffer))
}

func TestGraphicsSparksExpire(t *testing.T) {
	rec := gltest.NewRecorder()
	g := newGraphics(t, rec, render.DefaultOptions())
	defer g.Close()

	g.Render(render.Frame{Delta: 4})
	assert.Equal(t, particle.BurstSize, g.Particles())

	rec.ResetFrame()
	g.Render(render.Frame{Delta: 2})
	assert.Zero(t, g.Particles())
	assert.Len(t, rec.Draws, 1, "only the quad is drawn once every spark is gone")
}

func TestGraphicsCloseFreesEverything(t *testing.T) {
	rec := gltest.NewRecorder()
	opts := render.DefaultOptions()
	opts.HUD = true
	g := newGraphics(t, rec, opts)
	g.Render(render.Frame{Width: 640, Height: 480, FPS: 60})

	g.Close()
	g.Close()
	g.Render(render.Frame{})

	for _, kind := range []gltest.Kind{gltest.Shader, gltest.Program, gltest.VertexArray, gltest.Buffer, gltest.Texture} {
		assert.Zero(t, rec.Live(kind), "%s left allocated", kind)
	}
	assert.Empty(t, rec.Faults)
}

func TestGraphicsInitFailure(t *testing.T) {
	rec := gltest.NewRecorder()
	sparks, err := render.NewSparks(rec, newBurst(), render.SparkHalfSize, colornames.Red)
	require.NoError(t, err)

	rec.Reject("uColor", "ERROR: 0:2: 'uColor' : syntax error")
	g, err := render.NewGraphics(rec, sparks, render.DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, g)
	assert.Contains(t, err.Error(), "quad program")

	// The layer handed over is released too.
	assert.Zero(t, rec.Live(gltest.Program))
	assert.Zero(t, rec.Live(gltest.Buffer))
	assert.Empty(t, rec.Faults)
}

func TestNewSparksFailure(t *testing.T) {
	rec := gltest.NewRecorder()
	rec.LinkLog = "link error"

	s, err := render.NewSparks(rec, newBurst(), render.SparkHalfSize, colornames.Red)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Zero(t, rec.Live(gltest.Program))
}
