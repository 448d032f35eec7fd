package particle_test

import (
	"math/rand"
	"testing"

	"github.com/faiface/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermuesli/dynwall/pkg/particle"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSystemAdvanceSurvives(t *testing.T) {
	s := particle.NewSystem(10, newRand(), particle.WithSpawnPerTick(0))
	require.True(t, s.Push(particle.Particle{
		Position: pixel.V(10, -20),
		Velocity: pixel.V(3, 4),
		Lifetime: 2,
	}))

	s.Update(0.5)
	s.Update(0.5)
	s.Update(0.5)

	require.Equal(t, 1, s.Len())
	p := s.Particles()[0]
	assert.InDelta(t, 10+3*1.5, p.Position.X, 1e-9)
	assert.InDelta(t, -20+4*1.5, p.Position.Y, 1e-9)
	assert.InDelta(t, 0.5, p.Lifetime, 1e-9)
}

func TestSystemCullsExpired(t *testing.T) {
	tests := []struct {
		name     string
		lifetime float64
		steps    []float64
	}{
		{"exact", 1, []float64{1}},
		{"past", 1, []float64{0.75, 0.75}},
		{"already dead", 0, []float64{0.01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := particle.NewSystem(10, newRand(), particle.WithSpawnPerTick(0))
			s.Push(particle.Particle{Velocity: pixel.V(1, 1), Lifetime: tt.lifetime})
			for _, dt := range tt.steps {
				s.Update(dt)
			}
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestSystemSpawnIsCapped(t *testing.T) {
	tests := []struct {
		max, ticks, want int
	}{
		{max: 100, ticks: 4, want: 20},
		{max: 12, ticks: 4, want: 12},
		{max: 0, ticks: 3, want: 0},
	}

	for _, tt := range tests {
		s := particle.NewSystem(tt.max, newRand())
		for i := 0; i < tt.ticks; i++ {
			// Lifetimes are at least one second, nothing expires yet.
			s.Update(0.01)
		}
		assert.Equal(t, tt.want, s.Len(), "max=%d ticks=%d", tt.max, tt.ticks)
		assert.LessOrEqual(t, s.Len(), s.Max())
	}
}

func TestSystemAddRejectsWhenFull(t *testing.T) {
	s := particle.NewSystem(2, newRand(), particle.WithSpawnPerTick(0))
	assert.True(t, s.Add(pixel.ZV))
	assert.True(t, s.Add(pixel.ZV))
	assert.False(t, s.Add(pixel.ZV))
	assert.Equal(t, 2, s.Len())
}

func TestSystemAddRanges(t *testing.T) {
	s := particle.NewSystem(500, newRand(), particle.WithSpawnPerTick(0))
	for s.Add(pixel.V(1, 2)) {
	}

	for _, p := range s.Particles() {
		assert.Equal(t, pixel.V(1, 2), p.Position)
		assert.GreaterOrEqual(t, p.Velocity.X, -1.0)
		assert.Less(t, p.Velocity.X, 1.0)
		assert.GreaterOrEqual(t, p.Velocity.Y, -1.0)
		assert.Less(t, p.Velocity.Y, 1.0)
		assert.GreaterOrEqual(t, p.Lifetime, 1.0)
		assert.LessOrEqual(t, p.Lifetime, 5.0)
		assert.GreaterOrEqual(t, p.Size, 5.0)
		assert.LessOrEqual(t, p.Size, 14.0)
		assert.Equal(t, pixel.RGBA{R: 1, G: 1, B: 1, A: 1}, p.Color)
	}
}

func TestSystemSpawnsInsideArea(t *testing.T) {
	area := pixel.R(-40, -30, 40, 30)
	s := particle.NewSystem(1000, newRand(), particle.WithArea(area), particle.WithSpawnPerTick(50))
	s.Update(0)

	require.Equal(t, 50, s.Len())
	for _, p := range s.Particles() {
		assert.True(t, area.Contains(p.Position), "%v outside %v", p.Position, area)
	}
}

func TestSystemCullIsStable(t *testing.T) {
	s := particle.NewSystem(10, newRand(), particle.WithSpawnPerTick(0))
	for i, life := range []float64{5, 0.5, 5, 0.5, 5, 5} {
		s.Push(particle.Particle{Position: pixel.V(float64(i), 0), Lifetime: life})
	}

	s.Update(1)

	var order []float64
	for _, p := range s.Particles() {
		order = append(order, p.Position.X)
	}
	assert.Equal(t, []float64{0, 2, 4, 5}, order)
}

func TestSystemDeterministic(t *testing.T) {
	a := particle.NewSystem(100, rand.New(rand.NewSource(7)))
	b := particle.NewSystem(100, rand.New(rand.NewSource(7)))
	for i := 0; i < 5; i++ {
		a.Update(0.1)
		b.Update(0.1)
	}
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestSystemAppendVertices(t *testing.T) {
	s := particle.NewSystem(4, newRand(), particle.WithSpawnPerTick(0))
	s.Push(particle.Particle{
		Position: pixel.V(1, 2),
		Lifetime: 3,
		Size:     4,
		Color:    pixel.RGBA{R: 0.5, G: 0.25, B: 1, A: 1},
	})

	got := s.AppendVertices([]float32{9})
	assert.Equal(t, []float32{9, 1, 2, 3, 4, 0.5, 0.25, 1, 1}, got)
	assert.Len(t, got, 1+particle.VertexStride)
}
