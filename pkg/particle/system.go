package particle

import (
	"math/rand"

	"github.com/faiface/pixel"
	"golang.org/x/image/colornames"
)

const (
	// DefaultSpawnPerTick is how many particles System.Update tries to add.
	DefaultSpawnPerTick = 5

	// VertexStride is the number of floats AppendVertices writes per particle:
	// x, y, lifetime, size, r, g, b, a.
	VertexStride = 8
)

// DefaultArea is the region new particles spawn in.
var DefaultArea = pixel.R(-400, -300, 400, 300)

// Particle is a single particle of a System.
type Particle struct {
	Position pixel.Vec
	Velocity pixel.Vec
	Lifetime float64
	Size     float64
	Color    pixel.RGBA
}

// System is a capped emitter of 2D particles.
type System struct {
	particles    []Particle
	max          int
	spawnPerTick int
	area         pixel.Rect
	rng          *rand.Rand
}

// SystemOption tweaks a System on construction.
type SystemOption func(*System)

// WithSpawnPerTick sets how many particles each Update tries to add.
func WithSpawnPerTick(n int) SystemOption {
	return func(s *System) {
		s.spawnPerTick = n
	}
}

// WithArea sets the spawn region.
func WithArea(r pixel.Rect) SystemOption {
	return func(s *System) {
		s.area = r.Norm()
	}
}

// NewSystem prepares an empty System holding at most max particles.
func NewSystem(max int, rng *rand.Rand, opts ...SystemOption) *System {
	if max < 0 {
		max = 0
	}
	s := &System{
		particles:    make([]Particle, 0, max),
		max:          max,
		spawnPerTick: DefaultSpawnPerTick,
		area:         DefaultArea,
		rng:          rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add spawns a particle at pos with a random velocity, lifetime and size.
// It reports false when the system is full.
func (s *System) Add(pos pixel.Vec) bool {
	return s.Push(Particle{
		Position: pos,
		Velocity: pixel.V(
			float64(s.rng.Intn(200)-100)/100,
			float64(s.rng.Intn(200)-100)/100,
		),
		Lifetime: float64(s.rng.Intn(5) + 1),
		Size:     float64(s.rng.Intn(10) + 5),
		Color:    pixel.ToRGBA(colornames.White),
	})
}

// Push appends p unless the system is full.
func (s *System) Push(p Particle) bool {
	if len(s.particles) >= s.max {
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

// Update spawns new particles inside the area, advances all of them by dt
// seconds and drops the expired ones.
func (s *System) Update(dt float64) {
	for i := 0; i < s.spawnPerTick; i++ {
		s.Add(s.randomPoint())
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.Position = p.Position.Add(p.Velocity.Scaled(dt))
		p.Lifetime -= dt
	}
	s.particles = cull(s.particles, func(p Particle) bool { return p.Lifetime <= 0 })
}

func (s *System) randomPoint() pixel.Vec {
	w, h := int(s.area.W()), int(s.area.H())
	if w <= 0 || h <= 0 {
		return s.area.Min
	}
	return s.area.Min.Add(pixel.V(float64(s.rng.Intn(w)), float64(s.rng.Intn(h))))
}

// Particles returns the live particles. The slice is owned by the System.
func (s *System) Particles() []Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Max returns the particle cap.
func (s *System) Max() int {
	return s.max
}

// Area returns the spawn region.
func (s *System) Area() pixel.Rect {
	return s.area
}

// AppendVertices appends VertexStride floats per live particle to dst.
func (s *System) AppendVertices(dst []float32) []float32 {
	for _, p := range s.particles {
		dst = append(dst,
			float32(p.Position.X), float32(p.Position.Y),
			float32(p.Lifetime), float32(p.Size),
			float32(p.Color.R), float32(p.Color.G), float32(p.Color.B), float32(p.Color.A),
		)
	}
	return dst
}
