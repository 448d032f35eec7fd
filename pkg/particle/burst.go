package particle

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// BurstSize is the number of sparks emitted when the wallpaper starts.
	BurstSize = 100

	// SparkLifetime is how long, in seconds, every spark lives.
	SparkLifetime float32 = 5
)

// Spark is a single particle of a Burst.
type Spark struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Lifetime float32
}

// Burst is an uncapped pool of sparks flying out of the origin.
type Burst struct {
	sparks   []Spark
	rng      *rand.Rand
	lifetime float32

	// Refill is the batch emitted once the pool runs dry. Zero lets the
	// burst die out.
	Refill int
}

// NewBurst prepares an empty Burst. Sparks get lifetime seconds to live.
func NewBurst(rng *rand.Rand, lifetime float32) *Burst {
	if lifetime <= 0 {
		lifetime = SparkLifetime
	}
	return &Burst{
		rng:      rng,
		lifetime: lifetime,
	}
}

// Emit adds n sparks at the origin with random planar velocities in [-1, 1).
func (b *Burst) Emit(n int) {
	for i := 0; i < n; i++ {
		b.sparks = append(b.sparks, Spark{
			Velocity: mgl32.Vec3{
				float32(b.rng.Intn(100))/50 - 1,
				float32(b.rng.Intn(100))/50 - 1,
				0,
			},
			Lifetime: b.lifetime,
		})
	}
}

// Push appends a spark as is.
func (b *Burst) Push(s Spark) {
	b.sparks = append(b.sparks, s)
}

// Update advances every spark by dt seconds and drops the expired ones.
func (b *Burst) Update(dt float32) {
	for i := range b.sparks {
		s := &b.sparks[i]
		s.Position = s.Position.Add(s.Velocity.Mul(dt))
		s.Lifetime -= dt
	}
	b.sparks = cull(b.sparks, func(s Spark) bool { return s.Lifetime <= 0 })

	if b.Refill > 0 && len(b.sparks) == 0 {
		b.Emit(b.Refill)
	}
}

// Sparks returns the live sparks. The slice is owned by the Burst.
func (b *Burst) Sparks() []Spark {
	return b.sparks
}

// Len returns the number of live sparks.
func (b *Burst) Len() int {
	return len(b.sparks)
}

// QuadFloats is the number of floats AppendQuads writes per spark.
const QuadFloats = 6 * 3

// AppendQuads appends two triangles per spark, a square of side 2*half
// centered on the spark, as x, y, z triples.
func (b *Burst) AppendQuads(dst []float32, half float32) []float32 {
	for _, s := range b.sparks {
		x, y, z := s.Position.X(), s.Position.Y(), s.Position.Z()
		x0, y0, x1, y1 := x-half, y-half, x+half, y+half
		dst = append(dst,
			x0, y0, z,
			x1, y0, z,
			x1, y1, z,

			x0, y0, z,
			x1, y1, z,
			x0, y1, z,
		)
	}
	return dst
}
