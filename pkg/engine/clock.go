package engine

// Clock turns a monotonic seconds source into per-frame timing.
type Clock struct {
	now      func() float64
	maxDelta float64

	started bool
	start   float64
	last    float64

	// fps bookkeeping
	windowStart float64
	windowCount int
	fps         float64
}

// NewClock reads time from now. Deltas above maxDelta are clamped; zero
// disables clamping.
func NewClock(now func() float64, maxDelta float64) *Clock {
	return &Clock{now: now, maxDelta: maxDelta}
}

// Tick marks the start of a frame. It returns seconds since the first tick
// and the clamped seconds since the previous one, which is zero on the first.
func (c *Clock) Tick() (elapsed, delta float64) {
	t := c.now()
	if !c.started {
		c.started = true
		c.start, c.last, c.windowStart = t, t, t
		return 0, 0
	}

	delta = t - c.last
	if delta < 0 {
		delta = 0
	}
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.last = t

	c.windowCount++
	if span := t - c.windowStart; span >= 1 {
		c.fps = float64(c.windowCount) / span
		c.windowStart = t
		c.windowCount = 0
	}
	return t - c.start, delta
}

// FPS returns the frame rate measured over the last full second.
func (c *Clock) FPS() float64 {
	return c.fps
}
