package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supermuesli/dynwall/pkg/engine"
)

func sequence(ts ...float64) func() float64 {
	i := 0
	return func() float64 {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestClockFirstTickHasNoDelta(t *testing.T) {
	c := engine.NewClock(sequence(12.5, 12.6), 0)

	elapsed, delta := c.Tick()
	assert.Zero(t, elapsed)
	assert.Zero(t, delta)

	elapsed, delta = c.Tick()
	assert.InDelta(t, 0.1, elapsed, 1e-9)
	assert.InDelta(t, 0.1, delta, 1e-9)
}

func TestClockClampsStalls(t *testing.T) {
	c := engine.NewClock(sequence(0, 10, 10.1), 0.25)
	c.Tick()

	elapsed, delta := c.Tick()
	assert.Equal(t, 10.0, elapsed)
	assert.Equal(t, 0.25, delta)

	_, delta = c.Tick()
	assert.InDelta(t, 0.1, delta, 1e-9)
}

func TestClockIgnoresBackwardsTime(t *testing.T) {
	c := engine.NewClock(sequence(5, 4), 0)
	c.Tick()
	_, delta := c.Tick()
	assert.Zero(t, delta)
}

func TestClockFPS(t *testing.T) {
	now := 0.0
	c := engine.NewClock(func() float64 { return now }, 0)

	for i := 0; i <= 60; i++ {
		now = float64(i) / 60
		c.Tick()
	}
	assert.InDelta(t, 60.0, c.FPS(), 1e-6)
}
