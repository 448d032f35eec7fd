// Package particle holds the CPU side of the wallpaper's particle effects.
//
// Two independent simulations live here. Burst is a one-shot explosion of
// sparks in 3D that is never refilled unless asked to. System is a capped 2D
// emitter that spawns a few particles on every update. Both follow the same
// lifecycle: spawn, advance by explicit Euler integration, then drop the dead
// with a stable filter.
package particle

import (
	"slices"
)

// cull removes every element reported dead while keeping survivors in order.
func cull[T any](ps []T, dead func(T) bool) []T {
	return slices.DeleteFunc(ps, dead)
}
