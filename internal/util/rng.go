// Package util holds small helpers shared by the drivers.
package util

import "math/rand"

// New returns a deterministic source for seed. Zero is remapped to 1 so an
// unset seed still gives a reproducible run. The result satisfies
// combat.Picker.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}
