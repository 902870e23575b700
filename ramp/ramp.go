// package ramp provides values that move toward a target over a number of
// samples, for de-zippering parameter changes.
package ramp

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Value ramps linearly or exponentially from its current value to a target
// over a fixed number of steps. The last step lands exactly on the target,
// so incremental error can not accumulate across ramps.
type Value[T constraints.Float] struct {
	value, target T
	inc           T
	steps         int
	countdown     int
	exponential   bool
}

// Linear returns a linearly ramping value starting at v.
func Linear[T constraints.Float](v T, steps int) *Value[T] {
	return &Value[T]{value: v, target: v, steps: steps}
}

// Exponential returns an exponentially ramping value starting at v, which
// must be positive (a ratio from or to zero is meaningless).
func Exponential[T constraints.Float](v T, steps int) *Value[T] {
	if v <= 0 {
		panic(fmt.Errorf("ramp: exponential start %v must be positive", v))
	}
	return &Value[T]{value: v, target: v, steps: steps, exponential: true}
}

// Value returns the current value without advancing.
func (r *Value[T]) Value() T { return r.value }

// Next advances the ramp one step and returns the new value.
func (r *Value[T]) Next() T {
	if r.countdown <= 0 {
		// Snap to the target; the incremental approach is not exact.
		r.value = r.target
		return r.value
	}
	r.countdown--
	if r.exponential {
		r.value *= r.inc
	} else {
		r.value += r.inc
	}
	return r.value
}

// Set starts a ramp toward v and reports whether any ramping is actually
// needed.
func (r *Value[T]) Set(v T) bool {
	r.target = v
	if r.steps == 0 || r.value == r.target {
		r.value = r.target
		r.countdown = 0
		return false
	}
	if r.exponential {
		if r.value <= 0 || v <= 0 {
			panic(fmt.Errorf("ramp: exponential ramp from %v to %v", r.value, v))
		}
		r.inc = T(math.Pow(float64(v/r.value), 1/float64(r.steps)))
	} else {
		r.inc = (v - r.value) / T(r.steps)
	}
	r.countdown = r.steps
	return true
}

// SetImmediately jumps straight to v with no ramp.
func (r *Value[T]) SetImmediately(v T) {
	r.value, r.target = v, v
	r.countdown = 0
}

// SetSteps changes the length of subsequent ramps.
func (r *Value[T]) SetSteps(steps int) { r.steps = steps }

// SetTime sets the ramp length in milliseconds at the given samplerate.
func (r *Value[T]) SetTime(milliseconds, samplerate T) {
	r.steps = int(milliseconds / 1000 * samplerate)
}

// Target returns the value the ramp is heading for.
func (r *Value[T]) Target() T { return r.target }

// IsRamping reports whether the value is still moving.
func (r *Value[T]) IsRamping() bool { return r.countdown > 0 }
