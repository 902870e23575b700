package wave

import (
	"math"

	"golang.org/x/exp/constraints"
)

// DBToLinear converts decibels to a linear gain factor.
func DBToLinear[T constraints.Float](db T) T {
	return T(math.Pow(10, 0.05*float64(db)))
}

// LinearToDB converts a linear gain factor to decibels.
func LinearToDB[T constraints.Float](gain T) T {
	return T(20 * math.Log10(float64(gain)))
}
