// package wave provides measurements and transformations of sampled
// waveforms: levels, normalization, crossings and difference functions.
package wave

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Peak returns the largest absolute value in xs.
func Peak[T constraints.Float](xs []T) T {
	var peak T
	for _, x := range xs {
		if x < 0 {
			x = -x
		}
		if x > peak {
			peak = x
		}
	}
	return peak
}

// RMS returns the root mean square of xs.
func RMS[T constraints.Float](xs []T) T {
	var acc float64
	for _, x := range xs {
		acc += float64(x) * float64(x)
	}
	return T(math.Sqrt(acc / float64(len(xs))))
}

// NormalizePeak scales xs in place so its peak is target.
func NormalizePeak[T constraints.Float](xs []T, target T) {
	scale := target / Peak(xs)
	for i := range xs {
		xs[i] *= scale
	}
}

// NormalizeRMS scales xs in place so its RMS is target.
func NormalizeRMS[T constraints.Float](xs []T, target T) {
	scale := target / RMS(xs)
	for i := range xs {
		xs[i] *= scale
	}
}

// Crossings returns the positions where xs crosses value, linearly
// interpolated between samples, in ascending order. It stops after maxn
// crossings; pass a negative maxn for all of them.
func Crossings[T constraints.Float](xs []T, value T, maxn int) []T {
	if len(xs) == 0 || maxn == 0 {
		return nil
	}
	var crossings []T
	prev := xs[0]
	above := prev > value
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		if (v > value) != above {
			above = !above
			dy := v - prev
			crossings = append(crossings, -(v-dy*T(i)-value)/dy)
			if maxn > 0 && len(crossings) == maxn {
				break
			}
		}
		prev = v
	}
	return crossings
}

// Differentiate writes the discrete difference out[i] = in[i+1] - in[i].
// out must hold at least len(in)-1 elements.
func Differentiate[T constraints.Float](in, out []T) {
	prev := in[0]
	for i, v := range in[1:] {
		out[i] = v - prev
		prev = v
	}
}

// AMDF writes the average magnitude difference function of in to out:
// out[i] is the summed absolute difference between the signal and itself
// shifted by i. Periodic signals dip toward zero at multiples of their
// period. out must be at least as long as in.
func AMDF[T constraints.Float](in, out []T) {
	for i := range in {
		var acc T
		for j := i; j < len(in); j++ {
			d := in[j-i] - in[j]
			if d < 0 {
				d = -d
			}
			acc += d
		}
		out[i] = acc
	}
}
