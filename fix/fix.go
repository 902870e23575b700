// package fix provides unsigned fixed point phase accumulators for table
// playback. A Phase packs a sample index into its high bits and a sub-sample
// offset into the rest, so advancing an oscillator is a single integer add
// and long runs accumulate no floating point drift.
package fix

import (
	"fmt"
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Phase is a 64 bit unsigned fixed point number. The split between integer
// and fractional bits is not part of the value; it is carried separately by
// a Format, so the same arithmetic works for any table size.
type Phase uint64

// Format describes how the 64 bits of a Phase are divided between the
// integer part (the sample index) and the fractional part (the interpolation
// offset).
type Format struct {
	frac  uint
	scale float64
	inv   float64
}

// For returns a Format with enough integer bits to count up to n samples
// plus one bit of headroom, so a position that has just stepped past the end
// of an n sample table is still representable and can be wrapped by
// subtraction. n does not need to be a power of 2.
func For(n int) Format {
	if n <= 0 {
		panic(fmt.Errorf("fix: table size %d must be positive", n))
	}
	integer := uint(bits.Len64(uint64(n))) + 1
	return newFormat(64 - integer)
}

// Pow2 returns a Format for tables of exactly 1<<log2n samples, with no
// headroom: the natural overflow of the underlying uint64 wraps the phase at
// the table boundary, so no explicit wrapping is needed.
func Pow2(log2n int) Format {
	if log2n <= 0 || log2n >= 64 {
		panic(fmt.Errorf("fix: log2 table size %d out of range", log2n))
	}
	return newFormat(64 - uint(log2n))
}

func newFormat(frac uint) Format {
	scale := math.Pow(2, float64(frac))
	return Format{frac: frac, scale: scale, inv: 1 / scale}
}

// FracBits reports the number of fractional bits.
func (f Format) FracBits() uint { return f.frac }

// Index returns the integer part of p: the sample index.
func (f Format) Index(p Phase) int { return int(p >> f.frac) }

// Frac returns the fractional part of p in [0, 1).
func (f Format) Frac(p Phase) float64 {
	mask := Phase(1)<<f.frac - 1
	return float64(p&mask) * f.inv
}

// Wrap subtracts length from p if p has reached it. One subtraction is
// enough for oscillator use, where the increment is always smaller than the
// table length.
func (f Format) Wrap(p, length Phase) Phase {
	if p >= length {
		return p - length
	}
	return p
}

// FromFloat converts v (in samples) to a Phase in the given format.
func FromFloat[T constraints.Float](f Format, v T) Phase {
	return Phase(float64(v) * f.scale)
}

// Float converts p back to samples.
func Float[T constraints.Float](f Format, p Phase) T {
	return T(float64(p) * f.inv)
}
