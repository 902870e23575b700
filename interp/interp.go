// package interp provides polynomial interpolation between samples, both as
// free functions over any float type and as kernels that read directly out
// of a wavetable with wrap-around indexing.
package interp

import "golang.org/x/exp/constraints"

// Linear interpolates between y0 and y1:
//
//	Linear(t, y0, y1) = y0 + t*(y1 - y0)
//
// with t in [0, 1].
func Linear[T constraints.Float](t, y0, y1 T) T {
	return y0 + t*(y1-y0)
}

// Hermite does 3rd-order hermite interpolation between y0 and y1, using ym1
// and y2 as the surrounding samples. t is in [0, 1].
func Hermite[T constraints.Float](t, ym1, y0, y1, y2 T) T {
	c0 := y0
	c1 := 0.5 * (y1 - ym1)
	c2 := ym1 - 2.5*y0 + 2*y1 - 0.5*y2
	c3 := 1.5*(y0-y1) + 0.5*(y2-ym1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Cubic interpolates between y0 and y1 with a cubic through all four
// samples. t is in [0, 1].
func Cubic[T constraints.Float](t, ym1, y0, y1, y2 T) T {
	c3 := y2 - y1 + y0 - ym1
	c2 := ym1 - y0 - c3
	c1 := y1 - ym1
	c0 := y0
	return ((c3*t+c2)*t+c1)*t + c0
}

// Bezier evaluates a cubic Bézier with start x0, handles x1 and x2 and end
// x3, by repeated linear interpolation. t is in [0, 1].
func Bezier[T constraints.Float](t, x0, x1, x2, x3 T) T {
	x0i := Linear(t, x0, x1)
	x1i := Linear(t, x1, x2)
	x2i := Linear(t, x2, x3)
	x0ii := Linear(t, x0i, x1i)
	x1ii := Linear(t, x1i, x2i)
	return Linear(t, x0ii, x1ii)
}

// Kernel interpolates a periodic table at a fractional position. i is a
// valid index into data and frac is the offset past it in [0, 1); indices
// off either end wrap around, since the table holds one full period.
//
// A Kernel is chosen per table at construction time, so the playback path
// pays one interface call per sample and no searching.
type Kernel interface {
	At(data []float64, i int, frac float64) float64
}

// LinearKernel reads two neighboring samples.
type LinearKernel struct{}

func (LinearKernel) At(data []float64, i int, frac float64) float64 {
	j := i + 1
	if j == len(data) {
		j = 0
	}
	return Linear(frac, data[i], data[j])
}

// HermiteKernel reads four neighboring samples.
type HermiteKernel struct{}

func (HermiteKernel) At(data []float64, i int, frac float64) float64 {
	ym1, y0, y1, y2 := neighbors(data, i)
	return Hermite(frac, ym1, y0, y1, y2)
}

// CubicKernel reads four neighboring samples.
type CubicKernel struct{}

func (CubicKernel) At(data []float64, i int, frac float64) float64 {
	ym1, y0, y1, y2 := neighbors(data, i)
	return Cubic(frac, ym1, y0, y1, y2)
}

func neighbors(data []float64, i int) (ym1, y0, y1, y2 float64) {
	n := len(data)
	im1 := i - 1
	if im1 < 0 {
		im1 = n - 1
	}
	i1 := i + 1
	if i1 >= n {
		i1 -= n
	}
	i2 := i + 2
	if i2 >= n {
		i2 -= n
	}
	return data[im1], data[i], data[i1], data[i2]
}
