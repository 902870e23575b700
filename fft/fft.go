// package fft implements a radix-2 fast fourier transform for one fixed
// size. A Plan precomputes the bit-reversal permutation and the per-stage
// twiddle factors once, so repeated transforms of the same size only do the
// butterfly adds and multiplies.
package fft

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
)

// Plan computes transforms of one fixed power-of-2 size. It is immutable
// after New and safe to share between goroutines.
//
// Both directions are normalized by 1/sqrt(n), so Inverse(Forward(x))
// reproduces x exactly (up to floating point error) with no extra scaling
// step. Keep it that way: the antialiasing tables depend on it.
type Plan struct {
	n     int
	norm  float64
	rev   []int        // bit-reversal permutation
	twids []complex128 // one rotator per stage, forward direction
}

// New builds a plan for transforms of n points. n must be a power of 2;
// anything else is a build-time bug, not an input error, and panics.
func New(n int) *Plan {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Errorf("fft: size %d is not a power of 2", n))
	}
	logn := bits.Len(uint(n)) - 1
	p := &Plan{
		n:     n,
		norm:  1 / math.Sqrt(float64(n)),
		rev:   make([]int, n),
		twids: make([]complex128, logn),
	}
	for i := range p.rev {
		p.rev[i] = int(bits.Reverse32(uint32(i)) >> (32 - logn))
	}
	for s := range p.twids {
		m2 := 1 << s
		p.twids[s] = cmplx.Rect(1, math.Pi/float64(m2))
	}
	return p
}

// Size returns the transform size.
func (p *Plan) Size() int { return p.n }

// Forward transforms n real samples into n complex spectrum bins. in and
// out must both have length n.
func (p *Plan) Forward(in []float64, out []complex128) {
	p.check(len(in), len(out))
	for i, j := range p.rev {
		out[i] = complex(p.norm*in[j], 0)
	}
	p.butterflies(out, false)
}

// ForwardComplex is Forward for complex input. in and out must not share
// storage.
func (p *Plan) ForwardComplex(in, out []complex128) {
	p.check(len(in), len(out))
	p.checkAlias(in, out)
	for i, j := range p.rev {
		out[i] = complex(p.norm, 0) * in[j]
	}
	p.butterflies(out, false)
}

// Inverse computes the inverse transform. in and out must not share
// storage.
func (p *Plan) Inverse(in, out []complex128) {
	p.check(len(in), len(out))
	p.checkAlias(in, out)
	for i, j := range p.rev {
		out[i] = complex(p.norm, 0) * in[j]
	}
	p.butterflies(out, true)
}

// InverseReal computes the inverse transform and keeps only the real part
// of each element. The input should be hermitian symmetric (as produced by
// Forward on real data), otherwise the discarded imaginary parts were
// carrying signal. Allocates a scratch buffer; it belongs to the table
// construction path, not playback.
func (p *Plan) InverseReal(in []complex128, out []float64) {
	p.check(len(in), len(out))
	scratch := make([]complex128, p.n)
	p.Inverse(in, scratch)
	for i, c := range scratch {
		out[i] = real(c)
	}
}

func (p *Plan) check(nin, nout int) {
	if nin != p.n || nout != p.n {
		panic(fmt.Errorf("fft: plan size %d, input %d, output %d", p.n, nin, nout))
	}
}

func (p *Plan) checkAlias(in, out []complex128) {
	if &in[0] == &out[0] {
		panic(fmt.Errorf("fft: input and output share storage"))
	}
}

// butterflies runs the decimation-in-time stages in place over out, which
// already holds the normalized bit-reversed input.
func (p *Plan) butterflies(out []complex128, inverse bool) {
	for s, wm := range p.twids {
		if inverse {
			wm = cmplx.Conj(wm)
		}
		m2 := 1 << s
		m := m2 << 1
		w := complex(1, 0)
		for j := 0; j < m2; j++ {
			for k := j; k < p.n; k += m {
				t := w * out[k+m2]
				u := out[k]
				out[k] = u + t
				out[k+m2] = u - t
			}
			w *= wm
		}
	}
}
