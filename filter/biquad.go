// package filter provides the filters that usually sit after a wavetable
// oscillator: a biquad in the classic configurations and a four-stage
// ladder.
package filter

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Type selects the response of a Biquad.
type Type int

const (
	Lowpass Type = iota
	Highpass
	Bandpass
	Notch
	Peak
	Lowshelf
	Highshelf
	Allpass
)

// Biquad is a two-pole, two-zero filter:
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// Coefficients are recomputed whenever a parameter changes; Process itself
// is just the difference equation and is fine on the audio thread.
type Biquad[T constraints.Float] struct {
	samplerateInv T
	frequency     T
	q             T
	gain          T // dB, shelf and peak types only
	typ           Type

	b0, b1, b2 T
	a1, a2     T

	x1, x2, y1, y2 T
}

// NewBiquad returns a filter of the given type. q is the resonance;
// 1/sqrt(2) gives the flattest passband for lowpass and highpass.
func NewBiquad[T constraints.Float](typ Type, samplerate, frequency, q T) *Biquad[T] {
	f := &Biquad[T]{
		samplerateInv: 1 / samplerate,
		frequency:     frequency,
		q:             q,
		typ:           typ,
	}
	f.update()
	return f
}

// SetFrequency sets the corner (or center) frequency in Hz.
func (f *Biquad[T]) SetFrequency(frequency T) {
	f.frequency = frequency
	f.update()
}

// SetQ sets the resonance.
func (f *Biquad[T]) SetQ(q T) {
	f.q = q
	f.update()
}

// SetGain sets the gain in dB for the peak and shelf types.
func (f *Biquad[T]) SetGain(gain T) {
	f.gain = gain
	f.update()
}

// SetType switches the response type, keeping the state.
func (f *Biquad[T]) SetType(typ Type) {
	f.typ = typ
	f.update()
}

// Process filters one sample.
func (f *Biquad[T]) Process(x T) T {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the delay line.
func (f *Biquad[T]) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

func (f *Biquad[T]) update() {
	switch f.typ {
	case Lowpass:
		f.updateLPHP(-1)
	case Highpass:
		f.updateLPHP(1)
	case Bandpass:
		f.updateBandpass()
	case Notch:
		f.updateNotch()
	case Peak:
		f.updatePeak()
	case Lowshelf:
		f.updateShelf(1)
	case Highshelf:
		f.updateShelf(-1)
	case Allpass:
		f.updateAllpass()
	}
}

func (f *Biquad[T]) angular() (w0, sinw, cosw T) {
	w0 = 2 * T(math.Pi) * f.frequency * f.samplerateInv
	return w0, T(math.Sin(float64(w0))), T(math.Cos(float64(w0)))
}

func (f *Biquad[T]) updateLPHP(sign T) { // lowpass: -1, highpass: +1
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)
	a0inv := 1 / (1 + a)
	f.b1 = (1 + sign*cosw) * a0inv
	f.b0 = -sign * 0.5 * f.b1
	f.b2 = f.b0
	f.a1 = -2 * cosw * a0inv
	f.a2 = (1 - a) * a0inv
}

func (f *Biquad[T]) updateBandpass() { // constant 0dB peak gain
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)
	a0inv := 1 / (1 + a)
	f.b0 = a * a0inv
	f.b1 = 0
	f.b2 = -f.b0
	f.a1 = -2 * cosw * a0inv
	f.a2 = (1 - a) * a0inv
}

func (f *Biquad[T]) updateNotch() {
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)
	a0inv := 1 / (1 + a)
	f.b0 = a0inv
	f.b2 = a0inv
	f.b1 = -2 * cosw * a0inv
	f.a1 = f.b1
	f.a2 = (1 - a) * a0inv
}

func (f *Biquad[T]) updateAllpass() {
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)
	a0inv := 1 / (1 + a)
	f.b1 = -2 * cosw * a0inv
	f.a1 = f.b1
	f.b2 = (1 + a) * a0inv
	f.b0 = (1 - a) * a0inv
	f.a2 = f.b0
}

func (f *Biquad[T]) updatePeak() {
	A := T(math.Pow(10, float64(f.gain)*0.025))
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)
	a0inv := 1 / (1 + a/A)
	f.b0 = (1 + a*A) * a0inv
	f.b2 = (1 - a*A) * a0inv
	f.b1 = -2 * cosw * a0inv
	f.a1 = f.b1
	f.a2 = (1 - a/A) * a0inv
}

func (f *Biquad[T]) updateShelf(sign T) { // lowshelf: +1, highshelf: -1
	A := T(math.Pow(10, float64(f.gain)*0.025))
	_, sinw, cosw := f.angular()
	a := sinw / (2 * f.q)

	ap1 := A + 1
	am1 := A - 1
	sqAa2 := T(math.Sqrt(float64(A))) * a * 2
	e := ap1 - sign*am1*cosw
	g := ap1 + sign*am1*cosw
	a0inv := 1 / (g + sqAa2)

	f.b0 = A * (e + sqAa2) * a0inv
	f.b1 = sign * 2 * A * (am1 - ap1*cosw) * a0inv
	f.b2 = A * (e - sqAa2) * a0inv
	f.a1 = sign * -2 * (am1 + ap1*cosw) * a0inv
	f.a2 = (g - sqAa2) * a0inv
}
