// package lfo provides a lookup-table low frequency oscillator for
// modulating synthesis parameters.
package lfo

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/pfcm/wavetable/fix"
	"github.com/pfcm/wavetable/interp"
)

// Shape names one of the precomputed LFO waveforms.
type Shape int

const (
	Sine Shape = iota
	Triangle
	Sawtooth
	Square
	Exp
)

func (s Shape) String() string {
	return []string{
		Sine:     "sine",
		Triangle: "triangle",
		Sawtooth: "sawtooth",
		Square:   "square",
		Exp:      "exp",
	}[s]
}

// Tables holds one lookup table per shape, each with a trailing guard point
// so linear interpolation never has to wrap. Build them once at startup and
// hand them to as many LFOs as you like; they are immutable afterwards.
type Tables struct {
	log2n  int
	shapes [5][]float64
}

// NewTables builds the shape tables with size samples each. size must be a
// power of 2.
func NewTables(size int) *Tables {
	if size <= 0 || size&(size-1) != 0 {
		panic(fmt.Errorf("lfo: table size %d is not a power of 2", size))
	}
	t := &Tables{log2n: bits.Len(uint(size)) - 1}
	for i := range t.shapes {
		t.shapes[i] = make([]float64, size+1)
	}

	sine := t.shapes[Sine]
	for i := 0; i < size; i++ {
		sine[i] = math.Sin(2 * math.Pi * float64(i) / float64(size))
	}
	sine[size] = 0

	tri := t.shapes[Triangle]
	quarter := float64(size) / 4
	for i := 0; i < size/4; i++ {
		v := float64(i) / quarter
		tri[i] = v
		tri[i+size/4] = 1 - v
		tri[i+size/2] = -v
		tri[i+3*size/4] = v - 1
	}
	tri[size] = 0

	saw := t.shapes[Sawtooth]
	for i := 0; i < size; i++ {
		saw[i] = 2*float64(i)/float64(size-1) - 1
	}
	saw[size] = -1

	square := t.shapes[Square]
	for i := 0; i < size/2; i++ {
		square[i] = 1
		square[i+size/2] = -1
	}
	square[size] = 1

	exp := t.shapes[Exp]
	half := float64(size) / 2
	e := math.E
	for i := 0; i < size/2; i++ {
		exp[i] = 2*(math.Exp(float64(i)/half)-1)/(e-1) - 1
		exp[i+size/2] = 2*(math.Exp((half-float64(i))/half)-1)/(e-1) - 1
	}
	exp[size] = -1

	return t
}

// Size returns the table size in samples.
func (t *Tables) Size() int { return 1 << t.log2n }

// LFO reads one of the shape tables with a fixed point phase whose integer
// bits match the table size exactly, so the phase wraps at the period by
// plain integer overflow. The output is linearly interpolated, scaled by a
// width, and run through a one-pole smoother.
type LFO struct {
	samplerate    float64
	samplerateInv float64
	frequency     float64
	width         float64

	tables *Tables
	table  []float64
	shape  Shape

	format fix.Format
	phase  fix.Phase
	inc    fix.Phase
	start  fix.Phase

	value     float64
	smoothing float64 // one-pole coefficient; 1 means no smoothing
	smoothSec float64
}

// New returns a sine LFO over the given tables.
func New(tables *Tables, samplerate, frequency float64) *LFO {
	l := &LFO{
		samplerate:    samplerate,
		samplerateInv: 1 / samplerate,
		frequency:     frequency,
		width:         1,
		tables:        tables,
		table:         tables.shapes[Sine],
		format:        fix.Pow2(tables.log2n),
		smoothing:     1,
	}
	l.updateInc()
	return l
}

// SetFrequency sets the LFO rate in Hz.
func (l *LFO) SetFrequency(frequency float64) {
	l.frequency = frequency
	l.updateInc()
}

// SetWidth scales the output; 1 is the full -1..1 swing.
func (l *LFO) SetWidth(width float64) { l.width = width }

// SetShape switches waveforms. The phase carries over, so switching is
// click-free for shapes that agree at the current position.
func (l *LFO) SetShape(shape Shape) {
	l.shape = shape
	l.table = l.tables.shapes[shape]
}

// SetSmoothingTime applies a one-pole lowpass with the given time constant
// in seconds to the output. Zero disables smoothing.
func (l *LFO) SetSmoothingTime(seconds float64) {
	l.smoothSec = seconds
	if seconds <= 0 {
		l.smoothing = 1
		return
	}
	l.smoothing = 1 - math.Exp(-2*math.Pi/(seconds*l.samplerate))
}

// SetStartPhase sets the normalized phase in [0, 1) that Retrigger jumps
// to.
func (l *LFO) SetStartPhase(normalized float64) {
	l.start = fix.FromFloat(l.format, normalized*float64(l.tables.Size()))
}

// Shape returns the current waveform.
func (l *LFO) Shape() Shape { return l.shape }

// Frequency returns the rate in Hz.
func (l *LFO) Frequency() float64 { return l.frequency }

// Next advances by one sample and returns the new value.
func (l *LFO) Next() float64 {
	return l.Skip(1)
}

// Skip advances by n samples at once, computing only one output value, for
// callers that update modulation at block rate.
func (l *LFO) Skip(n int) float64 {
	i := l.format.Index(l.phase)
	frac := l.format.Frac(l.phase)
	l.phase += l.inc * fix.Phase(n)

	current := interp.Linear(frac, l.table[i], l.table[i+1]) * l.width
	l.value += (current - l.value) * l.smoothing
	return l.value
}

// Value returns the current value without advancing.
func (l *LFO) Value() float64 { return l.value }

// Retrigger jumps the phase back to the configured start phase.
func (l *LFO) Retrigger() { l.phase = l.start }

// Reset retriggers and clears the smoothed value.
func (l *LFO) Reset() {
	l.Retrigger()
	l.value = 0
}

func (l *LFO) updateInc() {
	cycles := l.frequency * l.samplerateInv // cycles per sample
	l.inc = fix.FromFloat(l.format, cycles*float64(l.tables.Size()))
}
