package filter

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Moog is a four-stage ladder lowpass with resonance feedback, tuned
// empirically in the style of the classic analog circuit. Cutoff and
// resonance are normalized to [0, 1]; SetFrequency accepts Hz.
type Moog[T constraints.Float] struct {
	cutoff     T // normalized, 2*hz/samplerate
	resonance  T
	samplerate T

	y1, y2, y3, y4            T
	oldx, oldy1, oldy2, oldy3 T
	r, p, k                   T
}

// NewMoog returns a ladder filter wide open at the given samplerate.
func NewMoog[T constraints.Float](samplerate T) *Moog[T] {
	m := &Moog[T]{cutoff: 1, samplerate: samplerate}
	m.calc()
	return m
}

// SetFrequency sets the cutoff in Hz.
func (m *Moog[T]) SetFrequency(hz T) {
	m.cutoff = 2 * hz / m.samplerate
	m.calc()
}

// SetCutoff sets the normalized cutoff in [0, 1].
func (m *Moog[T]) SetCutoff(c T) {
	m.cutoff = c
	m.calc()
}

// SetResonance sets the resonance in [0, 1].
func (m *Moog[T]) SetResonance(r T) {
	m.resonance = r
	m.calc()
}

// Process filters one sample through the four cascaded one-pole stages.
func (m *Moog[T]) Process(input T) T {
	x := input - m.r*m.y4

	m.y1 = x*m.p + m.oldx*m.p - m.k*m.y1
	m.y2 = m.y1*m.p + m.oldy1*m.p - m.k*m.y2
	m.y3 = m.y2*m.p + m.oldy2*m.p - m.k*m.y3
	m.y4 = m.y3*m.p + m.oldy3*m.p - m.k*m.y4

	m.oldx = x
	m.oldy1, m.oldy2, m.oldy3 = m.y1, m.y2, m.y3
	return m.y4
}

// Reset clears the filter state, keeping the parameters.
func (m *Moog[T]) Reset() {
	m.y1, m.y2, m.y3, m.y4 = 0, 0, 0, 0
	m.oldx, m.oldy1, m.oldy2, m.oldy3 = 0, 0, 0, 0
	m.calc()
}

func (m *Moog[T]) calc() {
	c := m.cutoff
	m.p = c * (1.8 - 0.8*c)
	m.k = 2*T(math.Sin(float64(c)*math.Pi*0.5)) - 1

	t1 := (1 - m.p) * 1.386249
	t2 := 12 + t1*t1
	m.r = m.resonance * (t2 + 6*t1) / (t2 - 6*t1)
}
