// package osc provides oscillators that play band-limited wavetable sets.
package osc

import (
	"fmt"

	"github.com/pfcm/wavetable"
	"github.com/pfcm/wavetable/fix"
)

// epsilon keeps a rescaled position strictly below the table length so the
// integer part is always a valid index.
const epsilon = 1e-7

// Oscillator plays one wavetable set. For each frequency it uses the first
// table in the set that can play it without aliasing, with the frequency
// window of the selected table cached so that small pitch drifts skip the
// search entirely. The sample position is a fixed point accumulator whose
// layout is derived from the current table's size.
//
// Next never allocates or blocks; it is safe to call once per sample from a
// real-time thread. Selection only runs inside SetFrequency, which callers
// are expected to invoke at control rate.
//
// Oscillator state is not safe for concurrent use, but any number of
// oscillators may share one Set.
type Oscillator struct {
	sampleRateInv float64
	frequency     float64

	tables  *wavetable.Set
	current *wavetable.Table

	format fix.Format
	length fix.Phase
	pos    fix.Phase
	delta  fix.Phase

	value float64

	// Frequency window of the current table. As long as the frequency
	// stays inside (bottom, top] there is no reason to search again.
	bottom, top float64
}

var _ wavetable.Source = (*Oscillator)(nil)

// New returns an oscillator playing tables at the given samplerate and
// initial frequency. The frequency must be below the samplerate.
func New(tables *wavetable.Set, samplerate, frequency float64) *Oscillator {
	o := &Oscillator{
		sampleRateInv: 1 / samplerate,
		frequency:     frequency,
	}
	o.SetTables(tables)
	return o
}

// SetTables swaps in a different set and re-selects for the current
// frequency.
func (o *Oscillator) SetTables(tables *wavetable.Set) {
	if tables == nil {
		panic(fmt.Errorf("osc: nil wavetable set"))
	}
	o.tables = tables
	o.top, o.bottom = 0, 0
	o.SetFrequency(o.frequency)
}

// SetSampleRate changes the samplerate, keeping the frequency.
func (o *Oscillator) SetSampleRate(samplerate float64) {
	o.sampleRateInv = 1 / samplerate
	o.SetFrequency(o.frequency)
}

// SetFrequency sets the playback frequency in Hz. Frequencies at or above
// the samplerate are a programmer error and panic. A frequency above every
// table's bound is fine: the last table plays it, aliasing and all.
func (o *Oscillator) SetFrequency(frequency float64) {
	o.frequency = frequency
	if frequency*o.sampleRateInv >= 1 {
		panic(fmt.Errorf("osc: frequency %v must be below the samplerate %v",
			frequency, 1/o.sampleRateInv))
	}
	o.selectTable()
	o.delta = fix.FromFloat(o.format, o.frequency*float64(o.current.Len())*o.sampleRateInv)
}

// selectTable finds the table for the current frequency. The common case is
// that the frequency moved only a little and the current table still
// covers it.
func (o *Oscillator) selectTable() {
	if o.frequency <= o.top && o.frequency > o.bottom {
		return
	}

	i := o.tables.Select(o.frequency)
	next := o.tables.Table(i)

	if o.current != nil && next != o.current {
		// Keep the relative position through the switch by rescaling
		// it to the new length. No crossfade: a fast glide across a
		// band edge can still click.
		pos := fix.Float[float64](o.format, o.pos)
		pos *= float64(next.Len()) / float64(o.current.Len())
		pos = min(max(pos, 0), float64(next.Len())-epsilon)
		o.format = fix.For(next.Len())
		o.pos = fix.FromFloat(o.format, pos)
	} else if o.current == nil {
		o.format = fix.For(next.Len())
		o.pos = 0
	}

	o.current = next
	o.length = fix.FromFloat(o.format, float64(next.Len()))
	o.value = next.At(o.format.Index(o.pos), o.format.Frac(o.pos))
	o.bottom, o.top = o.tables.Bounds(i)
}

// Next advances the oscillator by one sample and returns the new current
// value.
func (o *Oscillator) Next() float64 {
	o.pos = o.format.Wrap(o.pos+o.delta, o.length)
	o.value = o.current.At(o.format.Index(o.pos), o.format.Frac(o.pos))
	return o.value
}

// Value returns the current value without advancing.
func (o *Oscillator) Value() float64 { return o.value }

// Retrigger resets the position to the start of the table and refreshes the
// current value. Frequency, table and increment are untouched.
func (o *Oscillator) Retrigger() {
	o.pos = 0
	o.value = o.current.At(0, 0)
}

// Reset is Retrigger.
func (o *Oscillator) Reset() { o.Retrigger() }

// Table returns the currently selected table.
func (o *Oscillator) Table() *wavetable.Table { return o.current }

// Frequency returns the playback frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// SampleRate returns the samplerate in Hz.
func (o *Oscillator) SampleRate() float64 { return 1 / o.sampleRateInv }

// Morph blends two oscillators that track the same frequency and
// samplerate. The morph parameter picks the mix: 0 is all the first
// oscillator, 1 all the second.
type Morph struct {
	a, b  *Oscillator
	param float64
}

var _ wavetable.Source = (*Morph)(nil)

// NewMorph returns a morphing oscillator over the two sets.
func NewMorph(first, second *wavetable.Set, samplerate, frequency float64) *Morph {
	return &Morph{
		a: New(first, samplerate, frequency),
		b: New(second, samplerate, frequency),
	}
}

// SetTables swaps both sets.
func (m *Morph) SetTables(first, second *wavetable.Set) {
	m.a.SetTables(first)
	m.b.SetTables(second)
}

// SetSampleRate changes the samplerate of both oscillators.
func (m *Morph) SetSampleRate(samplerate float64) {
	m.a.SetSampleRate(samplerate)
	m.b.SetSampleRate(samplerate)
}

// SetFrequency sets the shared playback frequency.
func (m *Morph) SetFrequency(frequency float64) {
	m.a.SetFrequency(frequency)
	m.b.SetFrequency(frequency)
}

// SetParam sets the morph parameter in [0, 1].
func (m *Morph) SetParam(p float64) { m.param = p }

// Param returns the morph parameter.
func (m *Morph) Param() float64 { return m.param }

// Next advances both oscillators and returns the blended value.
func (m *Morph) Next() float64 {
	return (1-m.param)*m.a.Next() + m.param*m.b.Next()
}

// Value returns the blended current value without advancing.
func (m *Morph) Value() float64 {
	return (1-m.param)*m.a.Value() + m.param*m.b.Value()
}

// Retrigger retriggers both oscillators.
func (m *Morph) Retrigger() {
	m.a.Retrigger()
	m.b.Retrigger()
}

// Reset is Retrigger.
func (m *Morph) Reset() { m.Retrigger() }

// Frequency returns the shared playback frequency.
func (m *Morph) Frequency() float64 { return m.a.Frequency() }

// SampleRate returns the shared samplerate.
func (m *Morph) SampleRate() float64 { return m.a.SampleRate() }
