// package antialias builds band-limited wavetables by spectral truncation:
// transform a source period, zero everything above a cutoff derived from the
// highest pitch the table should play at, and transform back. The whole
// package is construction-time code; it may allocate and is never called
// from the playback path.
package antialias

import (
	"fmt"

	"github.com/pfcm/wavetable"
	"github.com/pfcm/wavetable/fft"
	"github.com/pfcm/wavetable/interp"
)

// Truncate zeroes the bins of spectrum that would alias when the signal is
// looped at maxPlaybackFrequency with the given samplerate. The cutoff bin
// is floor(nyquist/maxPlaybackFrequency)+1; bins [cutoff, n-cutoff+1) are
// cleared on both sides of the spectrum so it stays hermitian symmetric,
// and the imaginary part of the DC bin is forced to zero. If the cutoff is
// past n/2 there is nothing to remove and the spectrum is left alone.
func Truncate(spectrum []complex128, samplerate, maxPlaybackFrequency float64) {
	n := len(spectrum)
	nyquist := samplerate * 0.5
	cutoff := int(nyquist/maxPlaybackFrequency) + 1

	if cutoff > n/2 {
		return
	}
	spectrum[0] = complex(real(spectrum[0]), 0)
	for i := cutoff; i < n-cutoff+1; i++ {
		spectrum[i] = 0
	}
}

// Builder makes wavetable sets: one forward transform of the source signal,
// then one truncation and inverse transform per target frequency.
type Builder struct {
	samplerate float64
	plan       *fft.Plan
}

// NewBuilder returns a Builder for the given samplerate, reusing the
// provided plan for every transform.
func NewBuilder(samplerate float64, plan *fft.Plan) Builder {
	if samplerate <= 0 {
		panic(fmt.Errorf("antialias: samplerate %v must be positive", samplerate))
	}
	return Builder{samplerate: samplerate, plan: plan}
}

// Tables band-limits signal once per entry in freqs and returns one table
// per frequency, in the same order, each tagged with its frequency as the
// maximum playback frequency. freqs must be sorted ascending by the caller.
// Every truncation starts from the original spectrum, not the previous
// table's, so the bands are independent. The signal length must match the
// plan size.
func (b Builder) Tables(signal []float64, freqs []float64, kernel interp.Kernel) []*wavetable.Table {
	n := b.plan.Size()
	if len(signal) != n {
		panic(fmt.Errorf("antialias: signal length %d does not match plan size %d", len(signal), n))
	}
	spectrum := make([]complex128, n)
	b.plan.Forward(signal, spectrum)

	tables := make([]*wavetable.Table, len(freqs))
	scratch := make([]complex128, n)
	for i, f := range freqs {
		copy(scratch, spectrum)
		Truncate(scratch, b.samplerate, f)
		data := make([]float64, n)
		b.plan.InverseReal(scratch, data)
		tables[i] = wavetable.NewTable(data, f, kernel)
	}
	return tables
}

// Set is Tables wrapped into a wavetable.Set, which also enforces that
// freqs really were ascending.
func (b Builder) Set(signal []float64, freqs []float64, kernel interp.Kernel) *wavetable.Set {
	return wavetable.NewSet(b.Tables(signal, freqs, kernel)...)
}
