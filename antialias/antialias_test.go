package antialias

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/pfcm/wavetable/fft"
	"github.com/pfcm/wavetable/interp"
)

func sine(n int, cycles float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(n))
	}
	return out
}

func TestTruncate(t *testing.T) {
	const (
		n          = 1024
		samplerate = 44100.0
		maxFreq    = 2000.0
	)
	plan := fft.New(n)
	spectrum := make([]complex128, n)
	// A saw has content in every bin, so the zeroed range is visible.
	saw := make([]float64, n)
	for i := range saw {
		saw[i] = 2*float64(i)/float64(n) - 1
	}
	plan.Forward(saw, spectrum)

	Truncate(spectrum, samplerate, maxFreq)

	nyquist := samplerate / 2
	cutoff := int(nyquist/maxFreq) + 1
	if imag(spectrum[0]) != 0 {
		t.Errorf("DC imaginary part = %v, want exactly 0", imag(spectrum[0]))
	}
	for i := cutoff; i < n-cutoff+1; i++ {
		if spectrum[i] != 0 {
			t.Errorf("bin %d = %v, want exactly 0", i, spectrum[i])
		}
	}
	// The bins just inside the cutoff survive on both sides.
	if spectrum[cutoff-1] == 0 {
		t.Errorf("bin %d below cutoff was zeroed", cutoff-1)
	}
	if spectrum[n-cutoff+1] == 0 {
		t.Errorf("mirror bin %d was zeroed", n-cutoff+1)
	}
	// Still hermitian, so a real-only inverse is valid.
	for k := 1; k < n/2; k++ {
		if d := cmplx.Abs(spectrum[n-k] - cmplx.Conj(spectrum[k])); d > 1e-9 {
			t.Errorf("bin %d breaks hermitian symmetry (diff %v)", k, d)
		}
	}
}

func TestTruncateNoop(t *testing.T) {
	// A cutoff past n/2 means the table is already safe: nothing changes.
	const n = 64
	spectrum := make([]complex128, n)
	for i := range spectrum {
		spectrum[i] = complex(float64(i), float64(-i))
	}
	want := make([]complex128, n)
	copy(want, spectrum)

	// nyquist/maxFreq = 22050/500 = 44.1 > n/2.
	Truncate(spectrum, 44100, 500)

	for i := range spectrum {
		if spectrum[i] != want[i] {
			t.Fatalf("bin %d changed: %v != %v", i, spectrum[i], want[i])
		}
	}
}

func TestBuilderTables(t *testing.T) {
	const (
		n          = 1024
		samplerate = 44100.0
	)
	freqs := []float64{500, 2000, 8000}
	b := NewBuilder(samplerate, fft.New(n))
	tables := b.Tables(sine(n, 1), freqs, interp.LinearKernel{})

	if len(tables) != 3 {
		t.Fatalf("got %d tables, want 3", len(tables))
	}
	for i, tab := range tables {
		if got := tab.MaxPlaybackFrequency(); got != freqs[i] {
			t.Errorf("table %d tagged %v, want %v", i, got, freqs[i])
		}
		if tab.Len() != n {
			t.Errorf("table %d has %d samples, want %d", i, tab.Len(), n)
		}
	}
}

func TestBuilderBandsAreIndependent(t *testing.T) {
	// Each band starts from the original spectrum: band-limiting at 8000
	// after 500 must keep the harmonics that the 500Hz table dropped.
	const (
		n          = 1024
		samplerate = 44100.0
	)
	saw := make([]float64, n)
	for i := range saw {
		saw[i] = 2*float64(i)/float64(n) - 1
	}
	b := NewBuilder(samplerate, fft.New(n))
	tables := b.Tables(saw, []float64{500, 8000}, interp.LinearKernel{})

	plan := fft.New(n)
	lo := make([]complex128, n)
	hi := make([]complex128, n)
	plan.Forward(tables[0].Data(), lo)
	plan.Forward(tables[1].Data(), hi)

	nyquist := samplerate / 2
	cutoffLo := int(nyquist/500) + 1
	// A bin above the low cutoff but below the high one: zero in the
	// first table, alive in the second.
	probe := cutoffLo + 2
	if cmplx.Abs(lo[probe]) > 1e-9 {
		t.Errorf("low table keeps bin %d: %v", probe, lo[probe])
	}
	if cmplx.Abs(hi[probe]) < 1e-6 {
		t.Errorf("high table lost bin %d: %v", probe, hi[probe])
	}
}

func TestBuilderSineRoundTrip(t *testing.T) {
	// A fundamental-only sine survives any truncation unchanged.
	const n = 256
	in := sine(n, 1)
	b := NewBuilder(44100, fft.New(n))
	tab := b.Tables(in, []float64{10000}, interp.LinearKernel{})[0]
	for i, v := range tab.Data() {
		if math.Abs(v-in[i]) > 1e-9 {
			t.Fatalf("sample %d: %v != %v", i, v, in[i])
		}
	}
}

func TestBuilderSizeMismatchPanics(t *testing.T) {
	b := NewBuilder(44100, fft.New(64))
	defer func() {
		if recover() == nil {
			t.Error("mismatched signal length did not panic")
		}
	}()
	b.Tables(make([]float64, 32), []float64{440}, nil)
}
