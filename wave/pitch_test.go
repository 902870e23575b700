package wave

import (
	"math"
	"testing"
)

func TestFindPitchSine(t *testing.T) {
	const samplerate = 44100.0
	for _, f := range []float64{220, 440, 1000} {
		n := int(samplerate / f * 8) // ~8 periods
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = math.Sin(2 * math.Pi * f * float64(i) / samplerate)
		}
		info, ok := FindPitch(xs, samplerate, DefaultPitchParams)
		if !ok {
			t.Errorf("no pitch found for %vHz sine", f)
			continue
		}
		if err := math.Abs(info.Frequency-f) / f; err > 0.02 {
			t.Errorf("pitch of %vHz sine = %vHz (%.1f%% off)", f, info.Frequency, err*100)
		}
	}
}

func TestFindPitchTooShort(t *testing.T) {
	if _, ok := FindPitch(make([]float64, 5), 44100, DefaultPitchParams); ok {
		t.Error("found a pitch in 5 samples")
	}
}

func TestFindPitchSilence(t *testing.T) {
	// Silence has no period structure at all; with nothing but numerical
	// noise in the AMDF there should be no confident answer... but at
	// the very least it must not panic or return garbage frequencies.
	info, ok := FindPitch(make([]float64, 512), 44100, DefaultPitchParams)
	if ok && (info.Frequency <= 0 || math.IsNaN(info.Frequency)) {
		t.Errorf("nonsense pitch from silence: %+v", info)
	}
}
