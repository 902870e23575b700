package wave

import "math"

// PitchInfo describes a detected fundamental frequency.
type PitchInfo struct {
	// Frequency is the averaged fundamental in Hz.
	Frequency float64
	// StandardDeviation of the individual period estimates, in Hz.
	StandardDeviation float64
	// MaxDeviation is the largest distance of any kept period estimate
	// from the average, in Hz.
	MaxDeviation float64
}

// PitchParams tunes FindPitch.
type PitchParams struct {
	// Tolerance for accepting a dip of the difference function as a
	// period boundary. Raising it helps with noisy data at the cost of
	// accuracy and false positives.
	Tolerance float64

	// DeviationFilter rejects period estimates further than this
	// fraction from the intermediate average before the final average
	// is taken.
	DeviationFilter float64

	// MaxPeriods caps how many periods contribute, so a long sample
	// with drifting pitch is judged by its beginning. Zero means no
	// cap.
	MaxPeriods int
}

// DefaultPitchParams are a reasonable starting point for clean, pitched
// material.
var DefaultPitchParams = PitchParams{
	Tolerance:       0.3,
	DeviationFilter: 0.3,
}

// FindPitch estimates the fundamental frequency of xs using the average
// magnitude difference function: dips of the AMDF mark whole periods, their
// spacing gives per-period frequency estimates, and outliers are filtered
// out before averaging. It reports ok=false when no consistent pitch could
// be found.
func FindPitch(xs []float64, samplerate float64, p PitchParams) (PitchInfo, bool) {
	if len(xs) < 10 {
		return PitchInfo{}, false
	}

	amdf := make([]float64, len(xs))
	AMDF(xs, amdf)
	NormalizePeak(amdf, 1)

	// Extrema of the AMDF are crossings of its derivative.
	diff := make([]float64, len(amdf)-1)
	Differentiate(amdf, diff)
	NormalizePeak(diff, 1)
	crossings := Crossings(diff, 0, -1)

	// Keep the extrema that are dips near zero. The tolerance shrinks
	// toward the end of the buffer, where the AMDF sums fewer terms and
	// gets less trustworthy.
	var dips []float64
	for _, c := range crossings {
		i := int(c + 0.5)
		tol := (1 - c/float64(len(amdf))) * p.Tolerance
		if c > 3 && math.Abs(amdf[i]) < tol {
			dips = append(dips, c)
		}
	}
	if p.MaxPeriods > 0 && len(dips) > p.MaxPeriods+1 {
		dips = dips[:p.MaxPeriods+1]
	}
	if len(dips) < 2 {
		return PitchInfo{}, false
	}

	// Dip spacings are period lengths in samples; flip to frequencies.
	freqs := make([]float64, len(dips)-1)
	Differentiate(dips, freqs)
	for i := range freqs {
		freqs[i] = 1 / freqs[i]
	}

	f0, _ := meanAndStddev(freqs)
	kept := freqs[:0]
	for _, f := range freqs {
		if math.Abs(f-f0) <= f0*p.DeviationFilter {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return PitchInfo{}, false
	}
	f1, sd := meanAndStddev(kept)

	var maxDev float64
	for _, f := range kept {
		maxDev = math.Max(maxDev, math.Abs(f-f1))
	}

	return PitchInfo{
		Frequency:         f1 * samplerate,
		StandardDeviation: sd * samplerate,
		MaxDeviation:      maxDev * samplerate,
	}, true
}

func meanAndStddev(xs []float64) (mean, stddev float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		stddev += d * d
	}
	return mean, math.Sqrt(stddev / float64(len(xs)))
}
