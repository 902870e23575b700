package wave

import (
	"math"
	"testing"
)

func TestPeak(t *testing.T) {
	for _, c := range []struct {
		xs  []float64
		out float64
	}{{
		xs:  []float64{0, 0.5, -0.75, 0.25},
		out: 0.75,
	}, {
		xs:  []float64{1, -1},
		out: 1,
	}, {
		xs:  []float64{0, 0, 0},
		out: 0,
	}} {
		if got := Peak(c.xs); got != c.out {
			t.Errorf("Peak(%v) = %v, want %v", c.xs, got, c.out)
		}
	}
}

func TestRMS(t *testing.T) {
	// A full-scale square wave has RMS 1; a sine has 1/sqrt(2).
	square := []float64{1, -1, 1, -1}
	if got := RMS(square); math.Abs(got-1) > 1e-12 {
		t.Errorf("RMS(square) = %v, want 1", got)
	}
	sine := make([]float64, 1024)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * float64(i) / 1024)
	}
	if got, want := RMS(sine), 1/math.Sqrt2; math.Abs(got-want) > 1e-3 {
		t.Errorf("RMS(sine) = %v, want %v", got, want)
	}
}

func TestNormalizePeak(t *testing.T) {
	xs := []float64{0.1, -0.2, 0.05}
	NormalizePeak(xs, 1)
	if got := Peak(xs); math.Abs(got-1) > 1e-12 {
		t.Errorf("peak after normalize = %v, want 1", got)
	}
	if xs[1] > 0 {
		t.Error("normalize flipped a sign")
	}
}

func TestNormalizeRMS(t *testing.T) {
	xs := []float64{0.1, -0.2, 0.05, 0.3}
	NormalizeRMS(xs, 0.5)
	if got := RMS(xs); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("rms after normalize = %v, want 0.5", got)
	}
}

func TestCrossings(t *testing.T) {
	// Straight line from -1 to 1 crosses zero halfway between samples 0
	// and 2... i.e. at exactly 1.
	if got := Crossings([]float64{-1, 0, 1}, 0, -1); len(got) != 1 {
		t.Fatalf("got %d crossings, want 1", len(got))
	}
	xs := []float64{-1, 1, -1, 1, -1}
	got := Crossings(xs, 0, -1)
	if len(got) != 4 {
		t.Fatalf("got %d crossings, want 4", len(got))
	}
	for i, c := range got {
		want := float64(i) + 0.5
		if math.Abs(c-want) > 1e-12 {
			t.Errorf("crossing %d at %v, want %v", i, c, want)
		}
	}
	if got := Crossings(xs, 0, 2); len(got) != 2 {
		t.Errorf("maxn=2 returned %d crossings", len(got))
	}
}

func TestDifferentiate(t *testing.T) {
	in := []float64{1, 4, 9, 16}
	out := make([]float64, 3)
	Differentiate(in, out)
	for i, want := range []float64{3, 5, 7} {
		if out[i] != want {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestAMDFPeriodic(t *testing.T) {
	// The AMDF of a periodic signal dips to ~0 at the period.
	const n, period = 256, 32
	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	out := make([]float64, n)
	AMDF(in, out)
	if out[0] != 0 {
		t.Errorf("AMDF at lag 0 = %v, want 0", out[0])
	}
	if out[period] > out[period/2]/100 {
		t.Errorf("AMDF at period (%v) not far below half-period (%v)",
			out[period], out[period/2])
	}
}

func TestDecibel(t *testing.T) {
	for _, c := range []struct {
		db, lin float64
	}{
		{db: 0, lin: 1},
		{db: 20, lin: 10},
		{db: -20, lin: 0.1},
		{db: 6.020599913279624, lin: 2},
	} {
		if got := DBToLinear(c.db); math.Abs(got-c.lin) > 1e-9 {
			t.Errorf("DBToLinear(%v) = %v, want %v", c.db, got, c.lin)
		}
		if got := LinearToDB(c.lin); math.Abs(got-c.db) > 1e-9 {
			t.Errorf("LinearToDB(%v) = %v, want %v", c.lin, got, c.db)
		}
	}
}
