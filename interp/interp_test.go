package interp

import (
	"math"
	"testing"
)

func TestLinear(t *testing.T) {
	for _, c := range []struct {
		t, y0, y1 float64
		out       float64
	}{{
		t:   0,
		y0:  0.5,
		y1:  -0.5,
		out: 0.5,
	}, {
		t:   1,
		y0:  0.5,
		y1:  -0.5,
		out: -0.5,
	}, {
		t:   0.5,
		y0:  0.5,
		y1:  -0.5,
		out: 0,
	}, {
		t:   0.25,
		y0:  0,
		y1:  1,
		out: 0.25,
	}} {
		got := Linear(c.t, c.y0, c.y1)
		if math.Abs(got-c.out) > 1e-12 {
			t.Errorf("Linear(%v, %v, %v) = %v, want: %v", c.t, c.y0, c.y1, got, c.out)
		}
	}
}

func TestHermiteEndpoints(t *testing.T) {
	// Hermite and cubic both pass through y0 at t=0 and y1 at t=1,
	// whatever the neighbors look like.
	for _, c := range []struct {
		ym1, y0, y1, y2 float64
	}{
		{0, 0.25, 0.75, 1},
		{-1, 0.5, -0.5, 1},
		{0.3, 0.3, 0.3, 0.3},
	} {
		if got := Hermite(0, c.ym1, c.y0, c.y1, c.y2); math.Abs(got-c.y0) > 1e-12 {
			t.Errorf("Hermite(0, %v...) = %v, want %v", c.ym1, got, c.y0)
		}
		if got := Hermite(1, c.ym1, c.y0, c.y1, c.y2); math.Abs(got-c.y1) > 1e-12 {
			t.Errorf("Hermite(1, %v...) = %v, want %v", c.ym1, got, c.y1)
		}
		if got := Cubic(0, c.ym1, c.y0, c.y1, c.y2); math.Abs(got-c.y0) > 1e-12 {
			t.Errorf("Cubic(0, %v...) = %v, want %v", c.ym1, got, c.y0)
		}
		if got := Cubic(1, c.ym1, c.y0, c.y1, c.y2); math.Abs(got-c.y1) > 1e-12 {
			t.Errorf("Cubic(1, %v...) = %v, want %v", c.ym1, got, c.y1)
		}
	}
}

func TestBezier(t *testing.T) {
	// Endpoints hit the first and last control points; the midpoint of a
	// straight-line Bézier stays on the line.
	if got := Bezier(0.0, 0.0, 0.1, 0.9, 1.0); got != 0 {
		t.Errorf("Bezier(0) = %v, want 0", got)
	}
	if got := Bezier(1.0, 0.0, 0.1, 0.9, 1.0); got != 1 {
		t.Errorf("Bezier(1) = %v, want 1", got)
	}
	got := Bezier(0.5, 0.0, 1/3.0, 2/3.0, 1.0)
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Bezier(0.5) on a line = %v, want 0.5", got)
	}
}

func TestKernelsWrap(t *testing.T) {
	data := []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}
	for _, c := range []struct {
		name string
		k    Kernel
	}{
		{name: "linear", k: LinearKernel{}},
		{name: "hermite", k: HermiteKernel{}},
		{name: "cubic", k: CubicKernel{}},
	} {
		// frac 0 must reproduce the sample exactly at every index,
		// including both ends where the neighbors wrap.
		for i := range data {
			if got := c.k.At(data, i, 0); math.Abs(got-data[i]) > 1e-12 {
				t.Errorf("%s: At(data, %d, 0) = %v, want %v", c.name, i, got, data[i])
			}
		}
		// Interpolating across the seam stays between the two samples.
		got := c.k.At(data, len(data)-1, 0.5)
		if got < -1 || got > 1 {
			t.Errorf("%s: seam value %v out of table range", c.name, got)
		}
	}
}

func TestLinearKernelMatchesFunc(t *testing.T) {
	data := []float64{0.25, 0.75, -0.5}
	got := LinearKernel{}.At(data, 0, 0.25)
	want := Linear(0.25, 0.25, 0.75)
	if got != want {
		t.Errorf("LinearKernel.At = %v, want %v", got, want)
	}
}
