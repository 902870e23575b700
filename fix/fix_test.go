package fix

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, c := range []struct {
		n int
		v float64
	}{
		{n: 128, v: 0},
		{n: 128, v: 1},
		{n: 128, v: 127.5},
		{n: 600, v: 599.25},
		{n: 2048, v: 1023.0625},
		{n: 2048, v: 2047.875},
	} {
		f := For(c.n)
		got := Float[float64](f, FromFloat(f, c.v))
		if math.Abs(got-c.v) > 1e-9 {
			t.Errorf("For(%d): round trip of %v = %v", c.n, c.v, got)
		}
	}
}

func TestIndexFrac(t *testing.T) {
	f := For(1024)
	p := FromFloat(f, 513.25)
	if got := f.Index(p); got != 513 {
		t.Errorf("Index = %d, want 513", got)
	}
	if got := f.Frac(p); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Frac = %v, want 0.25", got)
	}
}

func TestWrap(t *testing.T) {
	f := For(600)
	length := FromFloat(f, 600.0)
	for _, c := range []struct {
		pos, want float64
	}{
		{pos: 599.5, want: 599.5},
		{pos: 600, want: 0},
		{pos: 600.75, want: 0.75},
	} {
		got := Float[float64](f, f.Wrap(FromFloat(f, c.pos), length))
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestPow2Overflow(t *testing.T) {
	// With a Pow2 format the accumulator wraps at the table size all by
	// itself.
	f := Pow2(8)
	p := FromFloat(f, 255.5)
	p += FromFloat(f, 1.0)
	if got := f.Index(p); got != 0 {
		t.Errorf("index after overflow = %d, want 0", got)
	}
	if got := f.Frac(p); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("frac after overflow = %v, want 0.5", got)
	}
}

func TestAccumulationDrift(t *testing.T) {
	// Many small fixed point increments land exactly where one big one
	// does.
	f := For(1024)
	inc := FromFloat(f, 0.37)
	var p Phase
	for i := 0; i < 1000; i++ {
		p += inc
	}
	if p != inc*1000 {
		t.Errorf("accumulated phase %d != %d", p, inc*1000)
	}
}

func TestForPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("For(0) did not panic")
		}
	}()
	For(0)
}
