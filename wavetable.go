// package wavetable does band-limited wavetable synthesis. Tables are built
// offline by removing spectral content above a cutoff (see package
// antialias) and played back by oscillators that pick the right table for
// the current pitch (see package osc).
package wavetable

import (
	"fmt"

	"github.com/pfcm/wavetable/interp"
)

// Source is something that produces audio one sample at a time. Next
// advances by one sample and returns the new current value; implementations
// must not allocate or block, so a Source can be pulled from a real-time
// callback.
type Source interface {
	Next() float64
}

// Table is one period of a waveform together with the highest fundamental
// frequency at which it can be looped without audible aliasing. The data is
// read-only after construction; any number of oscillators may share a Table
// concurrently.
type Table struct {
	data    []float64
	maxFreq float64
	kernel  interp.Kernel
}

// NewTable builds a table from one period of sample data. The kernel decides
// how lookups between samples are interpolated. An empty table or a
// non-positive frequency bound is a programmer error and panics.
func NewTable(data []float64, maxPlaybackFrequency float64, kernel interp.Kernel) *Table {
	if len(data) == 0 {
		panic(fmt.Errorf("wavetable: empty table"))
	}
	if maxPlaybackFrequency <= 0 {
		panic(fmt.Errorf("wavetable: maximum playback frequency %v must be positive", maxPlaybackFrequency))
	}
	if kernel == nil {
		kernel = interp.LinearKernel{}
	}
	return &Table{data: data, maxFreq: maxPlaybackFrequency, kernel: kernel}
}

// Len returns the number of samples in one period.
func (t *Table) Len() int { return len(t.data) }

// MaxPlaybackFrequency returns the highest fundamental at which the table
// may be looped without aliasing.
func (t *Table) MaxPlaybackFrequency() float64 { return t.maxFreq }

// At interpolates the table at sample index i plus frac in [0, 1), wrapping
// around the period boundary.
func (t *Table) At(i int, frac float64) float64 {
	return t.kernel.At(t.data, i, frac)
}

// Data returns the underlying samples. Callers must not modify them while
// any oscillator references the table.
func (t *Table) Data() []float64 { return t.data }

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d samples, <=%.5gHz)", len(t.data), t.maxFreq)
}

// Set is an ordered collection of tables covering ascending frequency
// bands. The strict ordering by maximum playback frequency is what makes
// selection work; it is checked once at construction and the set is
// read-only afterwards, so oscillators can share one Set without
// synchronization.
type Set struct {
	tables []*Table
}

// NewSet collects tables into a set. At least one table is required and the
// maximum playback frequencies must be strictly ascending; either violation
// panics.
func NewSet(tables ...*Table) *Set {
	if len(tables) == 0 {
		panic(fmt.Errorf("wavetable: a set needs at least one table"))
	}
	for i := 1; i < len(tables); i++ {
		if tables[i].maxFreq <= tables[i-1].maxFreq {
			panic(fmt.Errorf("wavetable: table frequencies not ascending: %v after %v",
				tables[i].maxFreq, tables[i-1].maxFreq))
		}
	}
	return &Set{tables: tables}
}

// Len returns the number of tables.
func (s *Set) Len() int { return len(s.tables) }

// Table returns the i'th table.
func (s *Set) Table(i int) *Table { return s.tables[i] }

// Select returns the index of the first table that can play frequency f
// without aliasing. When f is above every bound it returns the last index:
// playing with aliasing beats not playing at all.
func (s *Set) Select(f float64) int {
	for i, t := range s.tables {
		if t.maxFreq >= f {
			return i
		}
	}
	return len(s.tables) - 1
}

// Bounds returns the frequency window [bottom, top) in which table i is the
// right choice. The bottom of the first table is 0.
func (s *Set) Bounds(i int) (bottom, top float64) {
	if i > 0 {
		bottom = s.tables[i-1].maxFreq
	}
	return bottom, s.tables[i].maxFreq
}

func (s *Set) String() string {
	return fmt.Sprintf("Set(%d tables, <=%.5gHz)", len(s.tables), s.tables[len(s.tables)-1].maxFreq)
}
