// package buffer provides pooled scratch buffers for the audio paths.
package buffer

import "sync"

var pool = sync.Pool{
	New: func() any {
		b := make([]float64, 4096)
		return &b
	},
}

// Get returns a float64 slice of exactly size samples. The contents are not
// zeroed. Return it with Put when done.
func Get(size int) []float64 {
	b := *(pool.Get().(*[]float64))
	if cap(b) < size {
		b = make([]float64, size)
	}
	return b[:size]
}

// Put returns a buffer obtained from Get to the pool.
func Put(b []float64) {
	pool.Put(&b)
}

// Zeroed is Get followed by clearing the contents.
func Zeroed(size int) []float64 {
	b := Get(size)
	for i := range b {
		b[i] = 0
	}
	return b
}
