package buffer

import "testing"

func TestGet(t *testing.T) {
	for _, size := range []int{1, 64, 4096, 10000} {
		b := Get(size)
		if len(b) != size {
			t.Errorf("Get(%d): len = %d", size, len(b))
		}
		Put(b)
	}
}

func TestZeroed(t *testing.T) {
	b := Get(128)
	for i := range b {
		b[i] = 1
	}
	Put(b)
	z := Zeroed(128)
	for i, v := range z {
		if v != 0 {
			t.Fatalf("Zeroed: index %d = %v", i, v)
		}
	}
	Put(z)
}
