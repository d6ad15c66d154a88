// Package bitmap provides a compact set of row positions. The cleaning passes
// use it to mark rows for removal before compacting a table in one sweep.
package bitmap

import "math/bits"

// Bitmap is a bitset backed by a slice of uint64 words. Bit i represents
// row position i.
type Bitmap struct {
	data []uint64
}

// New allocates a bitmap able to hold positions in [0, n).
//
// If n <= 0, no backing storage is allocated and the bitmap behaves as an
// empty set.
func New(n int) *Bitmap {
	if n <= 0 {
		return &Bitmap{}
	}
	return &Bitmap{data: make([]uint64, (n+63)/64)}
}

// Add marks position i. Negative or out-of-range positions are ignored.
func (b *Bitmap) Add(i int) {
	if i < 0 {
		return
	}
	word := i / 64
	if word >= len(b.data) {
		return
	}
	b.data[word] |= 1 << uint(i%64)
}

// Has reports whether position i is marked.
func (b *Bitmap) Has(i int) bool {
	if i < 0 {
		return false
	}
	word := i / 64
	if word >= len(b.data) {
		return false
	}
	return b.data[word]&(1<<uint(i%64)) != 0
}

// Count returns the number of marked positions.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.data {
		n += bits.OnesCount64(w)
	}
	return n
}
