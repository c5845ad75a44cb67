package utils

import "math/bits"

// Bitmap fixed-size bit set
type Bitmap struct {
	words  []uint64
	length int
}

// NewBitmap all-clear bitmap of size bits
func NewBitmap(size int) *Bitmap {
	return &Bitmap{
		words:  make([]uint64, (size+63)/64),
		length: size,
	}
}

// Set writes bit i, out of range is ignored
func (b *Bitmap) Set(i int, flag bool) {
	if i < 0 || i >= b.length {
		return
	}
	if flag {
		b.words[i/64] |= 1 << uint(i%64)
	} else {
		b.words[i/64] &^= 1 << uint(i%64)
	}
}

// Get reads bit i, false when out of range
func (b *Bitmap) Get(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Len number of bits
func (b *Bitmap) Len() int { return b.length }

// Count number of bits equal to flag
func (b *Bitmap) Count(flag bool) int {
	set := 0
	for _, w := range b.words {
		set += bits.OnesCount64(w)
	}
	if flag {
		return set
	}
	return b.length - set
}
