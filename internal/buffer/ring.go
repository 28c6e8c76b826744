// Package buffer provides a growable ring buffer for accumulating sample
// frames between differently sized processing blocks.
package buffer

import "github.com/tphakala/go-stream-resampler/internal/simdops"

// Ring is a single-channel FIFO of samples. It grows on demand and is not
// safe for concurrent use; resampler instances are single-threaded.
type Ring[F simdops.Float] struct {
	data     []F
	readPos  int
	writePos int
	size     int
}

// NewRing creates a ring buffer with the given initial capacity.
func NewRing[F simdops.Float](capacity int) *Ring[F] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[F]{data: make([]F, capacity)}
}

// Available returns the number of buffered samples.
func (r *Ring[F]) Available() int {
	return r.size
}

// Write appends samples, growing the buffer if needed.
func (r *Ring[F]) Write(samples []F) {
	if r.size+len(samples) > len(r.data) {
		r.grow(r.size + len(samples))
	}
	for _, s := range samples {
		r.data[r.writePos] = s
		r.writePos = (r.writePos + 1) % len(r.data)
	}
	r.size += len(samples)
}

// ReadInto removes up to len(dst) samples into dst and returns the count.
func (r *Ring[F]) ReadInto(dst []F) int {
	n := len(dst)
	if n > r.size {
		n = r.size
	}
	for i := 0; i < n; i++ {
		dst[i] = r.data[r.readPos]
		r.readPos = (r.readPos + 1) % len(r.data)
	}
	r.size -= n
	return n
}

// Clear discards all buffered samples.
func (r *Ring[F]) Clear() {
	r.readPos = 0
	r.writePos = 0
	r.size = 0
}

func (r *Ring[F]) grow(minCapacity int) {
	capacity := len(r.data) * 2
	if capacity < minCapacity {
		capacity = minCapacity
	}
	data := make([]F, capacity)
	for i := 0; i < r.size; i++ {
		data[i] = r.data[(r.readPos+i)%len(r.data)]
	}
	r.data = data
	r.readPos = 0
	r.writePos = r.size
}
